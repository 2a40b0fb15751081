package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/errs"
	"github.com/shariqazeem/umanity-social/internal/model"
	"github.com/shariqazeem/umanity-social/internal/safemath"
)

// 账本原语：在调用方的事务内移动价值。每个引擎操作整体运行在一个
// 事务里，故这里的读写与操作内其它读写保持一致；操作失败即整体回滚。

// BalanceOf 查询账户余额，账户不存在视为 0
func BalanceOf(db *gorm.DB, address string) (uint64, error) {
	var account model.Account
	if err := db.Where("address = ?", address).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("查询账户余额失败: %w", err)
	}
	return account.Balance, nil
}

// Credit 向账户入账（受控加法），账户不存在时创建
func Credit(tx *gorm.DB, address string, amount uint64) error {
	var account model.Account
	err := tx.Where("address = ?", address).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = model.Account{Address: address, Balance: amount}
		if err := tx.Create(&account).Error; err != nil {
			return fmt.Errorf("创建账户失败: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询账户失败: %w", err)
	}

	balance, err := safemath.Add(account.Balance, amount)
	if err != nil {
		return err
	}
	return tx.Model(&account).Update("balance", balance).Error
}

// Debit 从账户出账，余额不足返回 ErrInsufficientFunds
func Debit(tx *gorm.DB, address string, amount uint64) error {
	var account model.Account
	if err := tx.Where("address = ?", address).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrInsufficientFunds
		}
		return fmt.Errorf("查询账户失败: %w", err)
	}
	if account.Balance < amount {
		return errs.ErrInsufficientFunds
	}
	return tx.Model(&account).Update("balance", account.Balance-amount).Error
}

// Transfer 账户间转账：from 余额不足则整体失败，不产生部分效果
func Transfer(tx *gorm.DB, from, to string, amount uint64) error {
	if err := Debit(tx, from, amount); err != nil {
		return err
	}
	return Credit(tx, to, amount)
}

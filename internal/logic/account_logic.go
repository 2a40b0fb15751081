package logic

import (
	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/errs"
	"github.com/shariqazeem/umanity-social/internal/ledger"
)

// AccountLogic 外部账户运维逻辑：入金与余额查询。
// 真实部署中账户余额由外部执行环境维护，这里提供等价的入口。
type AccountLogic struct {
	db *gorm.DB
}

// NewAccountLogic 创建账户逻辑
func NewAccountLogic(db *gorm.DB) *AccountLogic {
	return &AccountLogic{db: db}
}

// Deposit 向账户入金
func (a *AccountLogic) Deposit(address string, amount uint64) error {
	if amount == 0 {
		return errs.ErrInvalidAmount
	}
	return a.db.Transaction(func(tx *gorm.DB) error {
		return ledger.Credit(tx, address, amount)
	})
}

// GetBalance 查询账户余额
func (a *AccountLogic) GetBalance(address string) (uint64, error) {
	return ledger.BalanceOf(a.db, address)
}

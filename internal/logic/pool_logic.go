package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/addr"
	"github.com/shariqazeem/umanity-social/internal/errs"
	"github.com/shariqazeem/umanity-social/internal/event"
	"github.com/shariqazeem/umanity-social/internal/ledger"
	"github.com/shariqazeem/umanity-social/internal/model"
	"github.com/shariqazeem/umanity-social/internal/safemath"
)

// PoolLogic 资金池业务逻辑
type PoolLogic struct {
	db *gorm.DB
}

// NewPoolLogic 创建资金池业务逻辑
func NewPoolLogic(db *gorm.DB) *PoolLogic {
	return &PoolLogic{db: db}
}

// CreatePool 创建资金池。创建者即成为资金池权限方，金库地址由资金池地址派生。
func (p *PoolLogic) CreatePool(authority, name, description, emoji string, category uint8) (*model.Pool, error) {
	if len(name) > model.PoolNameMaxLen {
		return nil, errs.ErrNameTooLong
	}
	if len(description) > model.PoolDescriptionMaxLen || len(emoji) > model.PoolEmojiMaxLen {
		return nil, errs.ErrDescriptionTooLong
	}

	poolAddress := addr.Pool(name)
	pool := model.Pool{
		Address:      poolAddress,
		VaultAddress: addr.Vault(poolAddress),
		Authority:    authority,
		Name:         name,
		Description:  description,
		Emoji:        emoji,
		Category:     category,
		TotalDonated: 0,
		DonorCount:   0,
		IsActive:     true,
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Pool
		err := tx.Where("address = ?", poolAddress).First(&existing).Error
		if err == nil {
			return errs.ErrPoolExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询资金池失败: %w", err)
		}
		return tx.Create(&pool).Error
	})
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// OneTapDonate 一键捐赠：固定金额的捐赠入口
func (p *PoolLogic) OneTapDonate(poolAddress, donor string) (*model.DonationRecord, error) {
	return p.donate(poolAddress, donor, model.OneTapAmount, model.DonationKindOneTap)
}

// Donate 自定义金额捐赠
func (p *PoolLogic) Donate(poolAddress, donor string, amount uint64) (*model.DonationRecord, error) {
	return p.donate(poolAddress, donor, amount, model.DonationKindCustom)
}

// donate 捐赠主流程。两个入口共用，只是金额来源不同。
// 捐赠人余额不足由账本转账失败传播，整个操作回滚。
func (p *PoolLogic) donate(poolAddress, donor string, amount uint64, kind uint8) (*model.DonationRecord, error) {
	if amount == 0 {
		return nil, errs.ErrInvalidAmount
	}

	var record model.DonationRecord
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var pool model.Pool
		if err := tx.Where("address = ?", poolAddress).First(&pool).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("查询资金池失败: %w", err)
		}

		// 捐赠人 → 金库
		if err := ledger.Transfer(tx, donor, pool.VaultAddress, amount); err != nil {
			return err
		}

		// 更新资金池累计口径（受控加法，溢出即整体失败）
		totalDonated, err := safemath.Add(pool.TotalDonated, amount)
		if err != nil {
			return err
		}
		donorCount, err := safemath.Add(pool.DonorCount, 1)
		if err != nil {
			return err
		}
		if err := tx.Model(&pool).Updates(map[string]interface{}{
			"total_donated": totalDonated,
			"donor_count":   donorCount,
		}).Error; err != nil {
			return err
		}

		// 资金池上挂有活跃活动时，同步累计活动口径
		var campaign model.Campaign
		err = tx.Where("pool_address = ? AND is_active = ?", poolAddress, true).First(&campaign).Error
		if err == nil {
			totalRaised, err := safemath.Add(campaign.TotalRaised, amount)
			if err != nil {
				return err
			}
			campaignDonors, err := safemath.Add(campaign.DonorCount, 1)
			if err != nil {
				return err
			}
			if err := tx.Model(&campaign).Updates(map[string]interface{}{
				"total_raised": totalRaised,
				"donor_count":  campaignDonors,
			}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询活动失败: %w", err)
		}

		// 捐赠记录是不可变事实，退款计算只读取它
		record = model.DonationRecord{
			RecordID:    uuid.NewString(),
			Donor:       donor,
			PoolAddress: poolAddress,
			Amount:      amount,
			Timestamp:   time.Now().Unix(),
			Kind:        kind,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		return event.Emit(tx, model.EventDonationMade, poolAddress, "", event.DonationMade{
			Donor:  donor,
			Pool:   poolAddress,
			Amount: amount,
			Kind:   kind,
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Withdraw 资金池提现。只消耗金库余额，不回写 TotalDonated。
func (p *PoolLogic) Withdraw(poolAddress, caller, recipient string, amount uint64) error {
	if amount == 0 {
		return errs.ErrInvalidAmount
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		var pool model.Pool
		if err := tx.Where("address = ?", poolAddress).First(&pool).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("查询资金池失败: %w", err)
		}
		if caller != pool.Authority {
			return errs.ErrUnauthorized
		}

		balance, err := ledger.BalanceOf(tx, pool.VaultAddress)
		if err != nil {
			return err
		}
		if balance < amount {
			return errs.ErrInsufficientFunds
		}

		if err := ledger.Transfer(tx, pool.VaultAddress, recipient, amount); err != nil {
			return err
		}

		return event.Emit(tx, model.EventPoolWithdrawal, poolAddress, "", event.PoolWithdrawal{
			Pool:      poolAddress,
			Recipient: recipient,
			Amount:    amount,
		})
	})
}

// GetPool 获取资金池详情
func (p *PoolLogic) GetPool(poolAddress string) (*model.Pool, error) {
	var pool model.Pool
	if err := p.db.Where("address = ?", poolAddress).First(&pool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("查询资金池失败: %w", err)
	}
	return &pool, nil
}

// GetPools 获取资金池列表
func (p *PoolLogic) GetPools() ([]model.Pool, error) {
	var pools []model.Pool
	if err := p.db.Order("id ASC").Find(&pools).Error; err != nil {
		return nil, fmt.Errorf("获取资金池列表失败: %w", err)
	}
	return pools, nil
}

// GetPoolDonations 获取资金池捐赠记录
func (p *PoolLogic) GetPoolDonations(poolAddress string) ([]model.DonationRecord, error) {
	var records []model.DonationRecord
	if err := p.db.Where("pool_address = ?", poolAddress).
		Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("获取捐赠记录失败: %w", err)
	}
	return records, nil
}

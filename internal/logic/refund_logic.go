package logic

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/addr"
	"github.com/shariqazeem/umanity-social/internal/errs"
	"github.com/shariqazeem/umanity-social/internal/event"
	"github.com/shariqazeem/umanity-social/internal/ledger"
	"github.com/shariqazeem/umanity-social/internal/model"
	"github.com/shariqazeem/umanity-social/internal/safemath"
)

// RefundLogic 退款业务逻辑
type RefundLogic struct {
	db *gorm.DB
}

// NewRefundLogic 创建退款业务逻辑
func NewRefundLogic(db *gorm.DB) *RefundLogic {
	return &RefundLogic{db: db}
}

// ClaimRefund 按捐赠记录申领退款。仅当活动截止且里程碑未全部完成时可用，
// 退款金额按未释放比例对该笔捐赠等比折算。
//
// 已知缺口：捐赠记录上没有"已申领"标记，同一记录可重复申领，
// 这里按原始行为原样保留，见 internal/logic 测试中的专门用例。
func (r *RefundLogic) ClaimRefund(campaignAddress, recordID, caller string) (uint64, error) {
	var refundAmount uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var campaign model.Campaign
		if err := tx.Where("address = ?", campaignAddress).First(&campaign).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("查询活动失败: %w", err)
		}

		var record model.DonationRecord
		if err := tx.Where("record_id = ?", recordID).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("查询捐赠记录失败: %w", err)
		}

		// 只有记录上的捐赠人本人、且记录属于活动绑定的资金池才可申领
		if record.Donor != caller {
			return errs.ErrDonorMismatch
		}
		if record.PoolAddress != campaign.PoolAddress {
			return errs.ErrPoolMismatch
		}

		if time.Now().Unix() <= campaign.Deadline {
			return errs.ErrDeadlineNotReached
		}
		if campaign.MilestonesCompleted >= campaign.MilestoneCount {
			return errs.ErrAllMilestonesComplete
		}

		// 未释放比例 = 100 - floor(completed * 100 / count)
		releasedPct := uint64(campaign.MilestonesCompleted) * 100 / uint64(campaign.MilestoneCount)
		unreleasedPct := 100 - releasedPct

		amount, err := safemath.MulDiv(record.Amount, unreleasedPct, 100)
		if err != nil {
			return err
		}

		vaultAddress := addr.Vault(campaign.PoolAddress)
		balance, err := ledger.BalanceOf(tx, vaultAddress)
		if err != nil {
			return err
		}
		if balance < amount {
			return errs.ErrInsufficientFunds
		}

		if err := ledger.Transfer(tx, vaultAddress, record.Donor, amount); err != nil {
			return err
		}
		refundAmount = amount

		return event.Emit(tx, model.EventRefundClaimed, campaign.PoolAddress, campaign.Address, event.RefundClaimed{
			Campaign: campaign.Address,
			Donor:    record.Donor,
			Amount:   amount,
		})
	})
	if err != nil {
		return 0, err
	}
	return refundAmount, nil
}

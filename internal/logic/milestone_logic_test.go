package logic

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shariqazeem/umanity-social/internal/errs"
	"github.com/shariqazeem/umanity-social/internal/model"
)

func TestInitMilestone(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	deadline := time.Now().Add(time.Hour).Unix()

	campaign, err := NewCampaignLogic(db).CreateCampaign(
		pool.Address, pool.Authority, "recipient", 0, deadline,
		[]string{"drill", "pump"}, []uint8{60, 40},
	)
	require.NoError(t, err)

	milestoneLogic := NewMilestoneLogic(db)

	milestone, err := milestoneLogic.InitMilestone(campaign.Address, campaign.Authority, 0, "drill", 60)
	require.NoError(t, err)
	assert.Equal(t, model.MilestoneStatusPending, milestone.Status)
	assert.Equal(t, int64(0), milestone.ApprovedAt)
	assert.Equal(t, int64(0), milestone.ReleasedAt)
	assert.Equal(t, uint64(0), milestone.AmountReleased)

	tests := []struct {
		name        string
		caller      string
		index       uint8
		description string
		percentage  uint8
		expectError error
	}{
		{name: "duplicate index", caller: campaign.Authority, index: 0, description: "drill", percentage: 60, expectError: errs.ErrMilestoneExists},
		{name: "index out of range", caller: campaign.Authority, index: 2, description: "extra", percentage: 40, expectError: errs.ErrInvalidMilestoneCount},
		{name: "percentage differs from validated plan", caller: campaign.Authority, index: 1, description: "pump", percentage: 41, expectError: errs.ErrInvalidPercentages},
		{name: "description too long", caller: campaign.Authority, index: 1, description: strings.Repeat("x", 101), percentage: 40, expectError: errs.ErrDescriptionTooLong},
		{name: "not the authority", caller: "mallory", index: 1, description: "pump", percentage: 40, expectError: errs.ErrUnauthorized},
		{name: "second milestone", caller: campaign.Authority, index: 1, description: "pump", percentage: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := milestoneLogic.InitMilestone(campaign.Address, tt.caller, tt.index, tt.description, tt.percentage)
			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}

	// 全量初始化后百分比之和恒为 100
	milestones, err := NewCampaignLogic(db).GetCampaignMilestones(campaign.Address)
	require.NoError(t, err)
	require.Len(t, milestones, 2)
	var sum int
	for _, ms := range milestones {
		sum += int(ms.Percentage)
	}
	assert.Equal(t, 100, sum)
}

func TestApproveMilestone(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(time.Hour), []uint8{100})
	milestoneLogic := NewMilestoneLogic(db)

	_, err := milestoneLogic.ApproveMilestone(campaign.Address, "mallory", 0)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	milestone, err := milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)
	assert.Equal(t, model.MilestoneStatusApproved, milestone.Status)
	assert.NotZero(t, milestone.ApprovedAt)

	// 状态机只前进：已审批的不能再次审批
	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.ErrorIs(t, err, errs.ErrMilestoneNotPending)

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 9)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

// 场景：60/40 两个里程碑，募集 1,000,000，依次审批并释放
func TestReleaseMilestoneFundsSplit(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(time.Hour), []uint8{60, 40})
	poolLogic := NewPoolLogic(db)
	milestoneLogic := NewMilestoneLogic(db)

	fund(t, db, "donor-a", 1_000_000)
	_, err := poolLogic.Donate(pool.Address, "donor-a", 1_000_000)
	require.NoError(t, err)

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)
	milestone, err := milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.NoError(t, err)

	assert.Equal(t, model.MilestoneStatusReleased, milestone.Status)
	assert.Equal(t, uint64(600_000), milestone.AmountReleased)
	assert.NotZero(t, milestone.ReleasedAt)
	assert.Equal(t, uint64(600_000), balanceOf(t, db, campaign.Recipient))

	reloaded := getCampaign(t, db, campaign.Address)
	assert.Equal(t, uint8(1), reloaded.MilestonesCompleted)

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 1)
	require.NoError(t, err)
	milestone, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 1, campaign.Recipient)
	require.NoError(t, err)

	assert.Equal(t, uint64(400_000), milestone.AmountReleased)
	assert.Equal(t, uint64(1_000_000), balanceOf(t, db, campaign.Recipient))

	reloaded = getCampaign(t, db, campaign.Address)
	assert.Equal(t, uint8(2), reloaded.MilestonesCompleted)
	assert.LessOrEqual(t, reloaded.MilestonesCompleted, reloaded.MilestoneCount)

	// 边界：金库恰好清零
	assert.Equal(t, uint64(0), balanceOf(t, db, pool.VaultAddress))
}

// 重复释放的唯一防线是状态闸：第二次调用失败于 MilestoneNotApproved
func TestReleaseMilestoneFundsIdempotent(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(time.Hour), []uint8{100})
	milestoneLogic := NewMilestoneLogic(db)

	fund(t, db, "donor-a", 500_000)
	_, err := NewPoolLogic(db).Donate(pool.Address, "donor-a", 500_000)
	require.NoError(t, err)

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)
	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.NoError(t, err)

	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.ErrorIs(t, err, errs.ErrMilestoneNotApproved)

	// 没有第二次支付
	assert.Equal(t, uint64(500_000), balanceOf(t, db, campaign.Recipient))
	assert.Equal(t, uint8(1), getCampaign(t, db, campaign.Address).MilestonesCompleted)
}

func TestReleaseMilestoneFundsGuards(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(time.Hour), []uint8{60, 40})
	milestoneLogic := NewMilestoneLogic(db)

	fund(t, db, "donor-a", 1_000_000)
	_, err := NewPoolLogic(db).Donate(pool.Address, "donor-a", 1_000_000)
	require.NoError(t, err)

	// 未审批不得释放
	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.ErrorIs(t, err, errs.ErrMilestoneNotApproved)

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)

	// 接收方必须与活动存储的接收方一致
	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, "mallory")
	require.ErrorIs(t, err, errs.ErrRecipientMismatch)

	// 非权限方不得释放
	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, "mallory", 0, campaign.Recipient)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

// 金库不足以覆盖释放额时整体失败（提现可能先抽走金库）
func TestReleaseMilestoneFundsInsufficientVault(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(time.Hour), []uint8{100})
	poolLogic := NewPoolLogic(db)
	milestoneLogic := NewMilestoneLogic(db)

	fund(t, db, "donor-a", 1_000_000)
	_, err := poolLogic.Donate(pool.Address, "donor-a", 1_000_000)
	require.NoError(t, err)

	// 权限方先提走大部分金库
	require.NoError(t, poolLogic.Withdraw(pool.Address, pool.Authority, "elsewhere", 900_000))

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)
	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.ErrorIs(t, err, errs.ErrInsufficientFunds)

	// 失败不产生部分效果
	var milestone model.Milestone
	require.NoError(t, db.Where("campaign_address = ? AND milestone_index = ?", campaign.Address, 0).First(&milestone).Error)
	assert.Equal(t, model.MilestoneStatusApproved, milestone.Status)
	assert.Equal(t, uint64(0), milestone.AmountReleased)
	assert.Equal(t, uint8(0), getCampaign(t, db, campaign.Address).MilestonesCompleted)
}

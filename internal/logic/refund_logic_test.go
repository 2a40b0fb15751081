package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shariqazeem/umanity-social/internal/errs"
)

// 场景：单里程碑从未审批，截止后未释放比例为 100%，整笔退还
func TestClaimRefundFullAfterDeadline(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(-time.Hour), []uint8{100})

	fund(t, db, "donor-a", 500_000)
	record, err := NewPoolLogic(db).Donate(pool.Address, "donor-a", 500_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balanceOf(t, db, "donor-a"))

	amount, err := NewRefundLogic(db).ClaimRefund(campaign.Address, record.RecordID, "donor-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), amount)
	assert.Equal(t, uint64(500_000), balanceOf(t, db, "donor-a"))
	assert.Equal(t, uint64(0), balanceOf(t, db, pool.VaultAddress))
}

// 两个里程碑完成一个：未释放比例 50%，按捐赠等比折算
func TestClaimRefundProportional(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(-time.Hour), []uint8{60, 40})
	milestoneLogic := NewMilestoneLogic(db)

	fund(t, db, "donor-a", 1_000_000)
	record, err := NewPoolLogic(db).Donate(pool.Address, "donor-a", 1_000_000)
	require.NoError(t, err)

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)
	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.NoError(t, err)

	amount, err := NewRefundLogic(db).ClaimRefund(campaign.Address, record.RecordID, "donor-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), amount)
	assert.Equal(t, uint64(500_000), balanceOf(t, db, "donor-a"))
}

func TestClaimRefundGuards(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	otherPool := newTestPool(t, db, "clean-air")
	refundLogic := NewRefundLogic(db)

	// 未到截止时间
	active := newTestCampaign(t, db, pool, time.Now().Add(time.Hour), []uint8{100})
	fund(t, db, "donor-a", 400_000)
	record, err := NewPoolLogic(db).Donate(pool.Address, "donor-a", 300_000)
	require.NoError(t, err)
	_, err = refundLogic.ClaimRefund(active.Address, record.RecordID, "donor-a")
	require.ErrorIs(t, err, errs.ErrDeadlineNotReached)

	// 非本人记录
	_, err = refundLogic.ClaimRefund(active.Address, record.RecordID, "mallory")
	require.ErrorIs(t, err, errs.ErrDonorMismatch)

	// 记录不属于活动绑定的资金池
	otherCampaign := newTestCampaign(t, db, otherPool, time.Now().Add(-time.Hour), []uint8{100})
	_, err = refundLogic.ClaimRefund(otherCampaign.Address, record.RecordID, "donor-a")
	require.ErrorIs(t, err, errs.ErrPoolMismatch)
}

func TestClaimRefundAllMilestonesComplete(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(-time.Hour), []uint8{100})
	milestoneLogic := NewMilestoneLogic(db)

	fund(t, db, "donor-a", 500_000)
	record, err := NewPoolLogic(db).Donate(pool.Address, "donor-a", 500_000)
	require.NoError(t, err)

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)
	_, err = milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.NoError(t, err)

	_, err = NewRefundLogic(db).ClaimRefund(campaign.Address, record.RecordID, "donor-a")
	require.ErrorIs(t, err, errs.ErrAllMilestonesComplete)
}

// 已知缺口的存档用例：捐赠记录没有"已申领"标记，同一记录可以重复退款。
// 引擎补上标记之前，此行为保持原样；修复后本用例应当反转断言。
func TestClaimRefundDoubleClaimNotPrevented(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(-time.Hour), []uint8{100})
	refundLogic := NewRefundLogic(db)

	// 金库里有两笔捐赠，donor-a 只捐了其中一笔
	fund(t, db, "donor-a", 500_000)
	fund(t, db, "donor-b", 500_000)
	poolLogic := NewPoolLogic(db)
	record, err := poolLogic.Donate(pool.Address, "donor-a", 500_000)
	require.NoError(t, err)
	_, err = poolLogic.Donate(pool.Address, "donor-b", 500_000)
	require.NoError(t, err)

	_, err = refundLogic.ClaimRefund(campaign.Address, record.RecordID, "donor-a")
	require.NoError(t, err)

	// 第二次申领同样成功——donor-a 拿走了 donor-b 的那份
	amount, err := refundLogic.ClaimRefund(campaign.Address, record.RecordID, "donor-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), amount)
	assert.Equal(t, uint64(1_000_000), balanceOf(t, db, "donor-a"))
}

// 资金守恒：任意时刻 金库余额 == totalDonated − Σ提现 − Σ释放 − Σ退款
func TestVaultConservation(t *testing.T) {
	db := newTestDB(t)
	pool := newTestPool(t, db, "clean-water")
	campaign := newTestCampaign(t, db, pool, time.Now().Add(-time.Hour), []uint8{50, 50})
	poolLogic := NewPoolLogic(db)
	milestoneLogic := NewMilestoneLogic(db)

	var withdrawals, releases, refunds uint64

	checkConservation := func() {
		t.Helper()
		reloaded := getPool(t, db, pool.Address)
		expected := reloaded.TotalDonated - withdrawals - releases - refunds
		assert.Equal(t, expected, balanceOf(t, db, pool.VaultAddress))
	}

	fund(t, db, "donor-a", 2_000_000)
	record, err := poolLogic.Donate(pool.Address, "donor-a", 1_200_000)
	require.NoError(t, err)
	checkConservation()

	_, err = poolLogic.Donate(pool.Address, "donor-a", 800_000)
	require.NoError(t, err)
	checkConservation()

	require.NoError(t, poolLogic.Withdraw(pool.Address, pool.Authority, "ops", 100_000))
	withdrawals += 100_000
	checkConservation()

	_, err = milestoneLogic.ApproveMilestone(campaign.Address, campaign.Authority, 0)
	require.NoError(t, err)
	released, err := milestoneLogic.ReleaseMilestoneFunds(campaign.Address, campaign.Authority, 0, campaign.Recipient)
	require.NoError(t, err)
	releases += released.AmountReleased
	checkConservation()

	refunded, err := NewRefundLogic(db).ClaimRefund(campaign.Address, record.RecordID, "donor-a")
	require.NoError(t, err)
	refunds += refunded
	checkConservation()
}

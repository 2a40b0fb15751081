package logic

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shariqazeem/umanity-social/internal/database"
	"github.com/shariqazeem/umanity-social/internal/ledger"
	"github.com/shariqazeem/umanity-social/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fund 给外部账户充值，模拟外部执行环境维护的余额
func fund(t *testing.T, db *gorm.DB, address string, amount uint64) {
	t.Helper()
	require.NoError(t, ledger.Credit(db, address, amount))
}

func balanceOf(t *testing.T, db *gorm.DB, address string) uint64 {
	t.Helper()
	balance, err := ledger.BalanceOf(db, address)
	require.NoError(t, err)
	return balance
}

// newTestPool 以 authority 身份创建资金池
func newTestPool(t *testing.T, db *gorm.DB, name string) *model.Pool {
	t.Helper()
	pool, err := NewPoolLogic(db).CreatePool("pool-authority", name, "a test pool", "💧", model.PoolCategoryCommunity)
	require.NoError(t, err)
	return pool
}

// newTestCampaign 在资金池上创建活动并初始化全部里程碑
func newTestCampaign(t *testing.T, db *gorm.DB, pool *model.Pool, deadline time.Time, percentages []uint8) *model.Campaign {
	t.Helper()

	descriptions := make([]string, len(percentages))
	for i := range percentages {
		descriptions[i] = "milestone " + string(rune('A'+i))
	}

	campaign, err := NewCampaignLogic(db).CreateCampaign(
		pool.Address, pool.Authority, "campaign-recipient",
		1_000_000, deadline.Unix(), descriptions, percentages,
	)
	require.NoError(t, err)

	milestoneLogic := NewMilestoneLogic(db)
	for i, pct := range percentages {
		_, err := milestoneLogic.InitMilestone(campaign.Address, campaign.Authority, uint8(i), descriptions[i], pct)
		require.NoError(t, err)
	}
	return campaign
}

func getCampaign(t *testing.T, db *gorm.DB, address string) *model.Campaign {
	t.Helper()
	campaign, err := NewCampaignLogic(db).GetCampaign(address)
	require.NoError(t, err)
	return campaign
}

func getPool(t *testing.T, db *gorm.DB, address string) *model.Pool {
	t.Helper()
	pool, err := NewPoolLogic(db).GetPool(address)
	require.NoError(t, err)
	return pool
}

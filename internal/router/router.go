package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/handler"
	"github.com/shariqazeem/umanity-social/internal/logic"
)

func Setup(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "umanity-donations",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		poolHandler := handler.NewPoolHandler(logic.NewPoolLogic(db))
		campaignHandler := handler.NewCampaignHandler(
			logic.NewCampaignLogic(db),
			logic.NewMilestoneLogic(db),
			logic.NewRefundLogic(db),
		)

		pools := v1.Group("/pools")
		{
			pools.POST("", poolHandler.CreatePool)
			pools.GET("", poolHandler.GetPools)
			pools.GET("/:address", poolHandler.GetPool)
			pools.POST("/:address/donations/one-tap", poolHandler.OneTapDonate)
			pools.POST("/:address/donations", poolHandler.Donate)
			pools.GET("/:address/donations", poolHandler.GetDonations)
			pools.POST("/:address/withdrawals", poolHandler.Withdraw)
			pools.POST("/:address/campaigns", campaignHandler.CreateCampaign)
		}

		campaigns := v1.Group("/campaigns")
		{
			campaigns.GET("/:address", campaignHandler.GetCampaign)
			campaigns.POST("/:address/milestones", campaignHandler.InitMilestone)
			campaigns.POST("/:address/milestones/:index/approval", campaignHandler.ApproveMilestone)
			campaigns.POST("/:address/milestones/:index/release", campaignHandler.ReleaseMilestoneFunds)
			campaigns.POST("/:address/refunds", campaignHandler.ClaimRefund)
		}

		accountHandler := handler.NewAccountHandler(logic.NewAccountLogic(db), logic.NewEventLogic(db))
		accounts := v1.Group("/accounts")
		{
			accounts.POST("/:address/deposits", accountHandler.Deposit)
			accounts.GET("/:address", accountHandler.GetAccount)
		}
		v1.GET("/events", accountHandler.GetEvents)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

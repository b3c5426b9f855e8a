package api

import (
	"Lighthouse/internal/api/middleware"
	"Lighthouse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		ingestGroup := apiGroup.Group("/ingest")
		{
			ingestGroup.POST("", group.IngestionHandler.SubmitIngest)
			ingestGroup.POST("/file", group.IngestionHandler.SubmitFile)
			ingestGroup.GET("/status/:job_id", group.IngestionHandler.GetStatus)
		}

		dashboardGroup := apiGroup.Group("/dashboard")
		{
			dashboardGroup.GET("/:organization_id", group.DashboardHandler.GetSummary)
		}

		insightGroup := apiGroup.Group("/insights")
		{
			insightGroup.GET("/top-comments", group.InsightHandler.GetTopComments)
		}

		reviewGroup := apiGroup.Group("/manual-reviews")
		{
			reviewGroup.POST("/upload", group.ReviewHandler.Upload)
		}
	}

	return r
}

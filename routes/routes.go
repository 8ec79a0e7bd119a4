package routes

import (
	"time"

	"creatorhub/handlers"
	"creatorhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDraftRoutes registers the booking wizard endpoints.
func RegisterDraftRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drafts")
	{
		api.POST("", hb.StartDraft)
		api.GET("/:id", hb.GetDraft)
		api.DELETE("/:id", hb.CancelDraft)

		api.PUT("/:id/services", hb.UpdateServices)
		api.PUT("/:id/campaign", hb.UpdateCampaign)
		api.POST("/:id/attachment", hb.UploadAttachment)
		api.DELETE("/:id/attachment", hb.RemoveAttachment)
		api.PUT("/:id/contact", hb.UpdateContact)

		api.POST("/:id/advance", hb.Advance)
		api.POST("/:id/retreat", hb.Retreat)
		api.GET("/:id/quote", hb.Quote)
	}
}

// RegisterPaymentRoutes registers the checkout endpoints of a draft.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drafts/:id/payment")
	{
		api.POST("", hb.SubmitPayment)
		api.POST("/callback", hb.PaymentCallback)
		api.POST("/reset", hb.ResetPayment)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterAdminRoutes sets up endpoints for back-office operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, adminToken string) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminTokenMiddleware(adminToken))
		adminGroup.GET("/records/:flow/:id", hb.GetRecord)
		adminGroup.PATCH("/records/:flow/:id/status", hb.UpdateRecordStatus)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, adminToken string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterDraftRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r, hb)
	RegisterAdminRoutes(r, hb, adminToken)
}

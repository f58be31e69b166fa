package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/middlewares"
)

// RegisterRoutes wires the API surface. AuthMiddleware runs globally (it
// passes anonymous requests through); the guards gate each group.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// meta
	meta := api.Group("/meta")
	meta.GET("/regions", ListRegions)
	meta.GET("/business-types", ListBusinessTypes)

	// auth
	auth := api.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.POST("/logout", middlewares.RequireAuth(), Logout)
	auth.POST("/refresh-token", middlewares.RequireAuth(), RefreshToken)
	auth.GET("/me", middlewares.RequireUser(), Me)
	auth.PUT("/profile", middlewares.RequireUser(), UpdateProfile)

	// business profiles
	profiles := api.Group("/business-profiles")
	profiles.GET("", SearchBusinessProfiles)
	profiles.GET("/user/me", middlewares.RequireUser(), GetMyBusinessProfile)
	profiles.GET("/:id", GetBusinessProfile)
	profiles.POST("", middlewares.RequireUser(), CreateBusinessProfile)
	profiles.PUT("/:id", middlewares.RequireUser(), UpdateBusinessProfile)
	profiles.DELETE("/:id", middlewares.RequireUser(), DeleteBusinessProfile)
	profiles.POST("/:id/contact", middlewares.RequireUser(), ContactBusiness)

	// opportunities
	opps := api.Group("/opportunities")
	opps.GET("", ListOpportunities)
	opps.GET("/user/me", middlewares.RequireUser(), ListMyOpportunities)
	opps.GET("/:id", GetOpportunity)
	opps.POST("", middlewares.RequireUser(), CreateOpportunity)
	opps.PUT("/:id", middlewares.RequireUser(), UpdateOpportunity)
	opps.DELETE("/:id", middlewares.RequireUser(), DeleteOpportunity)

	// matches need a business profile
	matches := api.Group("/matches", middlewares.RequireUser(), middlewares.RequireBusinessProfile())
	matches.GET("/find", FindMatches)
	matches.GET("", ListMatches)
	matches.GET("/stats", GetMatchStats)
	matches.POST("", CreateMatch)
	matches.PUT("/:id/status", UpdateMatchStatus)

	// messages
	messages := api.Group("/messages", middlewares.RequireUser())
	messages.POST("", SendMessage)
	messages.GET("/conversations", ListConversations)
	messages.GET("/conversations/:id", ListConversationMessages)
	messages.PUT("/conversations/:id/read", MarkConversationRead)
	messages.DELETE("/:id", DeleteMessage)

	// success stories
	stories := api.Group("/success-stories")
	stories.GET("", ListSuccessStories)
	stories.GET("/user/me", middlewares.RequireUser(), ListMySuccessStories)
	stories.GET("/:id", GetSuccessStory)
	stories.POST("", middlewares.RequireUser(), CreateSuccessStory)
	stories.PUT("/:id", middlewares.RequireUser(), UpdateSuccessStory)
	stories.DELETE("/:id", middlewares.RequireUser(), DeleteSuccessStory)

	// uploads
	api.POST("/upload", middlewares.RequireUser(), UploadFile)
	uploads := api.Group("/uploads", middlewares.RequireUser())
	uploads.GET("", ListUploads)
	uploads.DELETE("/:id", DeleteUpload)
	uploads.POST("/signed-url", SignedUploadURL)

	// admin
	admin := api.Group("/admin")
	admin.POST("/bootstrap", middlewares.RequireAuth(), BootstrapAdmin)
	admin.POST("/users", middlewares.RequireAdmin(), CreateUserWithRole)
	admin.PUT("/users/:uid/role", middlewares.RequireAdmin(), SetUserRole)
	admin.POST("/business-profiles", middlewares.RequireAdmin(), CreateBusinessProfileForUser)
	admin.PUT("/business-profiles/:id/verify", middlewares.RequireAdmin(), VerifyBusinessProfile)
	admin.GET("/reports/business-profiles.xlsx", middlewares.RequireAdmin(), BusinessProfilesReport)
}

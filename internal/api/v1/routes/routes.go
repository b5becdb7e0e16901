package routes

import (
	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/handlers"
	"meetingmind/internal/api/v1/services"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/ratelimit"
	"meetingmind/internal/config"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	MeetingService       services.MeetingService
	TranscriptionService services.TranscriptionService
	SummaryService       services.SummaryService
	TranslationService   services.TranslationService
	CommentService       services.CommentService
	ShareService         services.ShareService
	NotesService         services.NotesService
	TemplateService      services.TemplateService
	InsightsService      services.InsightsService
	ExportService        services.ExportService
	ConfigService        services.ConfigService

	// Realtime is optional; without it /realtime is not registered
	Realtime *handlers.RealtimeHandler

	// RateLimits is optional; without it no quotas are enforced
	RateLimits *ratelimit.Registry
	Metrics    *metrics.Metrics
}

func (sc *ServiceContainer) limit(tier string, key middleware.KeyFunc) gin.HandlerFunc {
	if sc.RateLimits == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(sc.RateLimits, tier, key, sc.Metrics)
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	meetingHandler := handlers.NewMeetingHandler(container.MeetingService, container.InsightsService, container.ExportService)
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	summaryHandler := handlers.NewSummaryHandler(container.SummaryService, container.TranslationService)
	commentHandler := handlers.NewCommentHandler(container.CommentService)
	shareHandler := handlers.NewShareHandler(container.ShareService, container.NotesService)
	templateHandler := handlers.NewTemplateHandler(container.TemplateService)
	configHandler := handlers.NewConfigHandler(container.ConfigService)

	mutation := container.limit(config.TierMeetingMutation, middleware.ByUserOrIP)

	// Unauthenticated
	router.GET("/config", configHandler.Get)
	router.GET("/providers/stats", configHandler.ProviderStats)
	router.POST("/webhooks/assemblyai", transcriptionHandler.Webhook)

	public := router.Group("/public")
	{
		public.GET("/shares/:token", container.limit(config.TierPublicShare, middleware.ByShareToken), shareHandler.GetShared)

		comments := container.limit(config.TierPublicComments, middleware.ByShareToken)
		public.GET("/comments", comments, commentHandler.ListPublic)
		public.POST("/comments", comments, commentHandler.CreatePublic)

		notes := container.limit(config.TierPublicNotes, middleware.ByShareToken)
		public.GET("/notes", notes, shareHandler.GetNotes)
		public.POST("/notes", notes, shareHandler.UpdateNotes)
	}

	// Authenticated
	authed := router.Group("")
	authed.Use(middleware.RequireUser())
	{
		authed.POST("/upload", container.limit(config.TierUpload, middleware.ByUserOrIP), meetingHandler.Upload)

		meetings := authed.Group("/meetings")
		{
			meetings.GET("", meetingHandler.List)
			meetings.GET("/:id", meetingHandler.Get)
			meetings.PATCH("/:id", mutation, meetingHandler.Update)
			meetings.DELETE("/:id", mutation, meetingHandler.Delete)

			meetings.POST("/:id/transcribe", container.limit(config.TierTranscription, middleware.ByUserOrIP), transcriptionHandler.Start)
			meetings.GET("/:id/transcription", transcriptionHandler.Status)
			meetings.DELETE("/:id/transcription", mutation, transcriptionHandler.Reset)

			meetings.POST("/:id/summarize", mutation, summaryHandler.Summarize)
			meetings.GET("/:id/translate", summaryHandler.GetTranslation)
			meetings.POST("/:id/translate", mutation, summaryHandler.Translate)

			meetings.GET("/:id/insights", meetingHandler.Insights)
			meetings.POST("/:id/export", meetingHandler.Export)

			meetings.GET("/:id/comments", commentHandler.List)
			meetings.POST("/:id/comments", mutation, commentHandler.Create)

			meetings.GET("/:id/shares", shareHandler.List)
			meetings.POST("/:id/shares", mutation, shareHandler.Create)
		}

		authed.PATCH("/comments/:id", mutation, commentHandler.Update)
		authed.DELETE("/comments/:id", mutation, commentHandler.Delete)
		authed.DELETE("/shares/:token", mutation, shareHandler.Delete)

		templates := authed.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.POST("", mutation, templateHandler.Create)
			templates.GET("/:id", templateHandler.Get)
			templates.PATCH("/:id", mutation, templateHandler.Update)
			templates.DELETE("/:id", mutation, templateHandler.Delete)
			templates.POST("/:id/render", templateHandler.Render)
		}

		if container.Realtime != nil {
			authed.GET("/realtime", container.Realtime.Stream)
		}
	}
}

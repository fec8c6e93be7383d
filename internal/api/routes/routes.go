package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shamsaravaiah/LYSYN/internal/api/handlers"
	"github.com/shamsaravaiah/LYSYN/internal/api/middleware"
)

type Deps struct {
	Transcribe *handlers.TranscribeHandler
	Summarize  *handlers.SummarizeHandler
	Visit      *handlers.VisitHandler
	Patients   *handlers.PatientHandler
	WS         *handlers.WSHandler

	// JWTSecret enables bearer auth on everything but /ping when set.
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/")
	if d.JWTSecret != "" {
		api.Use(middleware.JWTAuth(d.JWTSecret))
	}

	api.POST("/transcribe", d.Transcribe.Post)
	api.POST("/summarize", d.Summarize.Post)

	api.GET("/patients", d.Patients.List)

	api.POST("/visit/start", d.Visit.Start)
	api.POST("/visit/stop", d.Visit.Stop)
	api.POST("/visit/summarize", d.Visit.Summarize)
	api.GET("/visit/state", d.Visit.State)

	// WebSocket
	api.GET("/ws/visit", d.WS.VisitWS)
}

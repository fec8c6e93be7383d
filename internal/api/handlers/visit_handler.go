package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shamsaravaiah/LYSYN/internal/services"
)

// VisitHandler drives the orchestrated visit flow: start and stop the
// recording, request a summary, inspect the pipeline state.
type VisitHandler struct {
	pipeline *services.Pipeline
}

func NewVisitHandler(pipeline *services.Pipeline) *VisitHandler {
	return &VisitHandler{pipeline: pipeline}
}

func (h *VisitHandler) Start(c *gin.Context) {
	st, err := h.pipeline.Start(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Stop ends the recording; the response carries the transcription outcome
// because stop and transcribe are one coupled hand-off.
func (h *VisitHandler) Stop(c *gin.Context) {
	st, err := h.pipeline.Stop(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *VisitHandler) Summarize(c *gin.Context) {
	st, err := h.pipeline.Summarize(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *VisitHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.pipeline.State())
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shamsaravaiah/LYSYN/internal/services"
	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

type SummarizeHandler struct {
	svc services.SummaryService
}

func NewSummarizeHandler(svc services.SummaryService) *SummarizeHandler {
	return &SummarizeHandler{svc: svc}
}

type SummarizeRequest struct {
	Transcript string `json:"transcript"`
}

// Post handles POST /summarize: transcript in, care note out.
func (h *SummarizeHandler) Post(c *gin.Context) {
	const op = "SummarizeHandler.Post"

	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidInput, op, "invalid request body", err))
		return
	}

	note, err := h.svc.Summarize(c.Request.Context(), req.Transcript)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shamsaravaiah/LYSYN/internal/services"
	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

// maxAudioBytes caps one uploaded recording.
const maxAudioBytes = 25 << 20

type TranscribeHandler struct {
	svc services.TranscriptionService
}

func NewTranscribeHandler(svc services.TranscriptionService) *TranscribeHandler {
	return &TranscribeHandler{svc: svc}
}

type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

// Post handles POST /transcribe: multipart field "audio" in, transcript out.
func (h *TranscribeHandler) Post(c *gin.Context) {
	const op = "TranscribeHandler.Post"

	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidInput, op, "no audio received", err))
		return
	}
	defer file.Close()

	// read one byte past the cap so an oversized upload is rejected
	// instead of silently truncated
	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidInput, op, "could not read the audio upload", err))
		return
	}
	if len(audio) > maxAudioBytes {
		writeError(c, utils.E(utils.CodeInvalidInput, op, "the audio upload exceeds 25 MB", nil))
		return
	}

	text, err := h.svc.Transcribe(c.Request.Context(), audio)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TranscribeResponse{Transcript: text})
}

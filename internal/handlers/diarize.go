package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/speaker-services/internal/audio"
	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

// DiarizeHandler partitions uploaded audio into speaker-attributed segments.
type DiarizeHandler struct {
	registry *model.Registry
}

// NewDiarizeHandler creates a new diarize handler.
func NewDiarizeHandler(registry *model.Registry) *DiarizeHandler {
	return &DiarizeHandler{registry: registry}
}

// Handle accepts audio only as a raw octet-stream body.
func (h *DiarizeHandler) Handle(c *fiber.Ctx) error {
	raw := c.Body()
	if err := checkRawLength(raw); err != nil {
		return errorResponse(c, err)
	}

	buf, err := audio.Normalize(raw, audio.TargetSampleRate)
	if err != nil {
		return errorResponse(c, err)
	}

	diarizer, err := h.registry.Diarizer()
	if err != nil {
		return errorResponse(c, err)
	}
	turns, err := diarizer.Diarize(buf)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(shapeDiarization(turns))
}

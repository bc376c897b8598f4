package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/speaker-services/internal/audio"
	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

// VerifyHandler decides whether two uploaded clips carry the same speaker.
type VerifyHandler struct {
	registry *model.Registry
}

// NewVerifyHandler creates a new verify handler.
func NewVerifyHandler(registry *model.Registry) *VerifyHandler {
	return &VerifyHandler{registry: registry}
}

// Handle requires multipart fields "audio1" and "audio2". Both files are read
// fully into memory before any processing starts.
func (h *VerifyHandler) Handle(c *fiber.Ctx) error {
	rawA, err := readRequiredFile(c, "audio1")
	if err != nil {
		return errorResponse(c, err)
	}
	rawB, err := readRequiredFile(c, "audio2")
	if err != nil {
		return errorResponse(c, err)
	}

	if err := checkRawLength(rawA); err != nil {
		return errorResponse(c, err)
	}
	if err := checkRawLength(rawB); err != nil {
		return errorResponse(c, err)
	}

	bufA, err := audio.Normalize(rawA, audio.TargetSampleRate)
	if err != nil {
		return errorResponse(c, err)
	}
	bufB, err := audio.Normalize(rawB, audio.TargetSampleRate)
	if err != nil {
		return errorResponse(c, err)
	}

	verifier, err := h.registry.Verifier()
	if err != nil {
		return errorResponse(c, err)
	}
	score, same, err := verifier.Verify(bufA, bufB)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"same_speaker": same,
		"score":        score,
	})
}

func readRequiredFile(c *fiber.Ctx, field string) ([]byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: multipart form must include %q", ErrMissingUpload, field)
	}
	return readFormFile(file)
}

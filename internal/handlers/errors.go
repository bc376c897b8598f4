package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/speaker-services/internal/audio"
	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

// ErrMissingUpload marks a required multipart field that was not provided.
var ErrMissingUpload = errors.New("missing upload")

// errorResponse maps pipeline errors onto HTTP responses. Validation failures
// are client errors; configuration and model failures are server errors, and
// the underlying message is passed through unchanged.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, audio.ErrInvalidAudio):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "ERR_INVALID_AUDIO",
		})
	case errors.Is(err, ErrMissingUpload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "ERR_MISSING_UPLOAD",
		})
	case errors.Is(err, model.ErrConfiguration):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "ERR_CONFIGURATION",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "ERR_MODEL",
		})
	}
}

// checkRawLength rejects obviously-too-short payloads before any decode is
// attempted, so truncated uploads fail fast with a deterministic message
// instead of an obscure decode error.
func checkRawLength(raw []byte) error {
	if len(raw) < audio.MinRawBytes {
		return fmt.Errorf("%w: audio too short, need at least %d bytes (~0.1s), got %d",
			audio.ErrInvalidAudio, audio.MinRawBytes, len(raw))
	}
	return nil
}

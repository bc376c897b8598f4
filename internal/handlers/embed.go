package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/speaker-services/internal/audio"
	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

// EmbedHandler computes speaker embeddings for uploaded audio.
type EmbedHandler struct {
	registry *model.Registry
}

// NewEmbedHandler creates a new embed handler.
func NewEmbedHandler(registry *model.Registry) *EmbedHandler {
	return &EmbedHandler{registry: registry}
}

// Handle accepts audio either as a raw octet-stream body or as a multipart
// form field named "audio" or "file", and responds with a 192-dim embedding.
func (h *EmbedHandler) Handle(c *fiber.Ctx) error {
	raw, err := readAudioPayload(c)
	if err != nil {
		return errorResponse(c, err)
	}
	if err := checkRawLength(raw); err != nil {
		return errorResponse(c, err)
	}

	buf, err := audio.Normalize(raw, audio.TargetSampleRate)
	if err != nil {
		return errorResponse(c, err)
	}

	embedder, err := h.registry.Embedder()
	if err != nil {
		return errorResponse(c, err)
	}
	embedding, err := embedder.Encode(buf)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"embedding": embedding})
}

// readAudioPayload picks between the multipart and raw-body ingress paths
// based on the request content type.
func readAudioPayload(c *fiber.Ctx) ([]byte, error) {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.Contains(contentType, "multipart") {
		return c.Body(), nil
	}

	file, err := c.FormFile("audio")
	if err != nil {
		file, err = c.FormFile("file")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: multipart form must include an 'audio' file", ErrMissingUpload)
	}
	return readFormFile(file)
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %q: %v", ErrMissingUpload, fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

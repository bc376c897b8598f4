package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/codebuildervaibhav/speaker-services/internal/audio"
	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

type fakeEmbedder struct {
	embedding []float64
	err       error
}

func (f *fakeEmbedder) Encode(*audio.Buffer) ([]float64, error) {
	return f.embedding, f.err
}

type fakeVerifier struct {
	score float64
	same  bool
	err   error
}

func (f *fakeVerifier) Verify(_, _ *audio.Buffer) (float64, bool, error) {
	return f.score, f.same, f.err
}

type fakeDiarizer struct {
	turns []model.Turn
	err   error
}

func (f *fakeDiarizer) Diarize(*audio.Buffer) ([]model.Turn, error) {
	return f.turns, f.err
}

// testRegistry wires fakes into the registry's constructor hooks. A nil fake
// makes the corresponding capability fail construction.
func testRegistry(e model.Embedder, v model.Verifier, d model.Diarizer) *model.Registry {
	reg := model.NewRegistry(model.Options{})
	reg.NewEmbedder = func() (model.Embedder, error) {
		if e == nil {
			return nil, errors.New("embedder unavailable")
		}
		return e, nil
	}
	reg.NewVerifier = func() (model.Verifier, error) {
		if v == nil {
			return nil, errors.New("verifier unavailable")
		}
		return v, nil
	}
	reg.NewDiarizer = func() (model.Diarizer, error) {
		if d == nil {
			return nil, errors.New("diarizer unavailable")
		}
		return d, nil
	}
	return reg
}

func newTestApp(reg *model.Registry) *fiber.App {
	app := fiber.New()
	app.Get("/health", Health("test-model"))
	app.Post("/embed", NewEmbedHandler(reg).Handle)
	app.Post("/verify", NewVerifyHandler(reg).Handle)
	app.Post("/diarize", NewDiarizeHandler(reg).Handle)
	return app
}

// pcmBody is 0.2s of silent 16-bit PCM at 16kHz, long enough for every
// ingress check.
func pcmBody() []byte {
	return make([]byte, 6400)
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]json.RawMessage) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	return resp.StatusCode, fields
}

func rawRequest(path string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/octet-stream")
	return req
}

func multipartRequest(t *testing.T, path string, files map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, data := range files {
		fw, err := w.CreateFormFile(field, field+".wav")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

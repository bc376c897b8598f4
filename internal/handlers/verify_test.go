package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyTwoFiles(t *testing.T) {
	app := newTestApp(testRegistry(nil, &fakeVerifier{score: 0.87, same: true}, nil))

	req := multipartRequest(t, "/verify", map[string][]byte{
		"audio1": pcmBody(),
		"audio2": pcmBody(),
	})
	status, fields := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, status)

	var same bool
	require.NoError(t, json.Unmarshal(fields["same_speaker"], &same))
	assert.True(t, same)

	var score float64
	require.NoError(t, json.Unmarshal(fields["score"], &score))
	assert.Equal(t, 0.87, score)
}

func TestVerifyMissingSecondFile(t *testing.T) {
	app := newTestApp(testRegistry(nil, &fakeVerifier{}, nil))

	req := multipartRequest(t, "/verify", map[string][]byte{"audio1": pcmBody()})
	status, fields := doRequest(t, app, req)
	require.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `"ERR_MISSING_UPLOAD"`, string(fields["code"]))

	var msg string
	require.NoError(t, json.Unmarshal(fields["error"], &msg))
	assert.Contains(t, msg, "audio2")
}

func TestVerifyRejectsShortUpload(t *testing.T) {
	app := newTestApp(testRegistry(nil, &fakeVerifier{}, nil))

	req := multipartRequest(t, "/verify", map[string][]byte{
		"audio1": pcmBody(),
		"audio2": make([]byte, 100),
	})
	status, fields := doRequest(t, app, req)
	require.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `"ERR_INVALID_AUDIO"`, string(fields["code"]))
}

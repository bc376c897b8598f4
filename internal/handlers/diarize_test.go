package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

func TestDiarizeShapesSegments(t *testing.T) {
	// Turns arrive unsorted and with backend speaker keys; the response must
	// relabel first-seen and sort by (start_ms, end_ms).
	diarizer := &fakeDiarizer{turns: []model.Turn{
		{Speaker: "SPEAKER_01", Start: 1.5, End: 3.9},
		{Speaker: "SPEAKER_00", Start: 0.0, End: 1.4},
		{Speaker: "SPEAKER_01", Start: 4.0, End: 5.0},
	}}
	app := newTestApp(testRegistry(nil, nil, diarizer))

	status, fields := doRequest(t, app, rawRequest("/diarize", pcmBody()))
	require.Equal(t, http.StatusOK, status)

	var segments []Segment
	require.NoError(t, json.Unmarshal(fields["segments"], &segments))
	require.Len(t, segments, 3)

	// SPEAKER_01 was seen first, so it is S0.
	assert.Equal(t, Segment{Speaker: "S1", StartMS: 0, EndMS: 1400}, segments[0])
	assert.Equal(t, Segment{Speaker: "S0", StartMS: 1500, EndMS: 3900}, segments[1])
	assert.Equal(t, Segment{Speaker: "S0", StartMS: 4000, EndMS: 5000}, segments[2])

	var durationSec float64
	require.NoError(t, json.Unmarshal(fields["duration_sec"], &durationSec))
	assert.Equal(t, 5.0, durationSec)

	var speakerCount int
	require.NoError(t, json.Unmarshal(fields["speaker_count"], &speakerCount))
	assert.Equal(t, 2, speakerCount)
}

func TestDiarizeEmptyTurns(t *testing.T) {
	app := newTestApp(testRegistry(nil, nil, &fakeDiarizer{}))

	status, fields := doRequest(t, app, rawRequest("/diarize", pcmBody()))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `0`, string(fields["duration_sec"]))
	assert.JSONEq(t, `0`, string(fields["speaker_count"]))
	assert.JSONEq(t, `[]`, string(fields["segments"]))
}

func TestDiarizeTooShortBody(t *testing.T) {
	app := newTestApp(testRegistry(nil, nil, &fakeDiarizer{}))

	status, fields := doRequest(t, app, rawRequest("/diarize", make([]byte, 500)))
	require.Equal(t, http.StatusBadRequest, status)

	var msg string
	require.NoError(t, json.Unmarshal(fields["error"], &msg))
	assert.Contains(t, msg, "too short")
}

func TestDiarizeConfigurationError(t *testing.T) {
	reg := testRegistry(nil, nil, nil)
	reg.NewDiarizer = func() (model.Diarizer, error) {
		return nil, fmt.Errorf("%w: missing Hugging Face token", model.ErrConfiguration)
	}
	app := newTestApp(reg)

	status, fields := doRequest(t, app, rawRequest("/diarize", pcmBody()))
	require.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `"ERR_CONFIGURATION"`, string(fields["code"]))
}

func TestDiarizeModelFailure(t *testing.T) {
	app := newTestApp(testRegistry(nil, nil, &fakeDiarizer{err: fmt.Errorf("%w: pipeline exploded", model.ErrInvocation)}))

	status, fields := doRequest(t, app, rawRequest("/diarize", pcmBody()))
	require.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `"ERR_MODEL"`, string(fields["code"]))

	var msg string
	require.NoError(t, json.Unmarshal(fields["error"], &msg))
	assert.Contains(t, msg, "pipeline exploded")
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	vegeta "github.com/tsenart/vegeta/v12/lib"

	"random-pairs-service/internal/api"
)

func TestSetupRunReturnsRunID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pairings/generate", r.URL.Path)
		var req api.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Participants, 6)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RunResponse{Run: api.PairingRun{RunID: "run-1"}})
	}))
	defer srv.Close()

	runID, err := setupRun(srv.URL, 6)
	require.NoError(t, err)
	require.Equal(t, "run-1", runID)
}

func TestSetupRunFailsOnRejectedRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := setupRun(srv.URL, 6)
	require.Error(t, err)
}

func TestMixedTargeterAlternatesRequests(t *testing.T) {
	targeter := newMixedTargeter("http://svc", 4, "run-1")

	var first, second vegeta.Target
	require.NoError(t, targeter(&first))
	require.NoError(t, targeter(&second))

	require.Equal(t, "POST", first.Method)
	require.Equal(t, "http://svc/pairings/generate", first.URL)
	require.Equal(t, "GET", second.Method)
	require.Contains(t, second.URL, "http://svc/pairings/run-1/rounds/")
}

func TestRunLoadTestCreatesResultsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	tmpFile := filepath.Join(t.TempDir(), "results.bin")
	prev := resultsFile
	resultsFile = tmpFile
	defer func() { resultsFile = prev }()

	require.NoError(t, runLoadTest(srv.URL, 1, 20*time.Millisecond, 4, "run-1"))

	info, err := os.Stat(tmpFile)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestRenderReportReadsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "results.bin")
	file, err := os.Create(tmpFile)
	require.NoError(t, err)
	enc := vegeta.NewEncoder(file)
	now := time.Now()
	require.NoError(t, enc.Encode(&vegeta.Result{
		Code:      http.StatusOK,
		Timestamp: now,
		Latency:   time.Millisecond,
		BytesIn:   10,
		BytesOut:  5,
	}))
	require.NoError(t, enc.Encode(&vegeta.Result{
		Code:      http.StatusBadRequest,
		Timestamp: now.Add(time.Millisecond),
		Latency:   2 * time.Millisecond,
	}))
	require.NoError(t, file.Close())

	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, tmpFile))
	require.Contains(t, buf.String(), "Requests      [total")
}

func TestWritePlotInstructions(t *testing.T) {
	var buf bytes.Buffer
	prev := resultsFile
	resultsFile = "custom.bin"
	defer func() { resultsFile = prev }()

	writePlotInstructions(&buf)
	output := buf.String()
	require.Contains(t, output, "vegeta plot custom.bin")
	require.Contains(t, output, "go install github.com/tsenart/vegeta/v12@latest")
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func fakeService(t *testing.T, status int, reply string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method, rec.path, rec.query = r.Method, r.URL.Path, r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestRunSend(t *testing.T) {
	srv, rec := fakeService(t, http.StatusOK, `{"success":true}`)
	var out bytes.Buffer

	err := runSend(newClient(srv.URL+"/", time.Second), "u1", "Погода в Одесі", `{"multi_agent":true}`, &out)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v1/chat/send", rec.path)
	assert.Equal(t, "Погода в Одесі", rec.body["message"])
	assert.Equal(t, "u1", rec.body["user_id"])
	assert.Equal(t, map[string]any{"multi_agent": true}, rec.body["context"])
	assert.Equal(t, `{"success":true}`, out.String())
}

func TestRunSendValidation(t *testing.T) {
	c := newClient("http://127.0.0.1:1", time.Second)
	assert.Error(t, runSend(c, "u1", "  ", "", io.Discard))
	assert.Error(t, runSend(c, "u1", "hi", "[1,2]", io.Discard))
}

func TestRunHistoryAndPurge(t *testing.T) {
	srv, rec := fakeService(t, http.StatusOK, `{"success":true}`)
	c := newClient(srv.URL, time.Second)

	require.NoError(t, runHistory(c, "u 1", 5, io.Discard))
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/v1/chat/history/u 1", rec.path)
	assert.Equal(t, "limit=5", rec.query)

	require.NoError(t, runPurge(c, "u1", io.Discard))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/v1/chat/history/u1", rec.path)
}

func TestHTTPErrorIsReported(t *testing.T) {
	srv, _ := fakeService(t, http.StatusBadRequest, `{"error":"Bad Request","code":400,"message":"Invalid JSON"}`)

	err := runSend(newClient(srv.URL, time.Second), "u1", "hi", "", io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 400")
	assert.Contains(t, err.Error(), "Invalid JSON")
}

func TestRunClassify(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runClassify("Нагадай купити молоко о 18:00", "", "Київ", &out))

	var rep classifyReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, "create_reminder", rep.Intent)
	assert.Equal(t, "18:00", rep.Time)
	assert.Equal(t, "uk", rep.Language)
	assert.Equal(t, "Київ", rep.City)
	assert.True(t, rep.CityDefault)
}

func TestRunClassifyRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  bogus:\n    words: [x]\n"), 0o600))
	assert.Error(t, runClassify("hi", path, "Київ", io.Discard))
}

package launcher

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kitfox-games/gameday/environ"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, script string) *Server {
	t.Helper()
	dirname := t.TempDir()
	pathname := filepath.Join(dirname, "launch.sh")
	if err := os.WriteFile(pathname, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return NewServer(Config{
		Addr:    ":0",
		Command: []string{"sh", pathname},
		Dir:     dirname,
	}, zerolog.Nop())
}

func setTokens(t *testing.T) {
	t.Helper()
	t.Setenv(environ.GitHubOrg, "kitfox-games")
	t.Setenv(environ.GitHubToken, "ghp_test")
	t.Setenv(environ.SubscriptionID, "00000000-0000-0000-0000-000000000000")
}

func postLaunch(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, LaunchResponse) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/launch", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	var resp LaunchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%v in %q", err, w.Body.String())
	}
	return w, resp
}

func TestEnvStatus(t *testing.T) {
	t.Setenv(environ.GitHubOrg, "kitfox-games")
	t.Setenv(environ.GitHubToken, "ghp_test")
	t.Setenv(environ.SubscriptionID, "")

	s := testServer(t, "true")
	r := httptest.NewRequest(http.MethodGet, "/api/env-status", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var statuses []environ.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	require.Len(t, statuses, len(environ.Required()))
	for _, status := range statuses {
		require.Equal(t, status.Variable != environ.SubscriptionID, status.IsSet, status.Variable)
	}
}

func TestLaunch(t *testing.T) {
	setTokens(t)
	s := testServer(t, `echo "provisioning $1"
echo "auto $GAMEDAY_AUTO_APPROVE"
echo "warning" 1>&2
`)

	w, resp := postLaunch(t, s, `{"name_prefix": "fluffy-dog"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	require.Equal(t, "game launch completed successfully", resp.Message)
	require.Contains(t, resp.Output, "provisioning fluffy-dog")
	require.Contains(t, resp.Output, "auto true") // the confirmation prompt must be bypassed
	require.Contains(t, resp.Output, "warning")
	require.EqualValues(t, 1, s.Starts())
}

func TestLaunchFailure(t *testing.T) {
	setTokens(t)
	s := testServer(t, "echo boom 1>&2\nexit 1\n")

	w, resp := postLaunch(t, s, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.False(t, resp.Success)
	require.Contains(t, resp.Message, "launch failed")
	require.Contains(t, resp.Output, "boom")
}

func TestLaunchMissingCredentials(t *testing.T) {
	t.Setenv(environ.GitHubOrg, "kitfox-games")
	t.Setenv(environ.GitHubToken, "ghp_test")
	t.Setenv(environ.SubscriptionID, "")

	s := testServer(t, "true")
	w, resp := postLaunch(t, s, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp.Message, environ.SubscriptionID)
	require.EqualValues(t, 0, s.Starts()) // no subprocess may start
}

func TestLaunchConflict(t *testing.T) {
	setTokens(t)
	s := testServer(t, "sleep 2\n")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w, _ := postLaunch(t, s, "")
		require.Equal(t, http.StatusOK, w.Code)
	}()

	// Wait for the first launch to actually spawn before colliding with it.
	for i := 0; i < 100 && s.Starts() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	require.EqualValues(t, 1, s.Starts())

	w, resp := postLaunch(t, s, "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.False(t, resp.Success)
	require.Contains(t, resp.Message, "already in progress")
	require.EqualValues(t, 1, s.Starts()) // no second subprocess

	wg.Wait()

	// The single-flight state must be released once the run completes.
	w, resp = postLaunch(t, s, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
}

type event struct {
	name, data string
}

func parseEvents(t *testing.T, body string) []event {
	t.Helper()
	var events []event
	for _, frame := range strings.Split(strings.TrimSuffix(body, "\n\n"), "\n\n") {
		e := event{name: "message"}
		for _, line := range strings.Split(frame, "\n") {
			if s, ok := strings.CutPrefix(line, "event: "); ok {
				e.name = s
			} else if s, ok := strings.CutPrefix(line, "data: "); ok {
				e.data = s
			}
		}
		events = append(events, e)
	}
	return events
}

func postLaunchStream(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, []event) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/launch-stream", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		return w, nil
	}
	return w, parseEvents(t, w.Body.String())
}

func TestLaunchStream(t *testing.T) {
	setTokens(t)
	s := testServer(t, `echo one
echo two 1>&2
echo three
`)

	w, events := postLaunchStream(t, s, `{"name_prefix": "fluffy-dog"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	require.NotEmpty(t, events)

	require.Equal(t, "start", events[0].name) // start precedes all output

	var outputs []string
	terminals := 0
	for _, e := range events[1:] {
		switch e.name {
		case "output":
			require.Zero(t, terminals, "output after the terminal event")
			outputs = append(outputs, e.data)
		case "complete":
			terminals++
		case "error":
			t.Errorf("unexpected error event %q", e.data)
		}
	}
	require.Equal(t, 1, terminals, "exactly one terminal event")
	require.Equal(t, "complete", events[len(events)-1].name)

	require.Contains(t, outputs, "one")
	require.Contains(t, outputs, "[stderr] two")
	require.Contains(t, outputs, "three")

	// Per-stream emission order survives the merge.
	var one, three int
	for i, line := range outputs {
		switch line {
		case "one":
			one = i
		case "three":
			three = i
		}
	}
	require.Less(t, one, three)
}

func TestLaunchStreamFailure(t *testing.T) {
	setTokens(t)
	s := testServer(t, "echo doomed\nexit 7\n")

	w, events := postLaunchStream(t, s, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "start", events[0].name)

	last := events[len(events)-1]
	require.Equal(t, "error", last.name)
	require.Contains(t, last.data, "launch failed")
	for _, e := range events {
		require.NotEqual(t, "complete", e.name)
	}
}

func TestLaunchStreamOverlongLine(t *testing.T) {
	setTokens(t)

	// One unbroken 2MB line overflows the line scanner. The stream must
	// still drain the pipe, note the truncation, and reach a terminal event
	// instead of deadlocking with the slot held.
	s := testServer(t, `echo before
head -c 2097152 /dev/zero | tr '\0' x
echo
echo after
`)

	w, events := postLaunchStream(t, s, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "complete", events[len(events)-1].name)

	var sawBefore, sawTruncated bool
	for _, e := range events {
		if e.name != "output" {
			continue
		}
		if e.data == "before" {
			sawBefore = true
		}
		if strings.Contains(e.data, "output truncated") {
			sawTruncated = true
		}
	}
	require.True(t, sawBefore)
	require.True(t, sawTruncated)

	// The slot must be free again for the next launch.
	w, resp := postLaunch(t, s, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
}

func TestLaunchStreamConflict(t *testing.T) {
	setTokens(t)
	s := testServer(t, "sleep 2\n")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		postLaunchStream(t, s, "")
	}()
	for i := 0; i < 100 && s.Starts() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/launch-stream", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	require.Equal(t, http.StatusConflict, w.Code)
	require.EqualValues(t, 1, s.Starts())

	wg.Wait()
}

func TestLaunchStreamMissingCredentials(t *testing.T) {
	t.Setenv(environ.GitHubOrg, "")
	t.Setenv(environ.GitHubToken, "ghp_test")
	t.Setenv(environ.SubscriptionID, "00000000-0000-0000-0000-000000000000")

	s := testServer(t, "true")
	r := httptest.NewRequest(http.MethodPost, "/api/launch-stream", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.EqualValues(t, 0, s.Starts())
}

func TestMethodNotAllowed(t *testing.T) {
	s := testServer(t, "true")
	for _, pathname := range []string{"/api/launch", "/api/launch-stream"} {
		r := httptest.NewRequest(http.MethodGet, pathname, nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, r)
		require.Equal(t, http.StatusMethodNotAllowed, w.Code, pathname)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/env-status", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

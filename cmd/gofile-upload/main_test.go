package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/gofile-uploader/config"
	"github.com/input-output-hk/gofile-uploader/fs/billy"
)

type server struct {
	*httptest.Server
	requests atomic.Int32
	token    atomic.Value
}

func newServer(t *testing.T, status int, body string) *server {
	t.Helper()
	s := &server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			s.token.Store(r.FormValue("token"))
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

type harness struct {
	fs     *billy.FS
	env    map[string]string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	t.Cleanup(xdg.Reload)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "none"))
	xdg.Reload()

	h := &harness{fs: billy.NewInMemoryFS(), env: map[string]string{}}
	require.NoError(t, h.fs.WriteFile("/workspace/naxobrowser.apk", []byte("PK\x03\x04apk"), 0o644))
	return h
}

func (h *harness) run(args ...string) int {
	return h.runTo(&h.stdout, args...)
}

func (h *harness) runTo(stdout io.Writer, args ...string) int {
	return run(context.Background(), args, stdout, &h.stderr, config.LoadOptions{
		Filesystem: h.fs,
		LookupEnv: func(key string) (string, bool) {
			v, ok := h.env[key]
			return v, ok
		},
	})
}

func TestRun_JSONResponse(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"ok","data":{"downloadPage":"https://gofile.io/d/abc"}}`)
	h := newHarness(t)
	h.env[config.EnvToken] = "env-token"

	code := h.run("-endpoint", srv.URL, "-log-level", "error", "/workspace/naxobrowser.apk")

	require.Equal(t, exitOK, code, h.stderr.String())
	assert.Equal(t, int32(1), srv.requests.Load())
	assert.Equal(t, "env-token", srv.token.Load())
	assert.Contains(t, h.stdout.String(), "Status Code: 200\nJSON Response:\n{\n  \"status\": \"ok\",")
}

func TestRun_FlagOverridesEnv(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{}`)
	h := newHarness(t)
	h.env[config.EnvToken] = "env-token"
	h.env[config.EnvFile] = "/workspace/naxobrowser.apk"

	code := h.run("-endpoint", srv.URL, "-token", "flag-token")

	require.Equal(t, exitOK, code, h.stderr.String())
	assert.Equal(t, "flag-token", srv.token.Load())
}

func TestRun_NonJSONResponseStillSucceeds(t *testing.T) {
	srv := newServer(t, http.StatusServiceUnavailable, "upstream busy")
	h := newHarness(t)

	code := h.run("-endpoint", srv.URL, "-file", "/workspace/naxobrowser.apk")

	require.Equal(t, exitOK, code, h.stderr.String())
	out := h.stdout.String()
	assert.Contains(t, out, "Status Code: 503\n")
	assert.Contains(t, out, "Error decoding response: ")
	assert.Contains(t, out, "Raw response:\nupstream busy\n")
}

func TestRun_MissingFile(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{}`)
	h := newHarness(t)

	code := h.run("-endpoint", srv.URL, "/workspace/missing.apk")

	assert.Equal(t, exitFile, code)
	assert.Zero(t, srv.requests.Load())
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "NOT_FOUND")
}

func TestRun_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()
	h := newHarness(t)

	code := h.run("-endpoint", endpoint, "/workspace/naxobrowser.apk")

	assert.Equal(t, exitTransport, code)
	assert.Empty(t, h.stdout.String())
}

func TestRun_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no file", args: nil},
		{name: "unknown flag", args: []string{"-retries", "3"}},
		{name: "two files", args: []string{"a.apk", "b.apk"}},
		{name: "bad endpoint", args: []string{"-endpoint", "gofile.io", "a.apk"}},
		{name: "bad log level", args: []string{"-log-level", "trace", "a.apk"}},
		{name: "missing config file", args: []string{"-config", "/etc/none.cue", "a.apk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			assert.Equal(t, exitConfig, h.run(tt.args...))
			assert.Empty(t, h.stdout.String())
			assert.NotEmpty(t, h.stderr.String())
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"ok"}`)
	h := newHarness(t)
	cue := "file: \"/workspace/naxobrowser.apk\"\ntoken: \"cue-token\"\nendpoint: \"" + srv.URL + "\"\n"
	require.NoError(t, h.fs.WriteFile("/etc/upload.cue", []byte(cue), 0o644))

	code := h.run("-config", "/etc/upload.cue")

	require.Equal(t, exitOK, code, h.stderr.String())
	assert.Equal(t, "cue-token", srv.token.Load())
}

func TestRun_Help(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, exitOK, h.run("-h"))
	assert.Contains(t, h.stderr.String(), "Usage: gofile-upload")
}

type brokenPipe struct{}

func (brokenPipe) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestRun_OutputFailure(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"ok"}`)
	h := newHarness(t)

	code := h.runTo(brokenPipe{}, "-endpoint", srv.URL, "/workspace/naxobrowser.apk")

	assert.Equal(t, exitOutput, code)
	assert.Equal(t, int32(1), srv.requests.Load())
	assert.Contains(t, h.stderr.String(), "broken pipe")
}

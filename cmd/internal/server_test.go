package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectReloadScript(t *testing.T) {
	got := string(injectReloadScript([]byte("<html><body><h1>hi</h1></BODY></html>")))
	assert.True(t, strings.HasPrefix(got, "<html><body><h1>hi</h1><script>"))
	assert.True(t, strings.HasSuffix(got, "</script></BODY></html>"))
	assert.Contains(t, got, ReloadPath)

	got = string(injectReloadScript([]byte("<h1>bare</h1>")))
	assert.True(t, strings.HasPrefix(got, "<h1>bare</h1><script>"))
}

func TestReloadMiddleware(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body>hi</body></html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0644))

	srv := httptest.NewServer(ReloadMiddleware(http.FileServer(http.Dir(dir))))
	t.Cleanup(srv.Close)

	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "EventSource")

	res, err = http.Get(srv.URL + "/style.css")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, "body{}", string(body))

	res, err = http.Get(srv.URL + "/missing.html")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestReloadHub(t *testing.T) {
	hub := NewReloadHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Reload()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "data: reload")
}

func TestServer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<body>ok</body>"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		served []string
	)
	url, err := NewServer(ServerConfig{
		DistDir: dir,
		Port:    0,
		Hub:     NewReloadHub(),
		OnRequest: func(r *http.Request, status int, _ time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			served = append(served, fmt.Sprintf("%s %s %d", r.Method, r.URL.Path, status))
		},
	}).Start(ctx)
	require.NoError(t, err)

	res, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Contains(t, string(body), "ok")
	assert.Contains(t, string(body), ReloadPath)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(served) == 1 && served[0] == "GET / 200"
	}, time.Second, 10*time.Millisecond)
}

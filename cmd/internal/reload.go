package internal

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/toprak/run/pkg/utils/set"
)

const keepAlive = 2 * time.Second

// ReloadHub fans a reload signal out to every connected browser.
type ReloadHub struct {
	mu      sync.Mutex
	clients *set.Set[chan struct{}]
}

func NewReloadHub() *ReloadHub {
	return &ReloadHub{clients: set.New[chan struct{}]()}
}

// Reload tells every subscribed page to reload. Clients that already have a
// reload pending are skipped.
func (h *ReloadHub) Reload() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.clients.Values() {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}

// Clients returns the number of connected pages.
func (h *ReloadHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients.Len()
}

func (h *ReloadHub) subscribe() chan struct{} {
	c := make(chan struct{}, 1)
	h.mu.Lock()
	h.clients.Add(c)
	h.mu.Unlock()
	return c
}

func (h *ReloadHub) unsubscribe(c chan struct{}) {
	h.mu.Lock()
	h.clients.Delete(c)
	h.mu.Unlock()
}

// Serve streams server-sent events until the page reloads or disconnects.
func (h *ReloadHub) Serve(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	c := h.subscribe()
	defer h.unsubscribe(c)

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-c:
			_, _ = io.WriteString(w, "data: reload\n\n")
			flusher.Flush()
			return
		}
	}
}

var reloadScript = fmt.Sprintf(`<script>
new EventSource(%q).onmessage = (e) => { if (e.data === "reload") location.reload(); };
</script>`, ReloadPath)

// injectReloadScript places the reload client before </body>, or at the end
// of the document when there is none.
func injectReloadScript(html []byte) []byte {
	lower := bytes.ToLower(html)
	for _, tag := range [][]byte{[]byte("</body>"), []byte("</html>")} {
		if idx := bytes.LastIndex(lower, tag); idx != -1 {
			out := make([]byte, 0, len(html)+len(reloadScript))
			out = append(out, html[:idx]...)
			out = append(out, reloadScript...)
			return append(out, html[idx:]...)
		}
	}
	return append(html, reloadScript...)
}

// ReloadMiddleware buffers HTML responses from next and injects the reload
// client. Other responses pass through untouched.
func ReloadMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !wantsHTML(r) {
			next.ServeHTTP(w, r)
			return
		}

		var (
			body   bytes.Buffer
			status = http.StatusOK
		)

		wrapped := httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(code int) { status = code }
			},
			Write: func(httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return body.Write
			},
			ReadFrom: func(httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
				return body.ReadFrom
			},
		})
		next.ServeHTTP(wrapped, r)

		out := body.Bytes()
		contentType := w.Header().Get("Content-Type")
		if contentType == "" && len(out) > 0 {
			contentType = http.DetectContentType(out)
			w.Header().Set("Content-Type", contentType)
		}
		if strings.Contains(contentType, "text/html") {
			out = injectReloadScript(out)
		}

		w.Header().Set("Content-Length", strconv.Itoa(len(out)))
		w.WriteHeader(status)
		_, _ = w.Write(out)
	})
}

func wantsHTML(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}

	switch strings.ToLower(path.Ext(r.URL.Path)) {
	case "", ".html", ".htm":
	default:
		return false
	}

	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}

package internal

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
)

// ReloadPath is where browsers subscribe to reload events.
const ReloadPath = "/_toprak/reload"

type Server struct {
	server *http.Server
	addr   string
}

type ServerConfig struct {
	DistDir string
	Host    string
	Port    int
	Hub     *ReloadHub
	// OnRequest, if set, is called after every request is served.
	OnRequest func(r *http.Request, status int, elapsed time.Duration)
}

func NewServer(config ServerConfig) *Server {
	mux := http.NewServeMux()
	fs := http.FileServer(http.Dir(config.DistDir))
	if config.Hub != nil {
		mux.HandleFunc(ReloadPath, config.Hub.Serve)
		mux.Handle("/", ReloadMiddleware(fs))
	} else {
		mux.Handle("/", fs)
	}

	host := config.Host
	if host == "" {
		host = "127.0.0.1"
	}

	var handler http.Handler = mux
	if config.OnRequest != nil {
		handler = accessLog(mux, config.OnRequest)
	}

	return &Server{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: net.JoinHostPort(host, fmt.Sprint(config.Port)),
	}
}

// Start listens and serves in the background until ctx is done. It returns
// the base URL.
func (s *Server) Start(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	go func() {
		_ = s.server.Serve(ln)
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown()
	}()

	return "http://" + ln.Addr().String() + "/", nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func accessLog(next http.Handler, fn func(*http.Request, int, time.Duration)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		fn(r, m.Code, m.Duration)
	})
}

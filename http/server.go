package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/reader"
	"github.com/google/uuid"
)

// RequestIDHeader carries the ID assigned to each request.
const RequestIDHeader = "X-Request-Id"

// Server serves a Router over HTTP with request IDs and access logging.
type Server struct {
	ln     net.Listener
	server *http.Server
	logger *slog.Logger

	// Addr is the TCP address to listen on. Set before calling Open.
	Addr string
}

// NewServer returns a Server for router. writeTimeout must leave room for
// the slowest fetch.
func NewServer(router http.Handler, logger *slog.Logger, writeTimeout time.Duration) *Server {
	s := &Server{logger: logger}
	s.server = &http.Server{
		Handler:           s.middleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	return s
}

// Open starts listening on Addr. Call Serve to accept connections.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr, err)
	}
	return nil
}

// Serve accepts connections until Shutdown is called. It returns nil after
// a clean shutdown.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("server is not open")
	}
	if err := s.server.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	addr := s.ln.Addr().(*net.TCPAddr)
	host := "localhost"
	if ip := addr.IP; ip != nil && !ip.IsUnspecified() {
		host = ip.String()
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(addr.Port)))
}

// middleware assigns a request ID, recovers panics, and logs each request.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func(begin time.Time) {
			if v := recover(); v != nil {
				s.logger.Error("panic", "request_id", id, "panic", v)
				if !rec.wroteHeader {
					status, body := reader.ErrorPage(readable.Errorf(readable.EINTERNAL, "unexpected failure"))
					writePage(rec, status, body)
				}
			}

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.RequestURI(),
				"status", rec.status,
				"bytes", rec.bytes,
				"duration", time.Since(begin),
				"request_id", id,
			)
		}(time.Now())

		next.ServeHTTP(rec, r)
	})
}

// responseRecorder captures the status code and body size of a response.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

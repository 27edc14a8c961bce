package router

import (
	"fmt"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// EnforceJSONHandler. requests with a body must be application/json.
func EnforceJSONHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				http.Error(w, "Content-Type header is not set", http.StatusUnsupportedMediaType)
				return
			}
			mt, _, err := mime.ParseMediaType(contentType)
			if err != nil || mt != "application/json" {
				http.Error(w, "Content-Type header must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (api *API) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				api.log.Error("panic while serving request", zap.String("path", r.URL.Path),
					zap.String("panic", fmt.Sprint(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RealIP. set r.RemoteAddr from X-Real-IP or the first X-Forwarded-For entry.
func RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := realIP(r); ip != "" {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func realIP(r *http.Request) string {
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return strings.TrimSpace(xrip)
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	return ""
}

// Heartbeat. answers GET /<endpoint> with 200 before the router is reached.
func Heartbeat(endpoint string) func(http.Handler) http.Handler {
	path := "/" + strings.TrimPrefix(endpoint, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == path {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func Logger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", rec.status),
				zap.Duration("latency", time.Since(start)))
		})
	}
}

// Limit. per client token bucket, RATE_LIMIT_RPS requests per second with RATE_LIMIT_BURST burst.
func Limit(next http.Handler) http.Handler {
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("RATE_LIMIT_CLIENTS", 10000)

	rps := rate.Limit(viper.GetFloat64("RATE_LIMIT_RPS"))
	burst := viper.GetInt("RATE_LIMIT_BURST")
	clients, err := lru.New[string, *rate.Limiter](viper.GetInt("RATE_LIMIT_CLIENTS"))
	if err != nil {
		clients, _ = lru.New[string, *rate.Limiter](10000)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		limiter, ok := clients.Get(ip)
		if !ok {
			limiter = rate.NewLimiter(rps, burst)
			if prev, exists, _ := clients.PeekOrAdd(ip, limiter); exists {
				limiter = prev
			}
		}
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sushihentaime/bloglist/internal/auth"
	"github.com/sushihentaime/bloglist/internal/common"
	"golang.org/x/time/rate"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				app.metrics.CounterHandleRequestPanic.Inc()
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto))

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}

func (app *application) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.metrics.GaugeRequests.Inc()
		defer func(begin time.Time) {
			app.metrics.GaugeRequests.Dec()
			app.metrics.HistRequestDuration.Observe(time.Since(begin).Seconds())
		}(time.Now())

		rec := &statusRecorder{w, http.StatusOK}

		next.ServeHTTP(rec, r)

		app.metrics.CounterRequests.With(
			prometheus.Labels{
				"method": r.Method,
				"status": strconv.Itoa(rec.statusCode),
			},
		).Inc()
	})
}

// rateLimit keeps one token bucket per client IP. Buckets of idle clients
// expire from the cache.
func (app *application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.config.RateLimitEnabled {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		limiter := app.cache.GetOrCreate(common.CacheKeyClient(ip), func() interface{} {
			return rate.NewLimiter(rate.Limit(app.config.RateLimitRPS), app.config.RateLimitBurst)
		}).(*rate.Limiter)

		if !limiter.Allow() {
			app.metrics.CounterRateLimited.Inc()
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")

		if origin != "" {
			for _, trusted := range app.config.TrustedOrigins {
				if origin != trusted {
					continue
				}

				w.Header().Set("Access-Control-Allow-Origin", origin)

				// preflight
				if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
					w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST, PUT, DELETE")
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
					w.WriteHeader(http.StatusOK)
					return
				}

				break
			}
		}

		next.ServeHTTP(w, r)
	})
}

// authenticate attaches the caller identity to the request. Requests without
// an Authorization header, or with one that does not resolve to a user,
// continue as anonymous. Protected routes reject them in requireAuthUser.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		if r.Header.Get("Authorization") == "" {
			r = app.createUserContext(r, &auth.AnonymousIdentity)
			next.ServeHTTP(w, r)
			return
		}

		identity, err := app.gate.Authenticate(r.Context(), r.Header)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrUnauthorized):
				r = app.createUserContext(r, &auth.AnonymousIdentity)
				next.ServeHTTP(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}

		r = app.createUserContext(r, identity)
		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthUser(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := app.getUserContext(r)
		if identity.IsAnonymous() {
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

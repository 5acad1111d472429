package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"freightquick/internal/store"
)

type contextKey string

const (
	ctxCompanyID contextKey = "company_id"
	ctxUserID    contextKey = "user_id"
)

// withCORS allows all origins; the SPA is served from a different host.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withAuth resolves the tenant for the request: a bearer session token wins,
// otherwise an explicit company_id query parameter is honored for
// single-tenant deployments that predate login.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")
			userID, companyID, err := s.store.GetSession(token)
			if err == store.ErrNotFound {
				respondError(w, http.StatusUnauthorized, "invalid session token")
				return
			}
			if err != nil {
				respondError(w, http.StatusInternalServerError, "session lookup failed")
				return
			}
			ctx = context.WithValue(ctx, ctxUserID, userID)
			ctx = context.WithValue(ctx, ctxCompanyID, companyID)
		} else if cid := queryInt(r, "company_id"); cid != 0 {
			ctx = context.WithValue(ctx, ctxCompanyID, cid)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// companyID returns the tenant for the request; 0 means unscoped.
func companyID(r *http.Request) int64 {
	if v, ok := r.Context().Value(ctxCompanyID).(int64); ok {
		return v
	}
	return 0
}

// userID returns the authenticated user; 0 means anonymous.
func userID(r *http.Request) int64 {
	if v, ok := r.Context().Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

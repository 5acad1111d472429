// Package server exposes the FreightQuick HTTP API: tenant-scoped CRUD over
// drivers, loads, assignments, routes, compliance, pay, insurance,
// inspections and fuel, plus match/optimize/analytics, IFTA reporting, auth
// and billing.
package server

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"freightquick/internal/billing"
	"freightquick/internal/config"
	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

// Server wires the store, matcher and billing client behind the HTTP mux.
type Server struct {
	cfg     *config.Config
	store   *store.Store
	log     *zap.Logger
	matcher *fleet.Matcher
	stripe  *billing.StripeClient

	// now is swappable so handler tests can pin the clock.
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand

	httpServer *http.Server
}

// New builds a server around an open store.
func New(cfg *config.Config, st *store.Store, log *zap.Logger) *Server {
	stripe := billing.NewStripeClient(cfg.Billing.StripeSecretKey)
	stripe.SuccessURL = cfg.Billing.SuccessURL
	stripe.CancelURL = cfg.Billing.CancelURL

	s := &Server{
		cfg:     cfg,
		store:   st,
		log:     log,
		matcher: fleet.NewMatcher(time.Now().UnixNano()),
		stripe:  stripe,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/", s.handleRoot)
	mux.HandleFunc("GET /api/healthz", s.handleHealthz)

	mux.HandleFunc("GET /api/drivers", s.handleListDrivers)
	mux.HandleFunc("POST /api/drivers", s.handleCreateDriver)
	mux.HandleFunc("PUT /api/drivers/{id}", s.handleUpdateDriver)

	mux.HandleFunc("GET /api/loads", s.handleListLoads)
	mux.HandleFunc("POST /api/loads", s.handleCreateLoad)
	mux.HandleFunc("PUT /api/loads/{id}", s.handleUpdateLoad)

	mux.HandleFunc("GET /api/assignments", s.handleListAssignments)
	mux.HandleFunc("POST /api/assignments", s.handleCreateAssignment)
	mux.HandleFunc("POST /api/match", s.handleMatch)

	mux.HandleFunc("GET /api/routes", s.handleListRoutes)
	mux.HandleFunc("POST /api/routes/optimize", s.handleOptimizeRoute)

	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)

	mux.HandleFunc("GET /api/compliance", s.handleListCompliance)
	mux.HandleFunc("POST /api/compliance", s.handleUpsertCompliance)
	mux.HandleFunc("GET /api/compliance/summary", s.handleComplianceSummary)

	mux.HandleFunc("GET /api/pay", s.handleListPay)
	mux.HandleFunc("POST /api/pay", s.handleCreatePay)
	mux.HandleFunc("GET /api/pay/summary", s.handlePaySummary)

	mux.HandleFunc("GET /api/insurance", s.handleListInsurance)
	mux.HandleFunc("POST /api/insurance", s.handleCreateInsurance)
	mux.HandleFunc("GET /api/insurance/summary", s.handleInsuranceSummary)

	mux.HandleFunc("GET /api/inspections", s.handleListInspections)
	mux.HandleFunc("POST /api/inspections", s.handleCreateInspection)
	mux.HandleFunc("GET /api/inspections/summary", s.handleInspectionSummary)

	mux.HandleFunc("GET /api/fuel", s.handleListFuel)
	mux.HandleFunc("POST /api/fuel", s.handleCreateFuel)
	mux.HandleFunc("GET /api/fuel/summary", s.handleFuelSummary)

	mux.HandleFunc("GET /api/ifta/report", s.handleIFTAReport)
	mux.HandleFunc("POST /api/ifta/trips", s.handleRecordTrips)

	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/invite", s.handleInvite)
	mux.HandleFunc("POST /api/auth/make-superadmin", s.handleMakeSuperadmin)

	mux.HandleFunc("GET /api/superadmin/companies", s.handleListCompanies)

	mux.HandleFunc("POST /api/stripe/create-checkout", s.handleCreateCheckout)
	mux.HandleFunc("GET /api/stripe/plans", s.handlePlans)
	mux.HandleFunc("GET /api/trial/status/{company_id}", s.handleTrialStatus)

	return s.withCORS(s.withAuth(s.withLogging(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP API listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"message": "FreightQuick API",
		"version": s.cfg.Version,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.GetStats(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

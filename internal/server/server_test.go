package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"freightquick/internal/config"
	"freightquick/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.DefaultConfig()
	cfg.Database.Path = ":memory:"
	s := New(cfg, st, zap.NewNop())
	return s, st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func TestSignupLoginFlow(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	signup := map[string]string{
		"company_name": "Acme Freight",
		"dot_number":   "1234567",
		"email":        "owner@acme.test",
		"password":     "hunter22",
		"full_name":    "Pat Owner",
	}
	rec := doJSON(t, h, "POST", "/api/auth/signup", signup)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		CompanyID int64  `json:"company_id"`
		Role      string `json:"role"`
	}
	decodeBody(t, rec, &created)
	assert.Equal(t, "manager", created.Role)
	assert.NotZero(t, created.CompanyID)

	// Duplicate email is rejected.
	rec = doJSON(t, h, "POST", "/api/auth/signup", signup)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody struct {
		Detail string `json:"detail"`
	}
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "Email already registered", errBody.Detail)

	// Wrong password.
	rec = doJSON(t, h, "POST", "/api/auth/login", map[string]string{
		"email": "owner@acme.test", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct password yields a session token.
	rec = doJSON(t, h, "POST", "/api/auth/login", map[string]string{
		"email": "owner@acme.test", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token       string `json:"token"`
		CompanyID   int64  `json:"company_id"`
		CompanyName string `json:"company_name"`
	}
	decodeBody(t, rec, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, created.CompanyID, login.CompanyID)
	assert.Equal(t, "Acme Freight", login.CompanyName)

	// The token scopes requests to the new, empty tenant.
	req := httptest.NewRequest("GET", "/api/drivers", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	authed := httptest.NewRecorder()
	h.ServeHTTP(authed, req)
	require.Equal(t, http.StatusOK, authed.Code)
	assert.Equal(t, "[]\n", authed.Body.String())

	// A bogus token is rejected.
	req = httptest.NewRequest("GET", "/api/drivers", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	bad := httptest.NewRecorder()
	h.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestInviteDriver(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, "POST", "/api/auth/signup", map[string]string{
		"company_name": "Acme Freight",
		"email":        "owner@acme.test",
		"password":     "hunter22",
		"full_name":    "Pat Owner",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		CompanyID int64 `json:"company_id"`
	}
	decodeBody(t, rec, &created)

	rec = doJSON(t, h, "POST", "/api/auth/invite", map[string]any{
		"email":      "driver@acme.test",
		"full_name":  "Dana Driver",
		"company_id": created.CompanyID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var invite struct {
		Message     string `json:"message"`
		InviteToken string `json:"invite_token"`
	}
	decodeBody(t, rec, &invite)
	assert.Equal(t, "Driver invited", invite.Message)
	assert.NotEmpty(t, invite.InviteToken)

	// Invited accounts cannot log in until activated.
	rec = doJSON(t, h, "POST", "/api/auth/login", map[string]string{
		"email": "driver@acme.test", "password": "",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSuperadminCompanies(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, "POST", "/api/auth/signup", map[string]string{
		"company_name": "Acme Freight",
		"email":        "owner@acme.test",
		"password":     "hunter22",
		"full_name":    "Pat Owner",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Wrong secret.
	rec = doJSON(t, h, "POST", "/api/auth/make-superadmin", map[string]string{
		"secret": "nope", "email": "owner@acme.test",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, "POST", "/api/auth/make-superadmin", map[string]string{
		"secret": superadminSecret, "email": "owner@acme.test",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, "POST", "/api/auth/login", map[string]string{
		"email": "owner@acme.test", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	decodeBody(t, rec, &login)
	assert.Equal(t, "superadmin", login.Role)

	// Anonymous access to the console is refused.
	anon := doJSON(t, h, "GET", "/api/superadmin/companies", nil)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	req := httptest.NewRequest("GET", "/api/superadmin/companies", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	authed := httptest.NewRecorder()
	h.ServeHTTP(authed, req)
	require.Equal(t, http.StatusOK, authed.Code, authed.Body.String())

	var companies []struct {
		CompanyName string `json:"company_name"`
		TotalUsers  int    `json:"total_users"`
	}
	decodeBody(t, authed, &companies)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Freight", companies[0].CompanyName)
	assert.Equal(t, 1, companies[0].TotalUsers)
}

func TestDriversOverHTTP(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.Seed())
	h := s.Handler()

	rec := doJSON(t, h, "GET", "/api/drivers?company_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var drivers []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Status   string `json:"status"`
	}
	decodeBody(t, rec, &drivers)
	assert.Len(t, drivers, 11)

	rec = doJSON(t, h, "GET", "/api/drivers?company_id=1&status=available", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var available []struct {
		Status string `json:"status"`
	}
	decodeBody(t, rec, &available)
	require.NotEmpty(t, available)
	for _, d := range available {
		assert.Equal(t, "available", d.Status)
	}

	// Missing username is rejected.
	rec = doJSON(t, h, "POST", "/api/drivers?company_id=1", map[string]string{
		"full_name": "No Handle",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, "POST", "/api/drivers?company_id=1", map[string]any{
		"username":  "new_hire",
		"full_name": "New Hire",
		"home_base": "Tulsa, OK",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var createResp struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, rec, &createResp)
	require.NotZero(t, createResp.ID)

	rec = doJSON(t, h, "PUT", fmt.Sprintf("/api/drivers/%d", createResp.ID), map[string]any{
		"status": "off_duty",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, "PUT", "/api/drivers/99999", map[string]any{"status": "off_duty"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchAssignOptimize(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.Seed())
	h := s.Handler()

	// Find an unassigned load.
	rec := doJSON(t, h, "GET", "/api/loads?company_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loads []struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, rec, &loads)
	var loadID int64
	for _, l := range loads {
		if l.Status == "available" {
			loadID = l.ID
			break
		}
	}
	require.NotZero(t, loadID, "seed data should contain an available load")

	rec = doJSON(t, h, "POST", "/api/match?company_id=1", map[string]any{"load_id": loadID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var match struct {
		Matches []struct {
			ID         int64   `json:"id"`
			MatchScore float64 `json:"match_score"`
			MatchType  string  `json:"match_type"`
			ETA        string  `json:"eta_to_pickup"`
		} `json:"matches"`
	}
	decodeBody(t, rec, &match)
	require.NotEmpty(t, match.Matches)
	assert.LessOrEqual(t, len(match.Matches), 5)
	for i, m := range match.Matches {
		assert.Greater(t, m.MatchScore, 0.0)
		assert.LessOrEqual(t, m.MatchScore, 1.0)
		assert.NotEmpty(t, m.MatchType)
		assert.NotEmpty(t, m.ETA)
		if i > 0 {
			assert.GreaterOrEqual(t, match.Matches[i-1].MatchScore, m.MatchScore, "matches must be sorted by score")
		}
	}

	driverID := match.Matches[0].ID
	rec = doJSON(t, h, "POST", "/api/assignments?company_id=1", map[string]any{
		"driver_id": driverID,
		"load_id":   loadID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var assignment struct {
		ID         int64   `json:"id"`
		MatchScore float64 `json:"match_score"`
		MatchType  string  `json:"match_type"`
	}
	decodeBody(t, rec, &assignment)
	assert.GreaterOrEqual(t, assignment.MatchScore, 0.80)
	assert.LessOrEqual(t, assignment.MatchScore, 0.99)
	assert.NotEmpty(t, assignment.MatchType)

	// The assignment produced a costed route.
	rec = doJSON(t, h, "GET", "/api/routes?company_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var routes []struct {
		AssignmentID int64   `json:"assignment_id"`
		TotalMiles   float64 `json:"total_miles"`
	}
	decodeBody(t, rec, &routes)
	var before float64
	for _, rt := range routes {
		if rt.AssignmentID == assignment.ID {
			before = rt.TotalMiles
		}
	}
	require.NotZero(t, before)

	rec = doJSON(t, h, "POST", "/api/routes/optimize?company_id=1", map[string]any{
		"assignment_id": assignment.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var opt struct {
		Optimized    bool    `json:"optimized"`
		SavingsMiles float64 `json:"savings_miles"`
		NewTotal     float64 `json:"new_total"`
	}
	decodeBody(t, rec, &opt)
	assert.True(t, opt.Optimized)
	assert.Greater(t, opt.SavingsMiles, 0.0)
	assert.Less(t, opt.NewTotal, before)
	// Savings land in the 3-8% band.
	pct := opt.SavingsMiles / before
	assert.InDelta(t, 0.055, pct, 0.03)

	// Assigning the same load again fails and leaves state intact.
	rec = doJSON(t, h, "POST", "/api/assignments?company_id=1", map[string]any{
		"driver_id": driverID,
		"load_id":   loadID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComplianceSummaryOverHTTP(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.Seed())
	s.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	h := s.Handler()

	for driverID, expiry := range map[int64]string{
		1: "2027-01-01", // ok
		2: "2026-06-15", // expiring soon
		3: "2026-01-01", // expired
	} {
		rec := doJSON(t, h, "POST", "/api/compliance?company_id=1", map[string]any{
			"driver_id":           driverID,
			"cdl_expiry":          expiry,
			"medical_card_expiry": "2027-01-01",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, h, "GET", "/api/compliance/summary?company_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		Total        int `json:"total"`
		Expired      int `json:"expired"`
		ExpiringSoon int `json:"expiring_soon"`
		Compliant    int `json:"compliant"`
	}
	decodeBody(t, rec, &summary)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Expired)
	assert.Equal(t, 1, summary.ExpiringSoon)
	assert.Equal(t, 1, summary.Compliant)

	rec = doJSON(t, h, "GET", "/api/compliance?company_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []struct {
		DriverID  int64  `json:"driver_id"`
		CDLStatus string `json:"cdl_status"`
	}
	decodeBody(t, rec, &records)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.NotEmpty(t, r.CDLStatus)
	}
}

func TestIFTAReportOverHTTP(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.Seed())
	h := s.Handler()

	rec := doJSON(t, h, "POST", "/api/ifta/trips?company_id=1", map[string]any{
		"assignment_id": 1,
		"legs": []map[string]any{
			{"jurisdiction": "IL", "miles": 600, "date": "2026-01-15"},
			{"jurisdiction": "IN", "miles": 300, "date": "2026-01-16"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, "POST", "/api/fuel?company_id=1", map[string]any{
		"driver_id":        1,
		"jurisdiction":     "IL",
		"gallons":          150,
		"price_per_gallon": 4.0,
		"date":             "2026-01-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, "GET", "/api/ifta/report?company_id=1&quarter=2026Q1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report struct {
		Quarter    string  `json:"quarter"`
		TotalMiles float64 `json:"total_miles"`
		FleetMPG   float64 `json:"fleet_mpg"`
		Lines      []struct {
			Jurisdiction string  `json:"jurisdiction"`
			NetDue       float64 `json:"net_due"`
		} `json:"jurisdictions"`
	}
	decodeBody(t, rec, &report)
	assert.Equal(t, "2026Q1", report.Quarter)
	assert.Equal(t, 900.0, report.TotalMiles)
	assert.Equal(t, 6.0, report.FleetMPG)
	require.Len(t, report.Lines, 2)

	// Bad quarter strings are a client error.
	rec = doJSON(t, h, "GET", "/api/ifta/report?company_id=1&quarter=banana", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillingEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, "POST", "/api/auth/signup", map[string]string{
		"company_name": "Acme Freight",
		"email":        "owner@acme.test",
		"password":     "hunter22",
		"full_name":    "Pat Owner",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		CompanyID int64 `json:"company_id"`
	}
	decodeBody(t, rec, &created)

	rec = doJSON(t, h, "GET", "/api/stripe/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plans []struct {
		Name    string `json:"name"`
		Drivers int    `json:"drivers"`
		Price   int    `json:"price"`
	}
	decodeBody(t, rec, &plans)
	require.Len(t, plans, 3)
	assert.Equal(t, "Starter", plans[0].Name)
	assert.Equal(t, 5*29, plans[0].Price)

	rec = doJSON(t, h, "GET", fmt.Sprintf("/api/trial/status/%d", created.CompanyID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var trial struct {
		Status   string `json:"status"`
		DaysLeft *int   `json:"days_left"`
	}
	decodeBody(t, rec, &trial)
	assert.Equal(t, "trial", trial.Status)
	require.NotNil(t, trial.DaysLeft)
	assert.Positive(t, *trial.DaysLeft)

	rec = doJSON(t, h, "GET", "/api/trial/status/99999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// No Stripe key configured.
	rec = doJSON(t, h, "POST", "/api/stripe/create-checkout", map[string]any{
		"company_id": created.CompanyID, "driver_count": 5,
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalyticsOverHTTP(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.Seed())
	h := s.Handler()

	rec := doJSON(t, h, "GET", "/api/analytics?company_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Summary struct {
			TotalDrivers     int `json:"total_drivers"`
			AvailableDrivers int `json:"available_drivers"`
		} `json:"summary"`
		DailyTrend []struct {
			Date  string `json:"date"`
			Loads int    `json:"loads"`
		} `json:"daily_trend"`
		DriverUtilization []struct {
			DriverType string `json:"driver_type"`
		} `json:"driver_utilization"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, 11, body.Summary.TotalDrivers)
	assert.Len(t, body.DailyTrend, 14)
	assert.NotEmpty(t, body.DriverUtilization)
}

func TestRunGracefulShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	cfg := config.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	s := New(cfg, st, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHealthzAndRoot(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, "GET", "/api/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, "GET", "/api/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var root struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &root)
	assert.Equal(t, "FreightQuick API", root.Message)

	// CORS preflight short-circuits.
	req := httptest.NewRequest(http.MethodOptions, "/api/drivers", nil)
	pre := httptest.NewRecorder()
	h.ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)
	assert.Equal(t, "*", pre.Header().Get("Access-Control-Allow-Origin"))
}

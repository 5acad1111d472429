package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightquick/internal/fleet"
)

func TestPlans(t *testing.T) {
	plans := Plans(29)
	require.Len(t, plans, 3)
	assert.Equal(t, 145, plans[0].Price)
	assert.Equal(t, 435, plans[1].Price)
	assert.Equal(t, 1450, plans[2].Price)

	// Zero falls back to the standard rate.
	plans = Plans(0)
	assert.Equal(t, 29, plans[0].PerDriver)
}

func TestDeriveTrialStatus(t *testing.T) {
	now := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)

	t.Run("Subscribed", func(t *testing.T) {
		st := DeriveTrialStatus(fleet.Company{IsSubscribed: true}, 14, now)
		assert.Equal(t, "subscribed", st.Status)
		assert.Nil(t, st.DaysLeft)
	})

	t.Run("ActiveTrial", func(t *testing.T) {
		ends := now.Add(10 * 24 * time.Hour).Format(time.RFC3339)
		st := DeriveTrialStatus(fleet.Company{TrialEndsAt: ends}, 14, now)
		assert.Equal(t, "trial", st.Status)
		require.NotNil(t, st.DaysLeft)
		assert.Equal(t, 10, *st.DaysLeft)
	})

	t.Run("Expired", func(t *testing.T) {
		ends := now.Add(-48 * time.Hour).Format(time.RFC3339)
		st := DeriveTrialStatus(fleet.Company{TrialEndsAt: ends}, 14, now)
		assert.Equal(t, "expired", st.Status)
		require.NotNil(t, st.DaysLeft)
		assert.Equal(t, 0, *st.DaysLeft)
	})

	t.Run("NoTrialRecorded", func(t *testing.T) {
		st := DeriveTrialStatus(fleet.Company{}, 14, now)
		assert.Equal(t, "trial", st.Status)
		require.NotNil(t, st.DaysLeft)
		assert.Equal(t, 14, *st.DaysLeft)
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "subscription", r.PostForm.Get("mode"))
		assert.Equal(t, "5", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "2900", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "7", r.PostForm.Get("metadata[company_id]"))

		json.NewEncoder(w).Encode(map[string]string{"url": "https://checkout.stripe.com/pay/cs_test"})
	}))
	defer srv.Close()

	c := NewStripeClient("sk_test_123")
	c.baseURL = srv.URL
	c.SuccessURL = "https://example.test/ok"
	c.CancelURL = "https://example.test/cancel"

	url, err := c.CreateCheckoutSession(context.Background(), CheckoutRequest{
		CompanyID: 7, CompanyName: "Acme", Email: "a@acme.test",
		DriverCount: 5, UnitAmountCents: 2900,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test", url)
}

func TestCreateCheckoutSessionErrors(t *testing.T) {
	c := NewStripeClient("")
	_, err := c.CreateCheckoutSession(context.Background(), CheckoutRequest{DriverCount: 1})
	assert.ErrorIs(t, err, ErrNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Invalid API key"},
		})
	}))
	defer srv.Close()

	c = NewStripeClient("sk_bad")
	c.baseURL = srv.URL
	_, err = c.CreateCheckoutSession(context.Background(), CheckoutRequest{
		DriverCount: 1, UnitAmountCents: 2900,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

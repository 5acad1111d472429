// Package billing handles subscription plans, free trials, and checkout
// session creation against the Stripe API.
package billing

import (
	"time"

	"freightquick/internal/fleet"
)

// Plan is a subscription tier.
type Plan struct {
	Name        string `json:"name"`
	Drivers     int    `json:"drivers"`
	Price       int    `json:"price"`
	PerDriver   int    `json:"per_driver"`
	Description string `json:"description"`
}

// Plans returns the subscription catalog for the given per-driver price.
func Plans(perDriver int) []Plan {
	if perDriver <= 0 {
		perDriver = 29
	}
	return []Plan{
		{Name: "Starter", Drivers: 5, Price: 5 * perDriver, PerDriver: perDriver, Description: "Up to 5 drivers"},
		{Name: "Growth", Drivers: 15, Price: 15 * perDriver, PerDriver: perDriver, Description: "Up to 15 drivers"},
		{Name: "Fleet", Drivers: 50, Price: 50 * perDriver, PerDriver: perDriver, Description: "Up to 50 drivers"},
	}
}

// TrialStatus is the company's billing state.
type TrialStatus struct {
	Status   string `json:"status"` // subscribed, trial, expired
	DaysLeft *int   `json:"days_left"`
}

// DeriveTrialStatus classifies a company's trial against now. A company with
// no recorded trial end is treated as a fresh trial.
func DeriveTrialStatus(c fleet.Company, trialDays int, now time.Time) TrialStatus {
	if c.IsSubscribed {
		return TrialStatus{Status: "subscribed"}
	}
	if c.TrialEndsAt == "" {
		days := trialDays
		return TrialStatus{Status: "trial", DaysLeft: &days}
	}
	ends, err := time.Parse(time.RFC3339, c.TrialEndsAt)
	if err != nil {
		days := trialDays
		return TrialStatus{Status: "trial", DaysLeft: &days}
	}
	daysLeft := int(ends.Sub(now).Hours() / 24)
	if daysLeft > 0 {
		return TrialStatus{Status: "trial", DaysLeft: &daysLeft}
	}
	zero := 0
	return TrialStatus{Status: "expired", DaysLeft: &zero}
}

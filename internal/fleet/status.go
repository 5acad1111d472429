package fleet

import (
	"math"
	"time"
)

// ExpiryStatus classifies a dated document relative to now.
type ExpiryStatus string

const (
	StatusMissing      ExpiryStatus = "missing"
	StatusExpired      ExpiryStatus = "expired"
	StatusExpiringSoon ExpiryStatus = "expiring_soon"
	StatusOK           ExpiryStatus = "ok"
)

// ExpiringSoonWindow is how close to expiry a document must be before it is
// flagged as expiring_soon.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// DeriveExpiryStatus classifies a YYYY-MM-DD expiry date against now. Extra
// trailing characters (timestamps) are ignored; empty or unparseable dates
// report missing.
func DeriveExpiryStatus(expiry string, now time.Time) ExpiryStatus {
	if expiry == "" {
		return StatusMissing
	}
	if len(expiry) > 10 {
		expiry = expiry[:10]
	}
	exp, err := time.Parse("2006-01-02", expiry)
	if err != nil {
		return StatusMissing
	}
	left := exp.Sub(now)
	switch {
	case left < 0:
		return StatusExpired
	case left <= ExpiringSoonWindow:
		return StatusExpiringSoon
	default:
		return StatusOK
	}
}

// DeriveStatuses fills the per-document status fields of a compliance record.
func (c *ComplianceRecord) DeriveStatuses(now time.Time) {
	c.CDLStatus = DeriveExpiryStatus(c.CDLExpiry, now)
	c.MedicalStatus = DeriveExpiryStatus(c.MedicalCardExpiry, now)
	c.InspectionStatus = DeriveExpiryStatus(c.AnnualInspectionExpiry, now)
	c.DrugTestStatus = DeriveExpiryStatus(c.DrugTestDate, now)
}

// Derive fills the deduction totals and net pay of a pay record. Net pay is
// rounded to cents.
func (p *PayRecord) Derive() {
	p.TotalDeductions = p.FuelDeduction + p.InsuranceDeduction + p.AdvanceDeduction + p.OtherDeduction
	p.NetPay = Round2(p.GrossPay - p.TotalDeductions)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

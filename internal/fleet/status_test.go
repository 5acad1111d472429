package fleet

import (
	"testing"
	"time"
)

func TestDeriveExpiryStatus(t *testing.T) {
	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry string
		want   ExpiryStatus
	}{
		{"Empty", "", StatusMissing},
		{"Garbage", "not-a-date", StatusMissing},
		{"Expired", "2026-01-01", StatusExpired},
		{"ExpiredYesterday", "2026-02-17", StatusExpired},
		{"ExpiringSoon", "2026-03-01", StatusExpiringSoon},
		{"EdgeOfWindow", "2026-03-20", StatusExpiringSoon},
		{"OK", "2026-06-01", StatusOK},
		{"FarFuture", "2030-01-01", StatusOK},
		{"TimestampSuffixIgnored", "2026-06-01T00:00:00", StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveExpiryStatus(tt.expiry, now); got != tt.want {
				t.Errorf("DeriveExpiryStatus(%q) = %v, want %v", tt.expiry, got, tt.want)
			}
		})
	}
}

func TestComplianceDeriveStatuses(t *testing.T) {
	now := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
	rec := ComplianceRecord{
		CDLExpiry:              "2027-05-01",
		MedicalCardExpiry:      "2026-03-01",
		AnnualInspectionExpiry: "2025-12-31",
	}
	rec.DeriveStatuses(now)

	if rec.CDLStatus != StatusOK {
		t.Errorf("CDL status = %v, want ok", rec.CDLStatus)
	}
	if rec.MedicalStatus != StatusExpiringSoon {
		t.Errorf("medical status = %v, want expiring_soon", rec.MedicalStatus)
	}
	if rec.InspectionStatus != StatusExpired {
		t.Errorf("inspection status = %v, want expired", rec.InspectionStatus)
	}
	if rec.DrugTestStatus != StatusMissing {
		t.Errorf("drug test status = %v, want missing", rec.DrugTestStatus)
	}
}

func TestPayRecordDerive(t *testing.T) {
	p := PayRecord{
		GrossPay:           3250.00,
		FuelDeduction:      412.50,
		InsuranceDeduction: 125.00,
		AdvanceDeduction:   200.00,
		OtherDeduction:     17.25,
	}
	p.Derive()

	if p.TotalDeductions != 754.75 {
		t.Errorf("total deductions = %v, want 754.75", p.TotalDeductions)
	}
	if p.NetPay != 2495.25 {
		t.Errorf("net pay = %v, want 2495.25", p.NetPay)
	}
}

func TestRouteEstimate(t *testing.T) {
	hours, fuel, tolls := RouteEstimate(550)
	if hours != 10.0 {
		t.Errorf("hours = %v, want 10.0", hours)
	}
	if fuel != 236.5 {
		t.Errorf("fuel = %v, want 236.5", fuel)
	}
	if tolls != 44.0 {
		t.Errorf("tolls = %v, want 44.0", tolls)
	}
}

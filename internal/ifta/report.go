// Package ifta reconstructs quarterly fuel-tax liability per US jurisdiction
// from trip mileage and fuel purchases, per the International Fuel Tax
// Agreement: fleet MPG apportions total fuel burn across the states driven,
// and tax already paid at the pump in each state offsets what is owed there.
package ifta

import (
	"math"
	"sort"
)

// Leg is miles driven in one jurisdiction.
type Leg struct {
	Jurisdiction string
	Miles        float64
}

// Purchase is fuel bought in one jurisdiction.
type Purchase struct {
	Jurisdiction string
	Gallons      float64
}

// JurisdictionLine is one row of the quarterly report.
type JurisdictionLine struct {
	Jurisdiction   string  `json:"jurisdiction"`
	Member         bool    `json:"ifta_member"`
	Miles          float64 `json:"miles"`
	TaxableGallons float64 `json:"taxable_gallons"`
	TaxRate        float64 `json:"tax_rate"`
	TaxDue         float64 `json:"tax_due"`
	GallonsBought  float64 `json:"gallons_purchased"`
	TaxPaid        float64 `json:"tax_paid"`
	NetDue         float64 `json:"net_due"`
}

// Report is the quarterly reconciliation across all jurisdictions touched.
type Report struct {
	Quarter       string             `json:"quarter"`
	TotalMiles    float64            `json:"total_miles"`
	TotalGallons  float64            `json:"total_gallons"`
	FleetMPG      float64            `json:"fleet_mpg"`
	Lines         []JurisdictionLine `json:"jurisdictions"`
	TotalTaxDue   float64            `json:"total_tax_due"`
	TotalTaxPaid  float64            `json:"total_tax_paid"`
	TotalNetDue   float64            `json:"total_net_due"`
	NonMemberNote string             `json:"non_member_note,omitempty"`
}

// BuildReport reconstructs the quarter from raw legs and purchases. A
// jurisdiction appears in the report if it was driven in or fueled in. With
// no fuel purchased the fleet MPG is undefined and all tax figures are zero.
func BuildReport(quarter Quarter, legs []Leg, purchases []Purchase) Report {
	milesBy := map[string]float64{}
	gallonsBy := map[string]float64{}
	var totalMiles, totalGallons float64

	for _, l := range legs {
		milesBy[l.Jurisdiction] += l.Miles
		totalMiles += l.Miles
	}
	for _, p := range purchases {
		gallonsBy[p.Jurisdiction] += p.Gallons
		totalGallons += p.Gallons
	}

	var mpg float64
	if totalGallons > 0 {
		mpg = totalMiles / totalGallons
	}

	seen := map[string]bool{}
	var jurisdictions []string
	for j := range milesBy {
		seen[j] = true
		jurisdictions = append(jurisdictions, j)
	}
	for j := range gallonsBy {
		if !seen[j] {
			jurisdictions = append(jurisdictions, j)
		}
	}
	sort.Strings(jurisdictions)

	rep := Report{
		Quarter:      quarter.String(),
		TotalMiles:   round1(totalMiles),
		TotalGallons: round2(totalGallons),
		FleetMPG:     round2(mpg),
	}

	nonMember := false
	for _, j := range jurisdictions {
		rate, member := Rate(j)
		if !member {
			nonMember = true
		}

		line := JurisdictionLine{
			Jurisdiction:  j,
			Member:        member,
			Miles:         round1(milesBy[j]),
			TaxRate:       rate,
			GallonsBought: round2(gallonsBy[j]),
		}
		if mpg > 0 {
			line.TaxableGallons = round2(milesBy[j] / mpg)
		}
		line.TaxDue = round2(line.TaxableGallons * rate)
		line.TaxPaid = round2(gallonsBy[j] * rate)
		line.NetDue = round2(line.TaxDue - line.TaxPaid)

		rep.Lines = append(rep.Lines, line)
		rep.TotalTaxDue += line.TaxDue
		rep.TotalTaxPaid += line.TaxPaid
		rep.TotalNetDue += line.NetDue
	}

	rep.TotalTaxDue = round2(rep.TotalTaxDue)
	rep.TotalTaxPaid = round2(rep.TotalTaxPaid)
	rep.TotalNetDue = round2(rep.TotalNetDue)
	if nonMember {
		rep.NonMemberNote = "one or more jurisdictions are not IFTA members; their miles carry no tax"
	}
	return rep
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

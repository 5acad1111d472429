package ifta

// dieselRates holds the per-gallon diesel tax rate for each IFTA member
// jurisdiction, in USD. Rates follow the published IFTA rate matrix; member
// states only (Alaska, Hawaii and DC are not IFTA members).
var dieselRates = map[string]float64{
	"AL": 0.29, "AR": 0.285, "AZ": 0.26, "CA": 0.889, "CO": 0.205,
	"CT": 0.492, "DE": 0.22, "FL": 0.3757, "GA": 0.353, "IA": 0.325,
	"ID": 0.32, "IL": 0.667, "IN": 0.57, "KS": 0.26, "KY": 0.287,
	"LA": 0.20, "MA": 0.24, "MD": 0.4275, "ME": 0.312, "MI": 0.476,
	"MN": 0.285, "MO": 0.245, "MS": 0.18, "MT": 0.2945, "NC": 0.405,
	"ND": 0.23, "NE": 0.248, "NH": 0.222, "NJ": 0.445, "NM": 0.21,
	"NV": 0.27, "NY": 0.3895, "OH": 0.47, "OK": 0.19, "OR": 0.0,
	"PA": 0.741, "RI": 0.34, "SC": 0.28, "SD": 0.28, "TN": 0.27,
	"TX": 0.20, "UT": 0.365, "VA": 0.298, "VT": 0.32, "WA": 0.494,
	"WI": 0.329, "WV": 0.372, "WY": 0.24,
}

// Rate returns the diesel tax rate for a jurisdiction and whether the
// jurisdiction is an IFTA member. Non-members report a zero rate.
func Rate(jurisdiction string) (float64, bool) {
	r, ok := dieselRates[jurisdiction]
	return r, ok
}

// Package fleet holds the domain types shared by the store and the HTTP API,
// plus the pure derivations over them (document expiry status, pay arithmetic,
// driver/load match scoring).
package fleet

// Driver is a company driver. Status is one of "available", "on_load",
// "off_duty".
type Driver struct {
	ID              int64   `json:"id"`
	CompanyID       int64   `json:"company_id"`
	Username        string  `json:"username"`
	FullName        string  `json:"full_name"`
	Status          string  `json:"status"`
	DriverType      string  `json:"driver_type"` // OTR, Regional, Solo
	HomeBase        string  `json:"home_base"`
	CurrentLocation string  `json:"current_location"`
	LoadsCompleted  int     `json:"loads_completed"`
	OnTimeRate      float64 `json:"on_time_rate"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// Load is a shipment to be transported. Status is one of "available",
// "assigned", "in_transit", "delivered".
type Load struct {
	ID               int64   `json:"id"`
	CompanyID        int64   `json:"company_id"`
	LoadNumber       string  `json:"load_number"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	PickupDate       string  `json:"pickup_date"`
	DeliveryDate     string  `json:"delivery_date"`
	Weight           float64 `json:"weight"`
	Miles            float64 `json:"miles"`
	Rate             float64 `json:"rate"`
	Status           string  `json:"status"`
	LoadType         string  `json:"load_type"`
	Commodity        string  `json:"commodity"`
	AssignedDriverID int64   `json:"assigned_driver_id,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`

	// Joined from drivers when listing.
	DriverUsername string `json:"driver_username,omitempty"`
	DriverName     string `json:"driver_name,omitempty"`
}

// Assignment pairs a driver with a load.
type Assignment struct {
	ID         int64   `json:"id"`
	DriverID   int64   `json:"driver_id"`
	LoadID     int64   `json:"load_id"`
	MatchScore float64 `json:"match_score"`
	MatchType  string  `json:"match_type"`
	Status     string  `json:"status"`
	AssignedAt string  `json:"assigned_at,omitempty"`

	// Joined driver/load fields for listings.
	Username     string  `json:"username,omitempty"`
	FullName     string  `json:"full_name,omitempty"`
	DriverStatus string  `json:"driver_status,omitempty"`
	LoadNumber   string  `json:"load_number,omitempty"`
	Origin       string  `json:"origin,omitempty"`
	Destination  string  `json:"destination,omitempty"`
	Rate         float64 `json:"rate,omitempty"`
	Miles        float64 `json:"miles,omitempty"`
}

// Route is the planned route for an assignment, with cost estimates derived
// from mileage.
type Route struct {
	ID             int64   `json:"id"`
	AssignmentID   int64   `json:"assignment_id"`
	Waypoints      string  `json:"waypoints,omitempty"`
	TotalMiles     float64 `json:"total_miles"`
	EstimatedHours float64 `json:"estimated_hours"`
	FuelCost       float64 `json:"fuel_cost"`
	TollCost       float64 `json:"toll_cost"`
	OptimizedAt    string  `json:"optimized_at,omitempty"`

	// Joined fields for listings.
	MatchType        string `json:"match_type,omitempty"`
	AssignmentStatus string `json:"assignment_status,omitempty"`
	Username         string `json:"username,omitempty"`
	FullName         string `json:"full_name,omitempty"`
	LoadNumber       string `json:"load_number,omitempty"`
	Origin           string `json:"origin,omitempty"`
	Destination      string `json:"destination,omitempty"`
}

// ComplianceRecord tracks a driver's regulatory document dates. Expiry fields
// are stored as YYYY-MM-DD strings; empty means the document is missing.
type ComplianceRecord struct {
	ID                     int64  `json:"id"`
	DriverID               int64  `json:"driver_id"`
	CDLExpiry              string `json:"cdl_expiry"`
	MedicalCardExpiry      string `json:"medical_card_expiry"`
	MVRDate                string `json:"mvr_date"`
	DrugTestDate           string `json:"drug_test_date"`
	AnnualInspectionExpiry string `json:"annual_inspection_expiry"`
	Notes                  string `json:"notes"`
	UpdatedAt              string `json:"updated_at,omitempty"`

	// Joined from drivers.
	Username   string `json:"username,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	DriverType string `json:"driver_type,omitempty"`

	// Derived per-document statuses.
	CDLStatus        ExpiryStatus `json:"cdl_status,omitempty"`
	MedicalStatus    ExpiryStatus `json:"medical_status,omitempty"`
	InspectionStatus ExpiryStatus `json:"inspection_status,omitempty"`
	DrugTestStatus   ExpiryStatus `json:"drug_test_status,omitempty"`
}

// PayRecord is one week of settlement for a driver.
type PayRecord struct {
	ID                 int64   `json:"id"`
	DriverID           int64   `json:"driver_id"`
	LoadID             int64   `json:"load_id,omitempty"`
	WeekEnding         string  `json:"week_ending"`
	GrossPay           float64 `json:"gross_pay"`
	FuelDeduction      float64 `json:"fuel_deduction"`
	InsuranceDeduction float64 `json:"insurance_deduction"`
	AdvanceDeduction   float64 `json:"advance_deduction"`
	OtherDeduction     float64 `json:"other_deduction"`
	Notes              string  `json:"notes"`
	CreatedAt          string  `json:"created_at,omitempty"`

	Username   string `json:"username,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	DriverType string `json:"driver_type,omitempty"`

	// Derived.
	TotalDeductions float64 `json:"total_deductions"`
	NetPay          float64 `json:"net_pay"`
}

// InsurancePolicy covers a truck.
type InsurancePolicy struct {
	ID             int64   `json:"id"`
	CompanyID      int64   `json:"company_id"`
	TruckNumber    string  `json:"truck_number"`
	PolicyNumber   string  `json:"policy_number"`
	Provider       string  `json:"provider"`
	PolicyType     string  `json:"policy_type"`
	Premium        float64 `json:"premium"`
	ExpiryDate     string  `json:"expiry_date"`
	CoverageAmount float64 `json:"coverage_amount"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at,omitempty"`

	Status ExpiryStatus `json:"status,omitempty"`
}

// Inspection is a vehicle inspection event (annual, roadside, pre-trip).
type Inspection struct {
	ID             int64  `json:"id"`
	CompanyID      int64  `json:"company_id"`
	DriverID       int64  `json:"driver_id"`
	TruckNumber    string `json:"truck_number"`
	InspectionType string `json:"inspection_type"`
	Date           string `json:"date"`
	Result         string `json:"result"` // pass, fail
	Violations     string `json:"violations"`
	Notes          string `json:"notes"`
	CreatedAt      string `json:"created_at,omitempty"`

	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// FuelLog is a single fuel purchase. Jurisdiction is the two-letter state code
// where the fuel was bought; it feeds the IFTA report.
type FuelLog struct {
	ID             int64   `json:"id"`
	CompanyID      int64   `json:"company_id"`
	DriverID       int64   `json:"driver_id"`
	TruckNumber    string  `json:"truck_number"`
	Date           string  `json:"date"`
	Jurisdiction   string  `json:"jurisdiction"`
	Gallons        float64 `json:"gallons"`
	PricePerGallon float64 `json:"price_per_gallon"`
	TotalCost      float64 `json:"total_cost"`
	Odometer       float64 `json:"odometer"`
	Location       string  `json:"location"`
	CreatedAt      string  `json:"created_at,omitempty"`

	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// TripLeg records miles driven in one jurisdiction for one assignment.
type TripLeg struct {
	ID           int64   `json:"id"`
	CompanyID    int64   `json:"company_id"`
	AssignmentID int64   `json:"assignment_id"`
	Date         string  `json:"date"`
	Jurisdiction string  `json:"jurisdiction"`
	Miles        float64 `json:"miles"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// Company is a tenant account.
type Company struct {
	ID           int64  `json:"id"`
	CompanyName  string `json:"company_name"`
	DOTNumber    string `json:"dot_number"`
	Email        string `json:"email"`
	TrialEndsAt  string `json:"trial_ends_at,omitempty"`
	IsSubscribed bool   `json:"is_subscribed"`
	CreatedAt    string `json:"created_at,omitempty"`

	// Joined aggregates for the superadmin listing.
	TotalUsers int `json:"total_users,omitempty"`
	Managers   int `json:"managers,omitempty"`
	Drivers    int `json:"drivers,omitempty"`
}

// User is an account within a company. Role is "manager", "driver" or
// "superadmin".
type User struct {
	ID           int64  `json:"id"`
	CompanyID    int64  `json:"company_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	InviteToken  string `json:"invite_token,omitempty"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"`

	CompanyName string `json:"company_name,omitempty"`
}

package fleet

// Route cost model constants. Hours assume a 55 mph average; fuel and tolls
// are flat per-mile estimates.
const (
	AvgSpeedMPH     = 55.0
	FuelCostPerMile = 0.43
	TollCostPerMile = 0.08
)

// RouteEstimate derives the initial route figures for a load's mileage.
func RouteEstimate(miles float64) (hours, fuelCost, tollCost float64) {
	hours = Round1(miles / AvgSpeedMPH)
	fuelCost = Round2(miles * FuelCostPerMile)
	tollCost = Round2(miles * TollCostPerMile)
	return hours, fuelCost, tollCost
}

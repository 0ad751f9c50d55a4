package pilot

import "math"

// trailerCubicFt is the usable volume of a 53-foot trailer, used to
// estimate how much of the payload rating compacted strap can reach.
const trailerCubicFt = 3800.0

// Metrics are the monthly quantities derived from a set of
// assumptions. LoadsPerMonth is kept as a float so display formatting
// matches the other fields.
type Metrics struct {
	TonsPerMonth     float64 `yaml:"tons_per_month" json:"tons_per_month"`
	NetValuePerMonth float64 `yaml:"net_value_per_month" json:"net_value_per_month"`
	PayloadUtilPct   float64 `yaml:"payload_util_pct" json:"payload_util_pct"`
	LoadsPerMonth    float64 `yaml:"loads_per_month" json:"loads_per_month"`
}

// Compute derives monthly metrics from a. The trailer payload is
// clamped away from zero so the ratios stay finite.
func Compute(a Assumptions) Metrics {
	tons := float64(a.Floors) * float64(a.GaylordsPerFloorPerDay) *
		float64(a.WorkdaysPerMonth) * float64(a.LbsPerGaylord) / 2000.0
	payload := math.Max(a.TrailerPayloadLb, 1e-9)

	return Metrics{
		TonsPerMonth:     tons,
		NetValuePerMonth: tons * (a.SalePricePerTon + a.AvoidedFeePerTon - a.ProcessingCostPerTon),
		PayloadUtilPct:   math.Min(100.0, a.DensityLbFt3*trailerCubicFt/payload*100.0),
		LoadsPerMonth:    math.Ceil(tons * 2000.0 / payload),
	}
}

package dosing

import "math"

// AuxFluid is an additional infusion running alongside CRRT.
type AuxFluid struct {
	Na   float64 // mEq/L
	Rate float64 // L/hr
}

type HyponatremiaInputs struct {
	TargetNa      float64
	DiluentNa     float64
	DialysateNa   float64
	DialysateRate float64
	Fluids        []AuxFluid
}

// DiluentResult holds the solved diluent rate. When Valid is false both
// rates are NaN and Reason names the degenerate input.
type DiluentResult struct {
	DiluentRate float64
	TotalRate   float64
	Valid       bool
	Reason      string
}

const ReasonTargetEqualsDiluent = "target sodium equals diluent sodium"

// SolveDiluentRate solves the sodium mass balance for the diluent rate that
// brings the mixed effluent to TargetNa.
func SolveDiluentRate(in HyponatremiaInputs) DiluentResult {
	naLoad, rateSum := 0.0, 0.0
	for _, f := range in.Fluids {
		naLoad += f.Na * f.Rate
		rateSum += f.Rate
	}

	denom := in.TargetNa - in.DiluentNa
	if denom == 0 {
		return DiluentResult{
			DiluentRate: math.NaN(),
			TotalRate:   math.NaN(),
			Reason:      ReasonTargetEqualsDiluent,
		}
	}

	num := in.DialysateNa*in.DialysateRate + naLoad - (rateSum+in.DialysateRate)*in.TargetNa
	rate := num / denom
	return DiluentResult{
		DiluentRate: rate,
		TotalRate:   rateSum + in.DialysateRate + rate,
		Valid:       true,
	}
}

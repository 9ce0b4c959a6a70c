package dosing

import "math"

// HDInputs describes one hemodialysis session.
type HDInputs struct {
	SerumNa       float64 // mEq/L
	TBW           float64 // L
	BloodFlowRate float64 // mL/min
	Duration      float64 // min
	DialysateNa   float64 // mEq/L
	UFVolume      float64 // L
	D5WVolumeMl   float64 // mL
}

type HDResult struct {
	PostNa  float64
	DeltaNa float64
	NetUF   float64
	Valid   bool
	Reason  string
}

const ReasonNoWater = "post-dialysis water content is not positive"

// PredictPostDialysisNa estimates serum sodium after a session from the
// sodium and water balance across the dialyzer. NetUF is reported even when
// the prediction itself is invalid.
func PredictPostDialysisNa(in HDInputs) HDResult {
	d5w := in.D5WVolumeMl / 1000
	netUF := in.UFVolume - d5w

	baseline := in.SerumNa * in.TBW
	processedL := in.BloodFlowRate * in.Duration / 1000
	flux := processedL * (in.DialysateNa - in.SerumNa)
	ufRemoved := in.UFVolume * in.SerumNa

	content := baseline + flux - ufRemoved
	water := in.TBW + d5w - in.UFVolume
	if water <= 0 {
		return HDResult{
			PostNa:  math.NaN(),
			DeltaNa: math.NaN(),
			NetUF:   netUF,
			Reason:  ReasonNoWater,
		}
	}

	post := content / water
	return HDResult{
		PostNa:  post,
		DeltaNa: post - in.SerumNa,
		NetUF:   netUF,
		Valid:   true,
	}
}

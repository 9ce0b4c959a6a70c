package calculator

import (
	"encoding/json"
	"errors"
	"net/http"

	"renal-calculator/internal/dosing"
	"renal-calculator/internal/models"

	"github.com/sirupsen/logrus"
)

type FluidInput struct {
	Rate           float64            `json:"rate"`
	Preset         string             `json:"preset,omitempty"`
	Concentrations map[string]float64 `json:"concentrations,omitempty"`
}

type FluidPlanningRequest struct {
	Fluids []FluidInput `json:"fluids"`
}

// FluidPlanningResponse.MatchedPresets names, per input fluid, the preset
// its final composition equals, or "".
type FluidPlanningResponse struct {
	TotalRate           *float64            `json:"total_rate"`
	FinalConcentrations map[string]*float64 `json:"final_concentrations"`
	MatchedPresets      []string            `json:"matched_presets"`
}

func FluidPlanningHandler(rec Recorder, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FluidPlanningRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		components := make([]dosing.FluidComponent, 0, len(req.Fluids))
		matched := make([]string, 0, len(req.Fluids))
		for _, f := range req.Fluids {
			conc := map[dosing.Solute]float64{}
			if f.Preset != "" {
				p, err := dosing.LookupFluidPreset(f.Preset)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				conc = p
			}
			for s, v := range f.Concentrations {
				conc[dosing.Solute(s)] = v
			}
			name, _ := dosing.MatchFluidPreset(conc)
			matched = append(matched, name)
			components = append(components, dosing.FluidComponent{Rate: f.Rate, Concentrations: conc})
		}

		res := dosing.MixFluids(components)
		final := make(map[string]*float64, len(res.FinalConcentrations))
		for s, v := range res.FinalConcentrations {
			final[string(s)] = num(v)
		}
		resp := FluidPlanningResponse{
			TotalRate:           num(res.TotalRate),
			FinalConcentrations: final,
			MatchedPresets:      matched,
		}
		record(r.Context(), rec, log, models.KindFluidPlanning, req, resp)
		writeJSON(w, log, resp)
	}
}

type AuxFluidInput struct {
	Na   float64 `json:"na"`
	Rate float64 `json:"rate"`
}

// HyponatremiaRequest.Diluent is a preset name ("D5W", "1/2NS") or
// "custom". Empty means DiluentNa if given, otherwise D5W.
type HyponatremiaRequest struct {
	TargetNa      float64         `json:"target_na"`
	Diluent       string          `json:"diluent,omitempty"`
	DiluentNa     *float64        `json:"diluent_na,omitempty"`
	DialysateNa   float64         `json:"dialysate_na"`
	DialysateRate float64         `json:"dialysate_rate"`
	Fluids        []AuxFluidInput `json:"fluids,omitempty"`
}

type HyponatremiaResponse struct {
	DiluentRate   *float64 `json:"diluent_rate"`
	TotalRate     *float64 `json:"total_rate"`
	DiluentNa     float64  `json:"diluent_na"`
	DiluentPreset string   `json:"diluent_preset"`
	Valid         bool     `json:"valid"`
	Reason        string   `json:"reason,omitempty"`
}

var errCustomNeedsNa = errors.New("custom diluent requires diluent_na")

func resolveDiluent(req HyponatremiaRequest) (float64, error) {
	switch req.Diluent {
	case "":
		if req.DiluentNa != nil {
			return *req.DiluentNa, nil
		}
		return dosing.DefaultHyponatremia.DiluentNa, nil
	case dosing.DiluentCustom:
		if req.DiluentNa == nil {
			return 0, errCustomNeedsNa
		}
		return *req.DiluentNa, nil
	}
	return dosing.LookupDiluentNa(req.Diluent)
}

func HyponatremiaHandler(rec Recorder, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HyponatremiaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		diluentNa, err := resolveDiluent(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		fluids := make([]dosing.AuxFluid, len(req.Fluids))
		for i, f := range req.Fluids {
			fluids[i] = dosing.AuxFluid{Na: f.Na, Rate: f.Rate}
		}
		res := dosing.SolveDiluentRate(dosing.HyponatremiaInputs{
			TargetNa:      req.TargetNa,
			DiluentNa:     diluentNa,
			DialysateNa:   req.DialysateNa,
			DialysateRate: req.DialysateRate,
			Fluids:        fluids,
		})
		resp := HyponatremiaResponse{
			DiluentRate:   num(res.DiluentRate),
			TotalRate:     num(res.TotalRate),
			DiluentNa:     diluentNa,
			DiluentPreset: dosing.DiluentPresetName(diluentNa),
			Valid:         res.Valid,
			Reason:        res.Reason,
		}
		record(r.Context(), rec, log, models.KindCRRTHyponatremia, req, resp)
		writeJSON(w, log, resp)
	}
}

type HDRequest struct {
	SerumNa       float64 `json:"serum_na"`
	TBW           float64 `json:"tbw"`
	BloodFlowRate float64 `json:"blood_flow_rate"`
	Duration      float64 `json:"duration"`
	DialysateNa   float64 `json:"dialysate_na"`
	UFVolume      float64 `json:"uf_volume"`
	D5WVolumeMl   float64 `json:"d5w_volume_ml"`
}

type HDResponse struct {
	PreNa   float64  `json:"pre_na"`
	PostNa  *float64 `json:"post_na"`
	DeltaNa *float64 `json:"delta_na"`
	NetUF   *float64 `json:"net_uf"`
	Valid   bool     `json:"valid"`
	Reason  string   `json:"reason,omitempty"`
}

func HDHyponatremiaHandler(rec Recorder, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		res := dosing.PredictPostDialysisNa(dosing.HDInputs(req))
		resp := HDResponse{
			PreNa:   req.SerumNa,
			PostNa:  num(res.PostNa),
			DeltaNa: num(res.DeltaNa),
			NetUF:   num(res.NetUF),
			Valid:   res.Valid,
			Reason:  res.Reason,
		}
		record(r.Context(), rec, log, models.KindHDHyponatremia, req, resp)
		writeJSON(w, log, resp)
	}
}

type EFWRequest struct {
	Mode        string  `json:"mode,omitempty"`
	UrineNa     float64 `json:"urine_na"`
	UrineK      float64 `json:"urine_k"`
	SerumNa     float64 `json:"serum_na"`
	UrineVolume float64 `json:"urine_volume"`
}

type EFWResponse struct {
	Mode      string   `json:"mode"`
	Clearance *float64 `json:"clearance"`
}

func EFWHandler(rec Recorder, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EFWRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		mode, err := dosing.ParseEFWMode(req.Mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		clearance := dosing.EFWClearance(dosing.EFWInputs{
			Mode:        mode,
			UrineNa:     req.UrineNa,
			UrineK:      req.UrineK,
			SerumNa:     req.SerumNa,
			UrineVolume: req.UrineVolume,
		})
		resp := EFWResponse{Mode: mode.String(), Clearance: num(clearance)}
		record(r.Context(), rec, log, models.KindElectrolyteFree, req, resp)
		writeJSON(w, log, resp)
	}
}

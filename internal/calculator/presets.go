package calculator

import (
	"net/http"

	"renal-calculator/internal/dosing"

	"github.com/sirupsen/logrus"
)

func CatalogHandler(log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, map[string]any{"calculators": dosing.Catalog()})
	}
}

type fluidPresetView struct {
	Name           string             `json:"name"`
	Concentrations map[string]float64 `json:"concentrations"`
}

type diluentPresetView struct {
	Name string  `json:"name"`
	Na   float64 `json:"na"`
}

type PresetsResponse struct {
	Fluids    []fluidPresetView       `json:"fluids"`
	Diluents  []diluentPresetView     `json:"diluents"`
	FluidRate dosing.Range            `json:"fluid_rate"`
	HDQuick   dosing.HDQuickValues    `json:"hd_quick"`
	HDRanges  map[string]dosing.Range `json:"hd_ranges"`
	Defaults  presetDefaults          `json:"defaults"`
}

type presetDefaults struct {
	Hyponatremia HyponatremiaRequest `json:"crrt_hyponatremia"`
	AuxFluidNa   float64             `json:"aux_fluid_na"`
	HD           HDRequest           `json:"hd_hyponatremia"`
	EFW          EFWRequest          `json:"electrolyte_free_water"`
}

func buildPresets() PresetsResponse {
	var resp PresetsResponse
	for _, p := range dosing.FluidPresets() {
		conc := make(map[string]float64, len(p.Concentrations))
		for s, v := range p.Concentrations {
			conc[string(s)] = v
		}
		resp.Fluids = append(resp.Fluids, fluidPresetView{Name: p.Name, Concentrations: conc})
	}
	for _, d := range dosing.DiluentPresets() {
		resp.Diluents = append(resp.Diluents, diluentPresetView{Name: d.Name, Na: d.Na})
	}
	resp.FluidRate = dosing.FluidRateRange
	resp.HDQuick = dosing.HDQuick()
	resp.HDRanges = dosing.HDRanges()

	hypo := dosing.DefaultHyponatremia
	diluentNa := hypo.DiluentNa
	resp.Defaults = presetDefaults{
		Hyponatremia: HyponatremiaRequest{
			TargetNa:      hypo.TargetNa,
			Diluent:       dosing.DiluentPresetName(diluentNa),
			DiluentNa:     &diluentNa,
			DialysateNa:   hypo.DialysateNa,
			DialysateRate: hypo.DialysateRate,
		},
		AuxFluidNa: dosing.DefaultAuxFluidNa,
		HD:         HDRequest(dosing.DefaultHD),
		EFW: EFWRequest{
			Mode:    dosing.DefaultEFW.Mode.String(),
			SerumNa: dosing.DefaultEFW.SerumNa,
		},
	}
	return resp
}

func PresetsHandler(log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, buildPresets())
	}
}

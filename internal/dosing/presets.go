package dosing

import (
	"errors"
	"fmt"
)

var ErrUnknownPreset = errors.New("unknown preset")

// FluidPreset is a named commercial CRRT fluid composition in mEq/L.
type FluidPreset struct {
	Name           string
	Concentrations map[Solute]float64
}

var fluidPresets = []FluidPreset{
	{Name: "BGK 4/2.5", Concentrations: map[Solute]float64{K: 4, Ca: 2.5, HCO3: 32, Na: 140, Mg: 1.5}},
	{Name: "B22GK 4/0", Concentrations: map[Solute]float64{K: 4, Ca: 0, HCO3: 22, Na: 140, Mg: 1.5}},
	{Name: "BGK 2/0", Concentrations: map[Solute]float64{K: 2, Ca: 0, HCO3: 32, Na: 140, Mg: 1.0}},
	{Name: "BGK 2/3.5", Concentrations: map[Solute]float64{K: 2, Ca: 3.5, HCO3: 32, Na: 140, Mg: 1.0}},
	{Name: "BGK 0/2.5", Concentrations: map[Solute]float64{K: 0, Ca: 2.5, HCO3: 32, Na: 140, Mg: 1.5}},
}

// FluidPresets returns copies of the preset table in display order.
func FluidPresets() []FluidPreset {
	out := make([]FluidPreset, len(fluidPresets))
	for i, p := range fluidPresets {
		out[i] = FluidPreset{Name: p.Name, Concentrations: copyConc(p.Concentrations)}
	}
	return out
}

// LookupFluidPreset returns a copy of the named preset's concentrations.
func LookupFluidPreset(name string) (map[Solute]float64, error) {
	for _, p := range fluidPresets {
		if p.Name == name {
			return copyConc(p.Concentrations), nil
		}
	}
	return nil, fmt.Errorf("%w: fluid %q", ErrUnknownPreset, name)
}

// MatchFluidPreset reports which preset, if any, has exactly these
// concentrations. Used for display only.
func MatchFluidPreset(conc map[Solute]float64) (string, bool) {
	for _, p := range fluidPresets {
		if len(conc) != len(p.Concentrations) {
			continue
		}
		match := true
		for s, v := range p.Concentrations {
			got, ok := conc[s]
			if !ok || got != v {
				match = false
				break
			}
		}
		if match {
			return p.Name, true
		}
	}
	return "", false
}

func copyConc(m map[Solute]float64) map[Solute]float64 {
	out := make(map[Solute]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

const DiluentCustom = "custom"

type DiluentPreset struct {
	Name string
	Na   float64
}

var diluentPresets = []DiluentPreset{
	{Name: "D5W", Na: 0},
	{Name: "1/2NS", Na: 77},
}

func DiluentPresets() []DiluentPreset {
	return append([]DiluentPreset(nil), diluentPresets...)
}

// LookupDiluentNa resolves a diluent preset name to its sodium.
func LookupDiluentNa(name string) (float64, error) {
	for _, p := range diluentPresets {
		if p.Name == name {
			return p.Na, nil
		}
	}
	return 0, fmt.Errorf("%w: diluent %q", ErrUnknownPreset, name)
}

// DiluentPresetName maps a sodium value back to its preset name, or
// DiluentCustom when no preset carries that value.
func DiluentPresetName(na float64) string {
	for _, p := range diluentPresets {
		if p.Na == na {
			return p.Name
		}
	}
	return DiluentCustom
}

// Range is an input bound for a form field.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// HDQuickValues are the one-tap choices offered next to each HD input.
type HDQuickValues struct {
	BloodFlowRate []float64 `json:"blood_flow_rate"`
	Duration      []float64 `json:"duration"`
	UFVolume      []float64 `json:"uf_volume"`
	D5WVolumeMl   []float64 `json:"d5w_volume_ml"`
}

func HDQuick() HDQuickValues {
	return HDQuickValues{
		BloodFlowRate: []float64{200, 250, 300, 350, 400},
		Duration:      []float64{60, 120, 180, 240},
		UFVolume:      []float64{1, 2, 3},
		D5WVolumeMl:   []float64{250, 500, 750, 1000},
	}
}

func HDRanges() map[string]Range {
	return map[string]Range{
		"blood_flow_rate": {Min: 150, Max: 800, Step: 10},
		"duration":        {Min: 60, Max: 240, Step: 5},
		"dialysate_na":    {Min: 130, Max: 145, Step: 1},
		"uf_volume":       {Min: 0, Max: 3, Step: 0.1},
		"d5w_volume_ml":   {Min: 0, Max: 3000, Step: 50},
		"serum_na":        {Min: 110, Max: 150, Step: 1},
		"tbw":             {Min: 20, Max: 80, Step: 0.1},
	}
}

// FluidRateRange bounds the CRRT fluid rate slider, L/hr.
var FluidRateRange = Range{Min: 0, Max: 6, Step: 0.1}

// Form defaults.
var (
	DefaultHyponatremia = HyponatremiaInputs{TargetNa: 130, DiluentNa: 0, DialysateNa: 140, DialysateRate: 2}
	DefaultAuxFluidNa   = 140.0
	DefaultHD           = HDInputs{SerumNa: 120, TBW: 35, BloodFlowRate: 200, Duration: 120, DialysateNa: 130, UFVolume: 2}
	DefaultEFW          = EFWInputs{Mode: NguyenKurtz, SerumNa: 140}
)

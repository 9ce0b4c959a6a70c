// Package dosing holds the renal dosing formulas. Every function here is
// pure: no I/O, no shared state, and inputs are never modified.
package dosing

import "sort"

type Solute string

const (
	K    Solute = "K"
	Ca   Solute = "Ca"
	HCO3 Solute = "HCO3"
	Na   Solute = "Na"
	Mg   Solute = "Mg"
)

// Solutes lists the electrolytes tracked by the fluid presets, in display order.
var Solutes = []Solute{K, Ca, HCO3, Na, Mg}

// FluidComponent is one replacement or dialysate fluid. Rate is L/hr,
// concentrations are mEq/L.
type FluidComponent struct {
	Rate           float64
	Concentrations map[Solute]float64
}

type MixResult struct {
	TotalRate           float64
	FinalConcentrations map[Solute]float64
}

// MixFluids returns the rate-weighted average concentration of every solute
// that appears in any component. A zero total rate yields zero for each
// solute. Rates are not validated.
func MixFluids(components []FluidComponent) MixResult {
	total := 0.0
	weighted := make(map[Solute]float64)
	for _, c := range components {
		total += c.Rate
	}
	for _, s := range soluteUnion(components) {
		sum := 0.0
		for _, c := range components {
			sum += c.Rate * c.Concentrations[s]
		}
		weighted[s] = sum
	}

	final := make(map[Solute]float64, len(weighted))
	for s, sum := range weighted {
		if total == 0 {
			final[s] = 0
			continue
		}
		final[s] = sum / total
	}
	return MixResult{TotalRate: total, FinalConcentrations: final}
}

// soluteUnion keeps the preset solutes first, then any extra ones sorted.
func soluteUnion(components []FluidComponent) []Solute {
	seen := make(map[Solute]bool)
	for _, c := range components {
		for s := range c.Concentrations {
			seen[s] = true
		}
	}
	out := make([]Solute, 0, len(seen))
	for _, s := range Solutes {
		if seen[s] {
			out = append(out, s)
			delete(seen, s)
		}
	}
	extra := make([]Solute, 0, len(seen))
	for s := range seen {
		extra = append(extra, s)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

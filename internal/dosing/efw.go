package dosing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type EFWMode int

const (
	NguyenKurtz EFWMode = iota
	Traditional
)

var ErrUnknownMode = errors.New("unknown clearance mode")

func (m EFWMode) String() string {
	switch m {
	case Traditional:
		return "traditional"
	case NguyenKurtz:
		return "nguyen-kurtz"
	}
	return fmt.Sprintf("EFWMode(%d)", int(m))
}

// ParseEFWMode accepts "traditional" and "nguyen-kurtz" case-insensitively.
// An empty string selects Nguyen-Kurtz.
func ParseEFWMode(s string) (EFWMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nguyen-kurtz", "nguyen–kurtz", "nguyenkurtz":
		return NguyenKurtz, nil
	case "traditional":
		return Traditional, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type EFWInputs struct {
	Mode        EFWMode
	UrineNa     float64 // mEq/L
	UrineK      float64 // mEq/L
	SerumNa     float64 // mEq/L
	UrineVolume float64 // mL
}

// EFWClearance returns electrolyte-free water clearance in whole mL.
// A zero serum sodium yields 0.
func EFWClearance(in EFWInputs) float64 {
	if in.SerumNa == 0 {
		return 0
	}
	cations := in.UrineNa + in.UrineK
	var c float64
	switch in.Mode {
	case Traditional:
		c = in.UrineVolume * (1 - cations/in.SerumNa)
	default:
		c = in.UrineVolume * (1 - 1.03*cations/(in.SerumNa+23.8))
	}
	return roundHalfUp(c)
}

// roundHalfUp rounds .5 toward +Inf, so -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

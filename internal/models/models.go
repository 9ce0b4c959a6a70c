package models

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Login        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// Calculation kinds stored in the history table.
const (
	KindFluidPlanning    = "crrt-fluid-planning"
	KindCRRTHyponatremia = "crrt-hyponatremia"
	KindHDHyponatremia   = "hd-hyponatremia"
	KindElectrolyteFree  = "electrolyte-free-water"
	KindExpression       = "expression"
)

// Calculation is one saved request/response pair. Input and Result hold
// the JSON bodies exchanged with the client.
type Calculation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Kind      string    `json:"kind"`
	Input     string    `json:"input"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

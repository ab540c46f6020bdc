package models

import "time"

// Bonus aggregates a doctor's billed total for a period. The bonus value itself
// is derived by dividing the total by the global coefficient.
type Bonus struct {
	Doctor      *User      `json:"doctor"`
	TotalAmount float64    `json:"total_amount"`
	Days        []BonusDay `json:"days"`
}

type BonusDay struct {
	Day    string  `json:"day"` // YYYY-MM-DD
	Amount float64 `json:"amount"`
}

// Value divides the total by the coefficient; a non-positive coefficient yields 0.
func (b *Bonus) Value(coefficient float64) float64 {
	if coefficient <= 0 {
		return 0
	}
	return b.TotalAmount / coefficient
}

// BonusCoefficient is the mutable server-side divisor setting.
type BonusCoefficient struct {
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

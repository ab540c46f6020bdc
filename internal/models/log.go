package models

import "time"

// LogEntry wraps a service snapshot together with the price change that caused it
// and the raw activity payload the backend recorded.
type LogEntry struct {
	ID              int64            `json:"id"`
	Service         *Service         `json:"service,omitempty"`
	PriceDifference *PriceDifference `json:"price_difference,omitempty"`
	Activity        map[string]any   `json:"activity,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

type PriceDifference struct {
	Causer    *User  `json:"causer,omitempty"`
	BeforeSum string `json:"before_sum"`
	AfterSum  string `json:"after_sum"`
}

package models

import "time"

// CalcEntry is one successful calculation. Entries are append-only.
type CalcEntry struct {
	ID         string    `json:"-"`
	Expression string    `json:"expression"`
	Result     float64   `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
}

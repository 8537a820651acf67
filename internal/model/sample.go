package model

import "time"

// DefaultTimestampLayout renders sample times as YYYY-MM-DD HH:MM:SS.
const DefaultTimestampLayout = "2006-01-02 15:04:05"

// Sample is a single synthetic temperature reading.
type Sample struct {
	Value     float64   `json:"value"`
	Timestamp string    `json:"timestamp"`
	Time      time.Time `json:"-"`
}

// Package report holds structured school condition reports for the lifetime
// of the process. Records are created by form submission and never mutated;
// there is no persistence by design.
package report

import "time"

type Report struct {
	ID         string    `json:"id"`
	SchoolName string    `json:"schoolName"`
	Location   string    `json:"location"`
	Condition  string    `json:"condition"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

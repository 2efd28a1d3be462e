// Package feedback collects free-text community feedback entries in memory,
// newest first, for the lifetime of the process.
package feedback

import "time"

type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Language is one entry of the language usage summary.
// Share is the fraction of all counted bytes, in the range [0, 1].
type Language struct {
	Name  string  `json:"name"`
	Bytes int64   `json:"bytes"`
	Share float64 `json:"share"`
}

// Percent returns the share as a percentage.
func (l Language) Percent() float64 {
	return l.Share * 100
}

// Contribution is a merged pull request to a repository the user does not own.
type Contribution struct {
	Repo     string     `json:"repo"`
	Number   int        `json:"number"`
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	MergedAt *time.Time `json:"merged_at,omitempty"`
	Stars    int        `json:"stars"`
	Language string     `json:"language,omitempty"`
}

// Profile is everything rendered into the generated README section.
// It is the core domain entity of this application.
type Profile struct {
	User          string         `json:"user"`
	Languages     []Language     `json:"languages"`
	Contributions []Contribution `json:"contributions"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

package shift

import "time"

const DefaultColor = "#3b82f6"

type Shift struct {
	ID           string
	Name         string
	StartTime    string // HH:MM, branch local time
	EndTime      string // HH:MM, branch local time
	BreakMinutes int
	IsOvernight  bool
	Color        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

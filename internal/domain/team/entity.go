package team

import "time"

type Team struct {
	ID        string
	Name      string
	LeadID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLedBy reports whether userID is the configured lead of the team.
func (t Team) IsLedBy(userID string) bool {
	return t.LeadID != nil && *t.LeadID == userID
}

package team

import "context"

type TeamRepository interface {
	// GetByID returns ErrTeamNotFound when no team has the given id.
	GetByID(ctx context.Context, id string) (Team, error)
}

package location

import "context"

// LocationRepository is the read side of the location-management collaborator.
type LocationRepository interface {
	// ListActive returns a snapshot of active locations in a stable order
	// (creation time, then id).
	ListActive(ctx context.Context) ([]OfficeLocation, error)
}

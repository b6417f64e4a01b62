package location

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
)

// OfficeLocation is an office with a circular admission radius.
type OfficeLocation struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fence converts the location into its geofence.
func (l OfficeLocation) Fence() geo.Fence {
	return geo.Fence{
		ID:           l.ID,
		Name:         l.Name,
		Center:       geo.Point{Latitude: l.Latitude, Longitude: l.Longitude},
		RadiusMeters: l.RadiusMeters,
	}
}

// Fences converts locations into geofences, preserving order.
func Fences(locations []OfficeLocation) []geo.Fence {
	fences := make([]geo.Fence, 0, len(locations))
	for _, l := range locations {
		fences = append(fences, l.Fence())
	}
	return fences
}

// Names returns the display names of locations in order.
func Names(locations []OfficeLocation) []string {
	names := make([]string, 0, len(locations))
	for _, l := range locations {
		names = append(names, l.Name)
	}
	return names
}

package geo

import (
	"errors"
	"log/slog"
)

// ErrNoFences is returned by Resolve when there is nothing to match against.
// It is a configuration problem, not a "point is outside" result.
var ErrNoFences = errors.New("no geofences configured")

// Fence is a circular admission area around an office.
type Fence struct {
	ID           string
	Name         string
	Center       Point
	RadiusMeters int
}

// Match is the fence a point was admitted by, with the computed distance.
type Match struct {
	Fence          Fence
	DistanceMeters int
}

// Resolve returns the first fence in list order whose radius contains p.
// The boundary is inclusive. Ties are broken by order, not by distance.
// ok is false when fences is non-empty and none contains p.
func Resolve(p Point, fences []Fence) (match Match, ok bool, err error) {
	if len(fences) == 0 {
		return Match{}, false, ErrNoFences
	}

	for _, f := range fences {
		distance := Distance(p, f.Center)
		within := distance <= f.RadiusMeters

		slog.Debug("Geofence check",
			"location", f.Name,
			"distance", distance,
			"radius", f.RadiusMeters,
			"within_range", within,
		)

		if within {
			return Match{Fence: f, DistanceMeters: distance}, true, nil
		}
	}

	return Match{}, false, nil
}

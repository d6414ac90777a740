package ports

import "context"

// Best-effort decorative text generation for offers. Implementations must
// honor context deadlines; callers treat any failure as "no fun fact".
type FunFactProvider interface {
	FunFact(ctx context.Context, origin, destination string, distanceKm float64) (string, error)
}

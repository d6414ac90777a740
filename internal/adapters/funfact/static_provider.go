package funfact

import "context"

// StaticProvider serves canned fun facts when no text-generation API key is
// configured. It never fails, which keeps local runs and tests deterministic.
type StaticProvider struct{}

var cannedFacts = []string{
	"The modern shipping container, standardized in 1956, cut loading costs by over 90 percent.",
	"EU rules require truck drivers to rest at least 45 minutes after 4.5 hours behind the wheel.",
	"A modern long-haul truck covers roughly 130,000 kilometers per year.",
	"The first international road freight convention, the TIR, dates back to 1949.",
}

func (StaticProvider) FunFact(ctx context.Context, origin, destination string, distanceKm float64) (string, error) {
	idx := int(distanceKm)
	if idx < 0 {
		idx = -idx
	}
	return cannedFacts[idx%len(cannedFacts)], nil
}

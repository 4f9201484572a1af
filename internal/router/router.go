package router

import "marinebot/internal/domain"

// Router turns the classifier verdict and similarity assessment into an
// answer strategy. The decision is deterministic for a given input triple.
type Router struct {
	threshold float64
}

// New creates a router with the given similarity threshold. A grounded
// answer requires both score >= threshold and verbatim containment; a
// score exactly at the threshold still grounds when containment holds.
func New(threshold float64) *Router {
	return &Router{threshold: threshold}
}

func (r *Router) Route(inScope bool, a domain.Assessment) domain.Decision {
	if !inScope {
		return domain.OutOfScope
	}
	if a.Score >= r.threshold && a.Containment {
		return domain.InScopeGrounded
	}
	return domain.InScopeFallback
}

package app

import "corkboard-listing-service/internal/domain/listing"

// Policy bundles the tunable behaviour of the listing service: page bounds,
// the delete strategy and the allowed status-transition table.
type Policy struct {
	DefaultPageSize int
	MaxPageSize     int

	// SoftDelete flips the active flag instead of removing rows when true.
	SoftDelete bool

	// SlugAttempts bounds the numeric-suffix disambiguation loop.
	SlugAttempts int

	Transitions listing.TransitionTable
}

// DefaultPolicy returns the policy used when configuration stays silent.
func DefaultPolicy() Policy {
	return Policy{
		DefaultPageSize: 10,
		MaxPageSize:     100,
		SoftDelete:      true,
		SlugAttempts:    50,
		Transitions:     listing.DefaultTransitions(),
	}
}

// clampPageSize applies the default and the configured cap so page sizes
// are never attacker-controllable beyond MaxPageSize.
func (p Policy) clampPageSize(requested int) int {
	pageSize := requested
	if pageSize <= 0 {
		pageSize = p.DefaultPageSize
	}
	if p.MaxPageSize > 0 && pageSize > p.MaxPageSize {
		pageSize = p.MaxPageSize
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

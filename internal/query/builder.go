package query

import (
	"strings"

	"corkboard-listing-service/internal/domain/listing"

	"github.com/google/uuid"
)

// Filter keys recognized by Build. Anything else in the incoming map is
// ignored rather than rejected.
const (
	KeyStatus   = "status"
	KeyCategory = "category"
	KeySearch   = "search"
	KeyOwner    = "owner"
)

// Predicate is the validated filter condition produced from raw request
// parameters. Adapters translate it to their own query language; MatchNone
// short-circuits to an empty result set without touching the store.
type Predicate struct {
	// MatchNone is set when a filter value cannot match anything, e.g. a
	// status outside the enum. The request still succeeds with zero rows.
	MatchNone bool

	// IncludeInactive lifts the default active-only restriction. Only the
	// admin surface sets this.
	IncludeInactive bool

	Status   *listing.Status
	Category *listing.Category
	OwnerID  *uuid.UUID
	Search   string
}

// Build translates raw filter parameters into a Predicate. Unknown keys are
// ignored, blank values mean "no filter for that key", and unrecognized enum
// values fail soft by matching nothing.
func Build(filters map[string]string, includeInactive bool) Predicate {
	pred := Predicate{IncludeInactive: includeInactive}

	if v := strings.TrimSpace(filters[KeyStatus]); v != "" {
		status := listing.Status(v)
		if !listing.ValidStatus(status) {
			pred.MatchNone = true
			return pred
		}
		pred.Status = &status
	}

	if v := strings.TrimSpace(filters[KeyCategory]); v != "" {
		category := listing.Category(v)
		if !listing.ValidCategory(category) {
			pred.MatchNone = true
			return pred
		}
		pred.Category = &category
	}

	if v := strings.TrimSpace(filters[KeyOwner]); v != "" {
		owner, err := uuid.Parse(v)
		if err != nil {
			pred.MatchNone = true
			return pred
		}
		pred.OwnerID = &owner
	}

	pred.Search = strings.TrimSpace(filters[KeySearch])

	return pred
}

// Matches is the reference evaluation of a Predicate against a single
// listing: distinct filters combine with AND, the free-text search matches
// case-insensitively as a substring of title, description or location (OR).
// The SQL adapter must agree with this function; in-memory implementations
// use it directly.
func (p Predicate) Matches(l *listing.Listing) bool {
	if p.MatchNone {
		return false
	}
	if !p.IncludeInactive && !l.IsActive() {
		return false
	}
	if p.Status != nil && l.Status != *p.Status {
		return false
	}
	if p.Category != nil && l.Category != *p.Category {
		return false
	}
	if p.OwnerID != nil && l.OwnerID != *p.OwnerID {
		return false
	}
	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		if !strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Description), needle) &&
			!strings.Contains(strings.ToLower(l.Location), needle) {
			return false
		}
	}
	return true
}

// Less is the canonical listing order: newest first by creation timestamp,
// identifier ascending on ties. Stable pagination depends on every store
// honouring exactly this order.
func Less(a, b *listing.Listing) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return strings.Compare(a.ID.String(), b.ID.String()) < 0
}

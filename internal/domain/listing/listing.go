package listing

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the current status of a listing
type Status string

const (
	StatusOpen     Status = "open"
	StatusClaimed  Status = "claimed"
	StatusResolved Status = "resolved"
)

// Category is the closed set of tags a listing can carry
type Category string

const (
	CategoryAccessories Category = "accessories"
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryDocuments   Category = "documents"
	CategoryPets        Category = "pets"
	CategoryOther       Category = "other"
)

// TransitionTable maps a status to the statuses directly reachable from it.
// Terminal statuses map to an empty set.
type TransitionTable map[Status][]Status

// DefaultTransitions returns the forward-only chain open -> claimed -> resolved.
func DefaultTransitions() TransitionTable {
	return TransitionTable{
		StatusOpen:     {StatusClaimed, StatusResolved},
		StatusClaimed:  {StatusResolved},
		StatusResolved: {},
	}
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusClaimed, StatusResolved:
		return true
	}
	return false
}

// ValidCategory reports whether c is a member of the category enum.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryAccessories, CategoryElectronics, CategoryClothing,
		CategoryDocuments, CategoryPets, CategoryOther:
		return true
	}
	return false
}

// Listing represents a single published record. The ID and OwnerID are set
// once at creation and never change afterwards.
type Listing struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	Price       float64   `json:"price"`
	ViewCount   int64     `json:"view_count"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsActive returns true if the listing has not been soft-deleted
func (l *Listing) IsActive() bool {
	return l.Active
}

// CanTransitionTo reports whether target is directly reachable from the
// listing's current status under the given table.
func (l *Listing) CanTransitionTo(table TransitionTable, target Status) bool {
	for _, next := range table[l.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// Transition moves the listing to target and refreshes the update timestamp.
// Callers must check CanTransitionTo first.
func (l *Listing) Transition(target Status) {
	l.Status = target
	l.UpdatedAt = time.Now()
}

// Deactivate soft-deletes the listing
func (l *Listing) Deactivate() {
	l.Active = false
	l.UpdatedAt = time.Now()
}

// Attachment is an image (or other blob) owned by exactly one listing. The
// bytes live in the object store; only the key is persisted here.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uuid.UUID `json:"listing_id"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

package outbound

import (
	"context"

	"corkboard-listing-service/internal/domain/listing"
	"corkboard-listing-service/internal/query"

	"github.com/google/uuid"
)

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	// Create persists a new listing
	Create(ctx context.Context, l *listing.Listing) error

	// GetByID retrieves a listing by ID regardless of its active flag
	GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)

	// GetAndCountView retrieves an active listing by ID and increments its
	// view counter in the same store operation, so concurrent fetches never
	// lose an increment
	GetAndCountView(ctx context.Context, id uuid.UUID) (*listing.Listing, error)

	// List retrieves one page of listings matching the predicate, in the
	// canonical order (created_at descending, id ascending on ties)
	List(ctx context.Context, pred query.Predicate, limit, offset int) ([]*listing.Listing, error)

	// Count returns the total number of listings matching the predicate
	Count(ctx context.Context, pred query.Predicate) (int, error)

	// Update rewrites the mutable fields of a listing
	Update(ctx context.Context, l *listing.Listing) error

	// SoftDelete flips the active flag off
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// HardDelete removes the listing and its attachment rows
	HardDelete(ctx context.Context, id uuid.UUID) error

	// SlugExists reports whether any listing already uses the slug
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// AttachmentRepository defines the interface for attachment metadata
type AttachmentRepository interface {
	// Create persists a new attachment record
	Create(ctx context.Context, a *listing.Attachment) error

	// ListByListingID retrieves all attachments of a listing
	ListByListingID(ctx context.Context, listingID uuid.UUID) ([]*listing.Attachment, error)
}

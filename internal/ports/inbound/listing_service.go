package inbound

import (
	"context"
	"io"

	"corkboard-listing-service/internal/domain/listing"
	"corkboard-listing-service/internal/domain/shared"

	"github.com/google/uuid"
)

// ListingService defines the interface for listing operations
type ListingService interface {
	// List retrieves one page of active listings matching the filters
	List(ctx context.Context, req ListRequest) (*Page, error)

	// Get retrieves an active listing by ID and counts the view
	Get(ctx context.Context, id uuid.UUID) (*listing.Listing, error)

	// GetAny retrieves a listing by ID including soft-deleted ones.
	// Restricted to administrators; does not count a view.
	GetAny(ctx context.Context, actor shared.Actor, id uuid.UUID) (*listing.Listing, error)

	// Create validates and persists a new listing owned by the actor
	Create(ctx context.Context, actor shared.Actor, req CreateListingRequest) (*listing.Listing, error)

	// Update applies a partial update, owner or admin only
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateListingRequest) (*listing.Listing, error)

	// Delete removes a listing (soft or hard per policy), owner or admin only
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error

	// Transition moves the listing status along the allowed chain
	Transition(ctx context.Context, actor shared.Actor, id uuid.UUID, target listing.Status) (*listing.Listing, error)

	// AddAttachment stores attachment bytes and records the reference
	AddAttachment(ctx context.Context, actor shared.Actor, id uuid.UUID, req AttachmentUpload) (*listing.Attachment, error)

	// Attachments retrieves the attachment records of a listing
	Attachments(ctx context.Context, id uuid.UUID) ([]*listing.Attachment, error)
}

// request to list listings
type ListRequest struct {
	// Filters maps raw filter keys to raw values; unknown keys are ignored
	Filters map[string]string `json:"filters,omitempty"`

	// PageToken is the opaque cursor returned by a previous call, or empty
	// for the first page
	PageToken string `json:"page_token,omitempty"`

	// PageSize is clamped to the configured maximum; zero means the default
	PageSize int `json:"page_size,omitempty"`

	// IncludeInactive resolves soft-deleted listings too. The presentation
	// adapter only sets it for administrators.
	IncludeInactive bool `json:"-"`
}

// Page is one bounded slice of a listing result set
type Page struct {
	Listings      []*listing.Listing `json:"listings"`
	TotalCount    int                `json:"total_count"`
	NextPageToken string             `json:"next_page_token,omitempty"`
}

// request to create a listing
type CreateListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	Status      string  `json:"status,omitempty"`
	Price       float64 `json:"price"`
}

// request to partially update a listing; nil fields are left untouched
type UpdateListingRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// AttachmentUpload carries attachment bytes towards the object store
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

package app

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"corkboard-listing-service/internal/domain/listing"
	"corkboard-listing-service/internal/domain/shared"
	"corkboard-listing-service/internal/ports/inbound"
	"corkboard-listing-service/internal/ports/outbound"
	"corkboard-listing-service/internal/query"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const minTitleLength = 3

// ListingService implements the listing use cases
type ListingService struct {
	listingRepo    outbound.ListingRepository
	attachmentRepo outbound.AttachmentRepository
	store          outbound.ObjectStore
	notifier       outbound.Notifier
	policy         Policy
	logger         zerolog.Logger
}

type ListingServiceParams struct {
	ListingRepo    outbound.ListingRepository
	AttachmentRepo outbound.AttachmentRepository
	Store          outbound.ObjectStore
	Notifier       outbound.Notifier
	Policy         Policy
	Logger         zerolog.Logger
}

// NewListingService creates a new listing service
func NewListingService(params ListingServiceParams) *ListingService {
	return &ListingService{
		listingRepo:    params.ListingRepo,
		attachmentRepo: params.AttachmentRepo,
		store:          params.Store,
		notifier:       params.Notifier,
		policy:         params.Policy,
		logger:         params.Logger.With().Str("component", "listing_service").Logger(),
	}
}

// List retrieves one page of listings matching the filters
func (service *ListingService) List(ctx context.Context, req inbound.ListRequest) (*inbound.Page, error) {
	pageSize := service.policy.clampPageSize(req.PageSize)

	offset, err := decodePageToken(req.PageToken)
	if err != nil {
		return nil, err
	}

	pred := query.Build(req.Filters, req.IncludeInactive)
	if pred.MatchNone {
		service.logger.Debug().
			Interface("filters", req.Filters).
			Msg("Filter value matches nothing, returning empty page")
		return &inbound.Page{Listings: []*listing.Listing{}}, nil
	}

	total, err := service.listingRepo.Count(ctx, pred)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to count listings")
		return nil, err
	}

	listings, err := service.listingRepo.List(ctx, pred, pageSize, offset)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to list listings")
		return nil, err
	}
	if listings == nil {
		listings = []*listing.Listing{}
	}

	page := &inbound.Page{
		Listings:   listings,
		TotalCount: total,
	}
	if offset+len(listings) < total {
		page.NextPageToken = encodePageToken(offset + pageSize)
	}

	return page, nil
}

// Get retrieves an active listing by ID, counting the view at the store so
// concurrent fetches never under- or over-count
func (service *ListingService) Get(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	l, err := service.listingRepo.GetAndCountView(ctx, id)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetAny retrieves a listing by ID including soft-deleted ones, admins only
func (service *ListingService) GetAny(ctx context.Context, actor shared.Actor, id uuid.UUID) (*listing.Listing, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}
	return service.listingRepo.GetByID(ctx, id)
}

// Create validates and persists a new listing owned by the actor
func (service *ListingService) Create(ctx context.Context, actor shared.Actor, req inbound.CreateListingRequest) (*listing.Listing, error) {
	service.logger.Info().
		Str("actor_id", actor.ID.String()).
		Str("title", req.Title).
		Str("category", req.Category).
		Msg("Attempting to create listing")

	title := strings.TrimSpace(req.Title)
	if len([]rune(title)) < minTitleLength {
		return nil, shared.NewValidationError("title", fmt.Sprintf("must be at least %d characters", minTitleLength))
	}

	category := listing.Category(req.Category)
	if !listing.ValidCategory(category) {
		return nil, shared.NewValidationError("category", "not a recognized category")
	}

	status := listing.StatusOpen
	if req.Status != "" {
		status = listing.Status(req.Status)
		if !listing.ValidStatus(status) {
			return nil, shared.NewValidationError("status", "not a recognized status")
		}
	}

	if req.Price < 0 {
		return nil, shared.NewValidationError("price", "must be zero or positive")
	}

	slug, err := service.uniqueSlug(ctx, title)
	if err != nil {
		service.logger.Error().Err(err).Str("title", title).Msg("Failed to derive slug")
		return nil, err
	}

	now := time.Now()
	l := &listing.Listing{
		ID:          uuid.New(),
		OwnerID:     actor.ID,
		Title:       title,
		Slug:        slug,
		Description: req.Description,
		Location:    req.Location,
		Category:    category,
		Status:      status,
		Price:       req.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.listingRepo.Create(ctx, l); err != nil {
		service.logger.Error().Err(err).Str("listing_id", l.ID.String()).Msg("Failed to save listing")
		return nil, err
	}

	service.logger.Info().
		Str("listing_id", l.ID.String()).
		Str("slug", l.Slug).
		Msg("Listing created successfully")

	service.notify(ctx, outbound.Event{
		Type:      outbound.EventTypeListingCreated,
		ListingID: l.ID,
		ActorID:   actor.ID,
		Timestamp: now.Unix(),
	})

	return l, nil
}

// Update applies a partial update, owner or admin only. Identifier and owner
// are immutable; the update timestamp reflects the applied write.
func (service *ListingService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req inbound.UpdateListingRequest) (*listing.Listing, error) {
	l, err := service.activeListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanModify(l.OwnerID) {
		service.logger.Warn().
			Str("listing_id", id.String()).
			Str("actor_id", actor.ID.String()).
			Msg("Update rejected, actor is not owner or admin")
		return nil, shared.ErrPermissionDenied
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if len([]rune(title)) < minTitleLength {
			return nil, shared.NewValidationError("title", fmt.Sprintf("must be at least %d characters", minTitleLength))
		}
		l.Title = title
	}
	if req.Category != nil {
		category := listing.Category(*req.Category)
		if !listing.ValidCategory(category) {
			return nil, shared.NewValidationError("category", "not a recognized category")
		}
		l.Category = category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, shared.NewValidationError("price", "must be zero or positive")
		}
		l.Price = *req.Price
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Location != nil {
		l.Location = *req.Location
	}

	l.UpdatedAt = time.Now()

	if err := service.listingRepo.Update(ctx, l); err != nil {
		service.logger.Error().Err(err).Str("listing_id", id.String()).Msg("Failed to update listing")
		return nil, err
	}

	service.notify(ctx, outbound.Event{
		Type:      outbound.EventTypeListingUpdated,
		ListingID: l.ID,
		ActorID:   actor.ID,
		Timestamp: l.UpdatedAt.Unix(),
	})

	return l, nil
}

// Delete removes a listing, owner or admin only. Under the soft-delete
// policy the row stays behind with the active flag off; otherwise the row,
// its attachment records and their stored objects are all removed.
func (service *ListingService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	l, err := service.activeListing(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanModify(l.OwnerID) {
		service.logger.Warn().
			Str("listing_id", id.String()).
			Str("actor_id", actor.ID.String()).
			Msg("Delete rejected, actor is not owner or admin")
		return shared.ErrPermissionDenied
	}

	if service.policy.SoftDelete {
		if err := service.listingRepo.SoftDelete(ctx, id); err != nil {
			service.logger.Error().Err(err).Str("listing_id", id.String()).Msg("Failed to soft-delete listing")
			return err
		}
	} else {
		attachments, err := service.attachmentRepo.ListByListingID(ctx, id)
		if err != nil {
			service.logger.Error().Err(err).Str("listing_id", id.String()).Msg("Failed to load attachments for delete")
			return err
		}

		if err := service.listingRepo.HardDelete(ctx, id); err != nil {
			service.logger.Error().Err(err).Str("listing_id", id.String()).Msg("Failed to hard-delete listing")
			return err
		}

		// The rows are gone; orphaned objects are only worth a warning.
		for _, a := range attachments {
			if err := service.store.Remove(ctx, a.ObjectKey); err != nil {
				service.logger.Warn().Err(err).Str("object_key", a.ObjectKey).Msg("Failed to remove stored attachment object")
			}
		}
	}

	service.logger.Info().Str("listing_id", id.String()).Msg("Listing deleted")

	service.notify(ctx, outbound.Event{
		Type:      outbound.EventTypeListingDeleted,
		ListingID: id,
		ActorID:   actor.ID,
		Timestamp: time.Now().Unix(),
	})

	return nil
}

// Transition moves the listing status along the allowed chain, owner or
// admin only
func (service *ListingService) Transition(ctx context.Context, actor shared.Actor, id uuid.UUID, target listing.Status) (*listing.Listing, error) {
	l, err := service.activeListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanModify(l.OwnerID) {
		return nil, shared.ErrPermissionDenied
	}

	if !listing.ValidStatus(target) {
		return nil, shared.NewValidationError("status", "not a recognized status")
	}

	if !l.CanTransitionTo(service.policy.Transitions, target) {
		service.logger.Warn().
			Str("listing_id", id.String()).
			Str("from", string(l.Status)).
			Str("to", string(target)).
			Msg("Status transition not allowed")
		return nil, &shared.InvalidTransitionError{From: string(l.Status), To: string(target)}
	}

	previous := l.Status
	l.Transition(target)

	if err := service.listingRepo.Update(ctx, l); err != nil {
		service.logger.Error().Err(err).Str("listing_id", id.String()).Msg("Failed to persist status transition")
		return nil, err
	}

	service.logger.Info().
		Str("listing_id", id.String()).
		Str("from", string(previous)).
		Str("to", string(target)).
		Msg("Listing status changed")

	service.notify(ctx, outbound.Event{
		Type:      outbound.EventTypeStatusChanged,
		ListingID: l.ID,
		ActorID:   actor.ID,
		Data:      map[string]interface{}{"from": string(previous), "to": string(target)},
		Timestamp: l.UpdatedAt.Unix(),
	})

	return l, nil
}

// AddAttachment hands the bytes to the object store and records the
// returned reference, owner or admin only
func (service *ListingService) AddAttachment(ctx context.Context, actor shared.Actor, id uuid.UUID, req inbound.AttachmentUpload) (*listing.Attachment, error) {
	l, err := service.activeListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanModify(l.OwnerID) {
		return nil, shared.ErrPermissionDenied
	}

	if req.Size <= 0 {
		return nil, shared.NewValidationError("size", "must be positive")
	}

	key := fmt.Sprintf("listings/%s/%s%s", l.ID, uuid.New(), path.Ext(req.Filename))
	if err := service.store.Put(ctx, key, req.Reader, req.Size, req.ContentType); err != nil {
		service.logger.Error().Err(err).Str("object_key", key).Msg("Failed to store attachment object")
		return nil, shared.NewStorageError("attachment upload", err)
	}

	a := &listing.Attachment{
		ID:          uuid.New(),
		ListingID:   l.ID,
		ObjectKey:   key,
		ContentType: req.ContentType,
		Size:        req.Size,
		CreatedAt:   time.Now(),
	}

	if err := service.attachmentRepo.Create(ctx, a); err != nil {
		service.logger.Error().Err(err).Str("object_key", key).Msg("Failed to record attachment, removing stored object")
		if removeErr := service.store.Remove(ctx, key); removeErr != nil {
			service.logger.Warn().Err(removeErr).Str("object_key", key).Msg("Failed to remove orphaned object")
		}
		return nil, err
	}

	service.notify(ctx, outbound.Event{
		Type:      outbound.EventTypeAttachmentAdded,
		ListingID: l.ID,
		ActorID:   actor.ID,
		Data:      map[string]interface{}{"attachment_id": a.ID.String()},
		Timestamp: a.CreatedAt.Unix(),
	})

	return a, nil
}

// Attachments retrieves the attachment records of an active listing
func (service *ListingService) Attachments(ctx context.Context, id uuid.UUID) ([]*listing.Attachment, error) {
	if _, err := service.activeListing(ctx, id); err != nil {
		return nil, err
	}
	return service.attachmentRepo.ListByListingID(ctx, id)
}

// activeListing resolves id to a listing that has not been soft-deleted.
func (service *ListingService) activeListing(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	l, err := service.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsActive() {
		return nil, shared.ErrListingNotFound
	}
	return l, nil
}

// uniqueSlug normalizes the title and disambiguates collisions with a
// numeric suffix, giving up with a conflict once attempts run out.
func (service *ListingService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := listing.Slugify(title)
	if base == "" {
		return "", shared.NewValidationError("title", "must contain at least one letter or digit")
	}

	for n := 0; n < service.policy.SlugAttempts; n++ {
		candidate := listing.SlugWithSuffix(base, n)
		taken, err := service.listingRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", shared.ErrSlugExhausted
}

// notify delivers the event to the notification collaborator. Delivery
// failure never affects the mutation that triggered it.
func (service *ListingService) notify(ctx context.Context, event outbound.Event) {
	if service.notifier == nil {
		return
	}
	if err := service.notifier.Publish(ctx, event); err != nil {
		service.logger.Warn().
			Err(err).
			Str("event_type", string(event.Type)).
			Str("listing_id", event.ListingID.String()).
			Msg("Failed to deliver mutation event")
	}
}

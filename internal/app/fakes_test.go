package app

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"corkboard-listing-service/internal/domain/listing"
	"corkboard-listing-service/internal/domain/shared"
	"corkboard-listing-service/internal/ports/outbound"
	"corkboard-listing-service/internal/query"

	"github.com/google/uuid"
)

// fakeListingRepo is an in-memory ListingRepository. It evaluates predicates
// with query.Predicate.Matches and sorts with query.Less, the same contract
// the SQL adapter implements.
type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*listing.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uuid.UUID]*listing.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, l *listing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *l
	r.listings[l.ID] = &clone
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, shared.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *fakeListingRepo) GetAndCountView(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok || !l.Active {
		return nil, shared.ErrListingNotFound
	}
	l.ViewCount++
	clone := *l
	return &clone, nil
}

func (r *fakeListingRepo) matching(pred query.Predicate) []*listing.Listing {
	var out []*listing.Listing
	for _, l := range r.listings {
		if pred.Matches(l) {
			clone := *l
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return query.Less(out[i], out[j]) })
	return out
}

func (r *fakeListingRepo) List(ctx context.Context, pred query.Predicate, limit, offset int) ([]*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(pred)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeListingRepo) Count(ctx context.Context, pred query.Predicate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matching(pred)), nil
}

func (r *fakeListingRepo) Update(ctx context.Context, l *listing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[l.ID]; !ok {
		return shared.ErrListingNotFound
	}
	clone := *l
	r.listings[l.ID] = &clone
	return nil
}

func (r *fakeListingRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return shared.ErrListingNotFound
	}
	l.Active = false
	return nil
}

func (r *fakeListingRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return shared.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.listings {
		if l.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeAttachmentRepo struct {
	mu          sync.Mutex
	attachments map[uuid.UUID][]*listing.Attachment
	failCreate  bool
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[uuid.UUID][]*listing.Attachment)}
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, a *listing.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("attachment insert failed")
	}
	clone := *a
	r.attachments[a.ListingID] = append(r.attachments[a.ListingID], &clone)
	return nil
}

func (r *fakeAttachmentRepo) ListByListingID(ctx context.Context, listingID uuid.UUID) ([]*listing.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*listing.Attachment(nil), r.attachments[listingID]...), nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]int64
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string]int64)}
}

func (s *fakeObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = size
	return nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeObjectStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []outbound.Event
	fail   bool
}

func (n *recordingNotifier) Publish(ctx context.Context, event outbound.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("broker unavailable")
	}
	n.events = append(n.events, event)
	return nil
}

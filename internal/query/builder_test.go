package query

import (
	"testing"
	"time"

	"corkboard-listing-service/internal/domain/listing"

	"github.com/google/uuid"
)

func TestBuildIgnoresUnknownKeys(t *testing.T) {
	pred := Build(map[string]string{
		"sort_by":   "price",
		"max_price": "100",
		"status":    "open",
	}, false)

	if pred.MatchNone {
		t.Fatal("unknown keys must not poison the predicate")
	}
	if pred.Status == nil || *pred.Status != listing.StatusOpen {
		t.Errorf("expected status filter 'open', got %v", pred.Status)
	}
}

func TestBuildBlankValuesMeanNoFilter(t *testing.T) {
	pred := Build(map[string]string{
		"status":   "",
		"category": "   ",
		"search":   "",
	}, false)

	if pred.Status != nil || pred.Category != nil || pred.Search != "" {
		t.Errorf("blank values must produce no filters, got %+v", pred)
	}
}

func TestBuildUnrecognizedEnumFailsSoft(t *testing.T) {
	for _, filters := range []map[string]string{
		{"status": "archived"},
		{"category": "spaceships"},
		{"owner": "not-a-uuid"},
	} {
		pred := Build(filters, false)
		if !pred.MatchNone {
			t.Errorf("filters %v: expected MatchNone", filters)
		}
		if pred.Matches(&listing.Listing{Active: true, Status: listing.StatusOpen}) {
			t.Errorf("filters %v: MatchNone predicate must match nothing", filters)
		}
	}
}

func TestMatchesCombinesFiltersWithAnd(t *testing.T) {
	owner := uuid.New()
	l := &listing.Listing{
		OwnerID:     owner,
		Title:       "Lost red wallet",
		Description: "leather, near the station",
		Location:    "Main street",
		Category:    listing.CategoryAccessories,
		Status:      listing.StatusOpen,
		Active:      true,
	}

	pred := Build(map[string]string{
		"status":   "open",
		"category": "accessories",
		"search":   "WALLET",
	}, false)
	if !pred.Matches(l) {
		t.Error("expected listing to match combined filters")
	}

	pred = Build(map[string]string{
		"status":   "claimed",
		"category": "accessories",
	}, false)
	if pred.Matches(l) {
		t.Error("one failing filter must fail the whole predicate")
	}
}

func TestMatchesSearchSpansFields(t *testing.T) {
	l := &listing.Listing{
		Title:       "Umbrella",
		Description: "black, wooden handle",
		Location:    "Riverside park",
		Status:      listing.StatusOpen,
		Active:      true,
	}

	for _, term := range []string{"umbrella", "WOODEN", "riverside"} {
		pred := Build(map[string]string{"search": term}, false)
		if !pred.Matches(l) {
			t.Errorf("search %q should match one of the text fields", term)
		}
	}

	pred := Build(map[string]string{"search": "bicycle"}, false)
	if pred.Matches(l) {
		t.Error("search with no field hit must not match")
	}
}

func TestMatchesExcludesInactive(t *testing.T) {
	l := &listing.Listing{Status: listing.StatusOpen, Active: false}

	if Build(nil, false).Matches(l) {
		t.Error("inactive listing must be excluded by default")
	}
	if !Build(nil, true).Matches(l) {
		t.Error("IncludeInactive predicate must resolve inactive listings")
	}
}

func TestLessOrdersNewestFirstWithIDTieBreak(t *testing.T) {
	now := time.Now()
	older := &listing.Listing{ID: uuid.New(), CreatedAt: now.Add(-time.Hour)}
	newer := &listing.Listing{ID: uuid.New(), CreatedAt: now}

	if !Less(newer, older) {
		t.Error("newer listing must sort before older")
	}
	if Less(older, newer) {
		t.Error("older listing must not sort before newer")
	}

	a := &listing.Listing{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), CreatedAt: now}
	b := &listing.Listing{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), CreatedAt: now}
	if !Less(a, b) {
		t.Error("timestamp ties must break by ascending identifier")
	}
	if Less(b, a) {
		t.Error("tie-break must be asymmetric")
	}
}

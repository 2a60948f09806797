package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"corkboard-listing-service/internal/domain/listing"
	"corkboard-listing-service/internal/domain/shared"
	"corkboard-listing-service/internal/query"

	"github.com/google/uuid"
)

const listingColumns = "id, owner_id, title, slug, description, location, category, status, price, view_count, active, created_at, updated_at"

// Canonical order: newest first, identifier ascending on timestamp ties, so
// pages stay stable across requests. Must agree with query.Less.
const listingOrder = "ORDER BY created_at DESC, id ASC"

// ListingRepository implements the listing repository interface
type ListingRepository struct {
	conn *Connection
}

// NewListingRepository creates a new listing repository
func NewListingRepository(conn *Connection) *ListingRepository {
	return &ListingRepository{conn: conn}
}

// Create persists a new listing
func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	q := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, q,
		l.ID,
		l.OwnerID,
		l.Title,
		l.Slug,
		l.Description,
		l.Location,
		l.Category,
		l.Status,
		l.Price,
		l.ViewCount,
		l.Active,
		l.CreatedAt,
		l.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// GetByID retrieves a listing by ID regardless of its active flag
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	q := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	row := r.conn.GetDB().QueryRowContext(ctx, q, id)
	return scanListing(row)
}

// GetAndCountView retrieves an active listing by ID, incrementing its view
// counter in the same statement. The increment happens in-place at the store
// so concurrent fetches cannot lose updates.
func (r *ListingRepository) GetAndCountView(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	q := `
		UPDATE listings
		SET view_count = view_count + 1
		WHERE id = $1 AND active = TRUE
		RETURNING ` + listingColumns

	row := r.conn.GetDB().QueryRowContext(ctx, q, id)
	return scanListing(row)
}

// List retrieves one page of listings matching the predicate
func (r *ListingRepository) List(ctx context.Context, pred query.Predicate, limit, offset int) ([]*listing.Listing, error) {
	if pred.MatchNone {
		return nil, nil
	}

	where, args := buildWhere(pred)
	q := fmt.Sprintf("SELECT %s FROM listings %s %s LIMIT $%d OFFSET $%d",
		listingColumns, where, listingOrder, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn.GetDB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []*listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}

// Count returns the total number of listings matching the predicate
func (r *ListingRepository) Count(ctx context.Context, pred query.Predicate) (int, error) {
	if pred.MatchNone {
		return 0, nil
	}

	where, args := buildWhere(pred)
	q := "SELECT COUNT(*) FROM listings " + where

	var count int
	if err := r.conn.GetDB().QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}

	return count, nil
}

// Update rewrites the mutable fields of a listing
func (r *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	q := `
		UPDATE listings
		SET title = $2, description = $3, location = $4, category = $5,
		    status = $6, price = $7, active = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, q,
		l.ID,
		l.Title,
		l.Description,
		l.Location,
		l.Category,
		l.Status,
		l.Price,
		l.Active,
		l.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	return checkFound(result)
}

// SoftDelete flips the active flag off
func (r *ListingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	q := `UPDATE listings SET active = FALSE, updated_at = now() WHERE id = $1 AND active = TRUE`

	result, err := r.conn.GetDB().ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete listing: %w", err)
	}

	return checkFound(result)
}

// HardDelete removes the listing row and its attachment rows in one
// transaction
func (r *ListingRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.conn.ExecuteTransaction(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM attachments WHERE listing_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete listing: %w", err)
		}

		return checkFound(result)
	})
}

// SlugExists reports whether any listing already uses the slug
func (r *ListingRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	if err := r.conn.GetDB().QueryRowContext(ctx, `SELECT COUNT(1) FROM listings WHERE slug = $1`, slug).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

// buildWhere translates a predicate into a WHERE clause with positional
// arguments. Distinct filters combine with AND; the free-text search spans
// title, description and location with OR.
func buildWhere(pred query.Predicate) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if !pred.IncludeInactive {
		conds = append(conds, "active = TRUE")
	}
	if pred.Status != nil {
		args = append(args, *pred.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if pred.Category != nil {
		args = append(args, *pred.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if pred.OwnerID != nil {
		args = append(args, *pred.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if pred.Search != "" {
		args = append(args, "%"+escapeLike(pred.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\' OR location ILIKE $%d ESCAPE '\')`, n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*listing.Listing, error) {
	var l listing.Listing
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.Title,
		&l.Slug,
		&l.Description,
		&l.Location,
		&l.Category,
		&l.Status,
		&l.Price,
		&l.ViewCount,
		&l.Active,
		&l.CreatedAt,
		&l.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	return &l, nil
}

func checkFound(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return shared.ErrListingNotFound
	}
	return nil
}

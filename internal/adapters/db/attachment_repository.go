package db

import (
	"context"
	"fmt"

	"corkboard-listing-service/internal/domain/listing"

	"github.com/google/uuid"
)

// AttachmentRepository implements the attachment repository interface
type AttachmentRepository struct {
	conn *Connection
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(conn *Connection) *AttachmentRepository {
	return &AttachmentRepository{conn: conn}
}

// Create persists a new attachment record
func (r *AttachmentRepository) Create(ctx context.Context, a *listing.Attachment) error {
	q := `
		INSERT INTO attachments (id, listing_id, object_key, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, q,
		a.ID,
		a.ListingID,
		a.ObjectKey,
		a.ContentType,
		a.Size,
		a.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	return nil
}

// ListByListingID retrieves all attachments of a listing, oldest first
func (r *AttachmentRepository) ListByListingID(ctx context.Context, listingID uuid.UUID) ([]*listing.Attachment, error) {
	q := `
		SELECT id, listing_id, object_key, content_type, size, created_at
		FROM attachments
		WHERE listing_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*listing.Attachment
	for rows.Next() {
		var a listing.Attachment
		err := rows.Scan(
			&a.ID,
			&a.ListingID,
			&a.ObjectKey,
			&a.ContentType,
			&a.Size,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachments: %w", err)
	}

	return attachments, nil
}

package db

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	id          UUID PRIMARY KEY,
	owner_id    UUID NOT NULL,
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL,
	status      TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL DEFAULT 0,
	view_count  BIGINT NOT NULL DEFAULT 0,
	active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_listings_order ON listings (created_at DESC, id ASC);
CREATE INDEX IF NOT EXISTS idx_listings_status ON listings (status) WHERE active;
CREATE INDEX IF NOT EXISTS idx_listings_category ON listings (category) WHERE active;
CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings (owner_id);

CREATE TABLE IF NOT EXISTS attachments (
	id           UUID PRIMARY KEY,
	listing_id   UUID NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
	object_key   TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	size         BIGINT NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attachments_listing ON attachments (listing_id);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (client *Connection) EnsureSchema(ctx context.Context) error {
	if _, err := client.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

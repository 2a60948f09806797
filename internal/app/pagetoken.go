package app

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"corkboard-listing-service/internal/domain/shared"
)

const pageTokenVersion = "v1"

// encodePageToken wraps a result offset in an opaque cursor. Offset zero is
// the first page and needs no token.
func encodePageToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	raw := fmt.Sprintf("%s:%d", pageTokenVersion, offset)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodePageToken recovers the offset from a cursor produced by
// encodePageToken. A garbled token is a request-local validation error.
func decodePageToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, shared.NewValidationError("page_token", "malformed token")
	}

	version, value, found := strings.Cut(string(raw), ":")
	if !found || version != pageTokenVersion {
		return 0, shared.NewValidationError("page_token", "malformed token")
	}

	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 {
		return 0, shared.NewValidationError("page_token", "malformed token")
	}

	return offset, nil
}

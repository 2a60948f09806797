package app

import (
	"errors"
	"testing"

	"corkboard-listing-service/internal/domain/shared"
)

func TestPageTokenRoundTrip(t *testing.T) {
	for _, offset := range []int{0, 1, 10, 1234} {
		token := encodePageToken(offset)
		got, err := decodePageToken(token)
		if err != nil {
			t.Fatalf("decode(encode(%d)): %v", offset, err)
		}
		if got != offset {
			t.Errorf("round trip %d -> %d", offset, got)
		}
	}
}

func TestZeroOffsetHasNoToken(t *testing.T) {
	if token := encodePageToken(0); token != "" {
		t.Errorf("expected empty token for offset 0, got %q", token)
	}
}

func TestMalformedPageToken(t *testing.T) {
	for _, token := range []string{"garbage!!!", "dG90YWxseS1ub3QtYS10b2tlbg", "djE6LTU"} {
		_, err := decodePageToken(token)
		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("token %q: expected validation error, got %v", token, err)
		}
	}
}

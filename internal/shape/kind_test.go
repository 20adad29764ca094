package shape

import (
	"errors"
	"testing"
)

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range All() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, err := ParseKind("Torus")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestInvalidKindHasNoExtent(t *testing.T) {
	k := Kind(200)
	if k.Valid() {
		t.Fatalf("kind 200 should be invalid")
	}
	if k.HalfHeight() != 0 || k.Radius() != 0 {
		t.Fatalf("invalid kind should have zero extents")
	}
	if _, err := k.MarshalText(); err == nil {
		t.Fatalf("expected marshal error for invalid kind")
	}
}

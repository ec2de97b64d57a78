package cart

import (
	"testing"

	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
)

func TestEncodeNilCart(t *testing.T) {
	t.Parallel()

	raw, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	original := Cart{testItem("1", "Shoe", 2), testItem("2", "Sock", 1)}

	raw, err := Encode(original)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	restored, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("expected two items, got %+v", restored)
	}
	if restored[0].Key() != "1" || restored[0].Amount != 2 || restored[0].Title != "Shoe" {
		t.Fatalf("first item mangled: %+v", restored[0])
	}
	if !restored[0].Price.Equal(original[0].Price) {
		t.Fatalf("price mangled: %s vs %s", restored[0].Price, original[0].Price)
	}
}

func TestDecodeBlankSnapshot(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "null"} {
		c, err := Decode(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if c == nil || len(c) != 0 {
			t.Fatalf("expected empty cart for %q, got %+v", raw, c)
		}
	}
}

func TestDecodeCorruptSnapshot(t *testing.T) {
	t.Parallel()

	_, err := Decode("{not json")
	if err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

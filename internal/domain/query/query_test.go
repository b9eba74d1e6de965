package query

import (
	"strings"
	"testing"
)

func TestNewQueryID_Format(t *testing.T) {
	id := NewQueryID()

	// フォーマット: YYYYMMDD-HHMMSS-{UUID先頭8文字}
	parts := strings.Split(id.String(), "-")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 parts, got %d: %s", len(parts), id.String())
	}

	if len(parts[0]) != 8 || len(parts[1]) != 6 || len(parts[2]) != 8 {
		t.Errorf("Unexpected part lengths in QueryID: %s", id.String())
	}
}

func TestNewQueryID_Unique(t *testing.T) {
	id1 := NewQueryID()
	id2 := NewQueryID()

	if id1.Equals(id2) {
		t.Error("Two generated QueryIDs should not be equal")
	}
}

func TestQueryID_IsZero(t *testing.T) {
	var zero QueryID
	if !zero.IsZero() {
		t.Error("Zero-value QueryID should report IsZero")
	}

	if NewQueryID().IsZero() {
		t.Error("Generated QueryID should not be zero")
	}
}

func TestQueryIDFromString_RoundTrip(t *testing.T) {
	original := NewQueryID()
	restored := QueryIDFromString(original.String())

	if !original.Equals(restored) {
		t.Errorf("Expected restored ID to equal original: %s != %s", restored, original)
	}
}

func TestNewQuery(t *testing.T) {
	id := NewQueryID()
	q := NewQuery(id, "I was charged twice for my monthly subscription")

	if !q.ID().Equals(id) {
		t.Error("Query should keep its ID")
	}

	if q.Text() != "I was charged twice for my monthly subscription" {
		t.Errorf("Unexpected query text: %s", q.Text())
	}
}

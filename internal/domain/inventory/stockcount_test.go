package inventory

import (
	"encoding/json"
	"testing"
)

func TestStockCount_UnmarshalNumber(t *testing.T) {
	var e ExpirationEntry
	if err := json.Unmarshal([]byte(`{"stock": 100, "expirationDate": "2030-01-01"}`), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if e.Stock != 100 {
		t.Errorf("stock = %d, want 100", e.Stock)
	}
}

func TestStockCount_UnmarshalString(t *testing.T) {
	var e ExpirationEntry
	if err := json.Unmarshal([]byte(`{"stock": "100", "expirationDate": "2030-01-01"}`), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if e.Stock != 100 {
		t.Errorf("stock = %d, want 100", e.Stock)
	}
}

func TestStockCount_RejectsNonNumeric(t *testing.T) {
	var e ExpirationEntry
	if err := json.Unmarshal([]byte(`{"stock": "plenty"}`), &e); err == nil {
		t.Fatal("expected error for non-numeric stock")
	}
}

func TestStockCount_RejectsNegative(t *testing.T) {
	var e ExpirationEntry
	if err := json.Unmarshal([]byte(`{"stock": -5}`), &e); err == nil {
		t.Fatal("expected error for negative stock")
	}
}

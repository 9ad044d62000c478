package inventory

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func TestDepleteExpired_ZeroesPastEntries(t *testing.T) {
	entries := []ExpirationEntry{
		{Stock: 100, ExpirationDate: "2020-01-01"},
		{Stock: 50, ExpirationDate: "2030-01-01"},
	}

	out, changed := DepleteExpired(entries, testNow)
	if !changed {
		t.Fatal("expected change for expired entry")
	}
	if out[0].Stock != 0 {
		t.Errorf("expired entry stock = %d, want 0", out[0].Stock)
	}
	if out[1].Stock != 50 {
		t.Errorf("future entry stock = %d, want 50", out[1].Stock)
	}

	// Input must be untouched.
	if entries[0].Stock != 100 {
		t.Errorf("input slice was mutated: stock = %d", entries[0].Stock)
	}
}

func TestDepleteExpired_Idempotent(t *testing.T) {
	entries := []ExpirationEntry{{Stock: 100, ExpirationDate: "2020-01-01"}}

	once, changed := DepleteExpired(entries, testNow)
	if !changed || once[0].Stock != 0 {
		t.Fatalf("first pass: changed=%v stock=%d", changed, once[0].Stock)
	}

	twice, changed := DepleteExpired(once, testNow)
	if changed {
		t.Error("second pass reported a change on already-zero entries")
	}
	if twice[0].Stock != 0 {
		t.Errorf("second pass stock = %d, want 0", twice[0].Stock)
	}
}

func TestDepleteExpired_SameDayNotExpired(t *testing.T) {
	entries := []ExpirationEntry{{Stock: 10, ExpirationDate: "2026-06-15"}}

	_, changed := DepleteExpired(entries, testNow)
	if changed {
		t.Error("entry expiring today must not be depleted; only strictly past dates")
	}
}

func TestDepleteExpired_UnparseableDateUntouched(t *testing.T) {
	entries := []ExpirationEntry{{Stock: 10, ExpirationDate: "soon"}}

	out, changed := DepleteExpired(entries, testNow)
	if changed || out[0].Stock != 10 {
		t.Errorf("unparseable date should be left alone, got changed=%v stock=%d", changed, out[0].Stock)
	}
}

func TestDepleteExpired_NoEntries(t *testing.T) {
	if _, changed := DepleteExpired(nil, testNow); changed {
		t.Error("empty entry list must not report changes")
	}
}

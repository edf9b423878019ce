package middleware

import (
	"strings"
	"testing"
)

func TestValidIdemKey(t *testing.T) {
	valid := []string{
		strings.Repeat("a", 32),
		"0f8fad5b-d9cb-469f-a165-70867728950e",
		"  0F8FAD5B-D9CB-469F-A165-70867728950E  ", // trimmed, lowercased
	}
	for _, k := range valid {
		if !validIdemKey(k) {
			t.Errorf("expected %q valid", k)
		}
	}
	invalid := []string{"", "short", strings.Repeat("g", 32), strings.Repeat("a", 33), "0f8fad5b-d9cb-069f-a165-70867728950e"}
	for _, k := range invalid {
		if validIdemKey(k) {
			t.Errorf("expected %q invalid", k)
		}
	}
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/loans/:loan_id/repayments", "abc")
	want := "cfledger:idemp:post:/loans/:loan_id/repayments:abc"
	if got != want {
		t.Fatalf("buildKey = %q, want %q", got, want)
	}
}

func TestBodyHash_StableAndDistinct(t *testing.T) {
	a := bodyHash([]byte(`{"x":1}`))
	if a != bodyHash([]byte(`{"x":1}`)) {
		t.Fatal("hash not stable for equal bodies")
	}
	if a == bodyHash([]byte(`{"x":2}`)) {
		t.Fatal("hash collision for different bodies")
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64", len(a))
	}
}

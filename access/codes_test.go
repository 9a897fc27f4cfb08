package access

import (
	"strconv"
	"testing"
)

func TestIssueResolveRoundTrip(t *testing.T) {
	registry := NewCodeRegistry()

	code := registry.Issue(42)

	n, err := strconv.Atoi(code)
	if err != nil {
		t.Fatalf("code %q is not numeric: %v", code, err)
	}
	if n < 1000000 || n > 9999999 {
		t.Fatalf("code %q outside the 7-digit range", code)
	}

	userID, ok := registry.Resolve(code)
	if !ok {
		t.Fatalf("expected issued code to resolve")
	}
	if userID != 42 {
		t.Fatalf("expected code to resolve to 42, got %d", userID)
	}
}

func TestResolveUnknownCode(t *testing.T) {
	registry := NewCodeRegistry()

	if _, ok := registry.Resolve("0000000"); ok {
		t.Fatalf("expected never-issued code to be absent")
	}
}

func TestMultipleOutstandingCodes(t *testing.T) {
	registry := NewCodeRegistry()

	first := registry.Issue(42)
	second := registry.Issue(42)
	for i := 0; first == second && i < 10; i++ {
		// A random collision is legal but would make the assertion
		// meaningless, so draw again.
		second = registry.Issue(42)
	}

	for _, code := range []string{first, second} {
		userID, ok := registry.Resolve(code)
		if !ok || userID != 42 {
			t.Fatalf("expected code %q to still resolve to 42", code)
		}
	}
}

func TestResolveDoesNotConsume(t *testing.T) {
	registry := NewCodeRegistry()

	code := registry.Issue(7)
	registry.Resolve(code)

	if _, ok := registry.Resolve(code); !ok {
		t.Fatalf("expected code to survive repeated resolution")
	}
}

func TestRemove(t *testing.T) {
	registry := NewCodeRegistry()

	code := registry.Issue(7)
	registry.Remove(code)

	if _, ok := registry.Resolve(code); ok {
		t.Fatalf("expected removed code to be absent")
	}
}

package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var uniqueIDPattern = regexp.MustCompile(`^GDGOC-[0-9A-Z]+-[0-9A-F]{8}$`)

func TestNewUniqueIDFormat(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

	id, err := NewUniqueID(now)
	if err != nil {
		t.Fatalf("new unique id: %v", err)
	}

	if !uniqueIDPattern.MatchString(id) {
		t.Fatalf("unexpected id shape: %s", id)
	}
	if id != strings.ToUpper(id) {
		t.Fatalf("expected uppercase id, got %s", id)
	}
}

func TestNewUniqueIDUniqueness(t *testing.T) {
	now := time.Now().UTC()
	seen := make(map[string]struct{}, 10000)

	for i := 0; i < 10000; i++ {
		id, err := NewUniqueID(now)
		if err != nil {
			t.Fatalf("new unique id: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d draws: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

package idgen

import (
	"regexp"
	"testing"
)

func TestEntityPrefixes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		generate func() (string, error)
		prefix   string
	}{
		{"Member", Member, PrefixMember},
		{"Board", Board, PrefixBoard},
		{"Group", Group, PrefixGroup},
		{"Item", Item, PrefixItem},
	} {
		t.Run(tc.name, func(t *testing.T) {
			id, err := tc.generate()
			if err != nil {
				t.Fatalf("%s() error: %v", tc.name, err)
			}
			if id[:len(tc.prefix)] != tc.prefix {
				t.Errorf("%s() = %q, want prefix %q", tc.name, id, tc.prefix)
			}
			wantLen := len(tc.prefix) + Length
			if len(id) != wantLen {
				t.Errorf("%s() length = %d, want %d (id=%q)", tc.name, len(id), wantLen, id)
			}
		})
	}
}

func TestGenerateWithPrefix_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(PrefixItem) + `[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := GenerateWithPrefix(PrefixItem)
		if err != nil {
			t.Fatalf("GenerateWithPrefix() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("GenerateWithPrefix() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestGenerateWithPrefix_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := GenerateWithPrefix(PrefixItem)
		if err != nil {
			t.Fatalf("GenerateWithPrefix() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

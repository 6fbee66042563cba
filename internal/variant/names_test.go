package variant_test

import (
	"testing"

	"guise/internal/variant"
)

func TestNameFromURL(t *testing.T) {
	cases := []struct {
		url      string
		expected string
	}{
		{"https://assets.example/tokens/goblin-archer.png", "Goblin Archer"},
		{"https://assets.example/cave_troll.webm?v=2", "Cave Troll"},
		{"dire%20wolf.jpg", "Dire Wolf"},
		{"plain", "Plain"},
		{"", "Variant"},
		{"https://assets.example/", "Variant"},
		{"---.png", "Variant"},
	}

	for _, tc := range cases {
		if got := variant.NameFromURL(tc.url); got != tc.expected {
			t.Errorf("NameFromURL(%q) = %q, want %q", tc.url, got, tc.expected)
		}
	}
}

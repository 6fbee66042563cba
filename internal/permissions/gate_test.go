package permissions_test

import (
	"testing"

	"guise/internal/permissions"
	"guise/internal/scene"
)

func TestCanAddVariants(t *testing.T) {
	item := scene.Item{ID: "i1", Layer: scene.LayerCharacter}

	cases := []struct {
		name     string
		player   scene.Player
		expected bool
	}{
		{"master always allowed", scene.Player{Role: scene.RoleMaster}, true},
		{"player without grants", scene.Player{Role: scene.RolePlayer}, false},
		{
			"player with matching layer grant",
			scene.Player{Role: scene.RolePlayer, CreateLayers: []scene.Layer{scene.LayerCharacter}},
			true,
		},
		{
			"player with other layer grant",
			scene.Player{Role: scene.RolePlayer, CreateLayers: []scene.Layer{scene.LayerMap}},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := permissions.CanAddVariants(tc.player, item); got != tc.expected {
				t.Fatalf("CanAddVariants = %v, want %v", got, tc.expected)
			}
			if got := permissions.CanRemoveVariants(tc.player, item); got != tc.expected {
				t.Fatalf("CanRemoveVariants = %v, want %v", got, tc.expected)
			}
		})
	}
}

package scene

import "strings"

// Layer categorizes where in the scene stack an item lives.
type Layer string

const (
	LayerMap       Layer = "map"
	LayerProp      Layer = "prop"
	LayerMount     Layer = "mount"
	LayerCharacter Layer = "character"
)

var allLayers = []Layer{LayerMap, LayerProp, LayerMount, LayerCharacter}

// AllLayers returns the ordered list of known layers.
func AllLayers() []Layer {
	cp := make([]Layer, len(allLayers))
	copy(cp, allLayers)
	return cp
}

// ParseLayer converts a string into a known Layer.
func ParseLayer(value string) (Layer, bool) {
	normalized := Layer(strings.ToLower(strings.TrimSpace(value)))
	for _, layer := range allLayers {
		if layer == normalized {
			return layer, true
		}
	}
	return "", false
}

// Vector2 is a point in scene pixel coordinates.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Grid holds per-item grid alignment: the pixels-per-cell scale of the
// item's image and the pixel offset of its grid origin.
type Grid struct {
	DPI    float64
	Offset Vector2
}

// Item is one scene-graph element as exposed by the host. ImageWidth and
// ImageHeight are the native pixel dimensions of the current asset; the
// rendered footprint is the native size multiplied by scale.
type Item struct {
	ID          string
	Name        string
	Layer       Layer
	CreatedBy   string
	ImageURL    string
	ImageWidth  float64
	ImageHeight float64
	ScaleX      float64
	ScaleY      float64
	Rotation    float64
	Grid        Grid
	Metadata    map[string]any
}

// HasImage reports whether the item carries a renderable image asset.
func (i Item) HasImage() bool {
	return strings.TrimSpace(i.ImageURL) != "" && i.ImageWidth > 0 && i.ImageHeight > 0
}

// VisualWidth returns the item's on-screen width in scene units.
func (i Item) VisualWidth() float64 { return i.ImageWidth * i.ScaleX }

// VisualHeight returns the item's on-screen height in scene units.
func (i Item) VisualHeight() float64 { return i.ImageHeight * i.ScaleY }

// Role is a player's standing within the scene.
type Role string

const (
	// RoleMaster is the elevated game-master role permitted to manage
	// variants unconditionally.
	RoleMaster Role = "master"
	RolePlayer Role = "player"
)

// ParseRole converts a string into a known Role.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleMaster:
		return RoleMaster, true
	case RolePlayer:
		return RolePlayer, true
	default:
		return "", false
	}
}

// Player identifies an acting user together with the host-granted
// capabilities guise consults before exposing mutating affordances.
type Player struct {
	ID   string
	Name string
	Role Role
	// CreateLayers lists the layers on which the player may create items.
	// Irrelevant for masters, who may always do so.
	CreateLayers []Layer
}

// MayCreateOn reports whether the player holds a creation grant for layer.
func (p Player) MayCreateOn(layer Layer) bool {
	for _, granted := range p.CreateLayers {
		if granted == layer {
			return true
		}
	}
	return false
}

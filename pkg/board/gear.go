package board

import (
	"slices"

	"github.com/matzehuels/auteur/pkg/errors"
)

// GearType is an equipment category.
type GearType string

// Equipment categories.
const (
	GearCamera     GearType = "Camera"
	GearLens       GearType = "Lens"
	GearTripod     GearType = "Tripod"
	GearGimbal     GearType = "Gimbal"
	GearFilter     GearType = "Filter"
	GearMicrophone GearType = "Microphone"
	GearLight      GearType = "Light"
	GearFlash      GearType = "Flash"
)

// GearCategories lists the categories in display order.
var GearCategories = []GearType{
	GearCamera, GearLens, GearTripod, GearGimbal,
	GearFilter, GearMicrophone, GearLight, GearFlash,
}

// GearItem is one piece of equipment in the inventory.
type GearItem struct {
	ID   string   `json:"id" yaml:"id" bson:"id"`
	Name string   `json:"name" yaml:"name" bson:"name"`
	Type GearType `json:"type" yaml:"type" bson:"type"`
}

// Gear is the equipment inventory shared by all boards.
type Gear struct {
	Items []GearItem `json:"items" yaml:"items" bson:"items"`
}

// Add returns a new inventory with an item appended.
func (g Gear) Add(name string, t GearType) (Gear, GearItem, error) {
	if !slices.Contains(GearCategories, t) {
		return g, GearItem{}, errors.New(errors.ErrCodeInvalidInput, "unknown gear type %q", t)
	}
	if err := errors.ValidateTitle(name); err != nil {
		return g, GearItem{}, err
	}
	item := GearItem{ID: NewID(), Name: name, Type: t}
	return Gear{Items: append(slices.Clone(g.Items), item)}, item, nil
}

// Remove returns a new inventory without the item with the given id.
func (g Gear) Remove(id string) (Gear, bool) {
	items := slices.DeleteFunc(slices.Clone(g.Items), func(it GearItem) bool { return it.ID == id })
	return Gear{Items: items}, len(items) != len(g.Items)
}

// ByType groups items by category, keeping categories in display order and
// omitting empty ones.
func (g Gear) ByType() []GearGroup {
	var out []GearGroup
	for _, t := range GearCategories {
		var items []GearItem
		for _, it := range g.Items {
			if it.Type == t {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			out = append(out, GearGroup{Type: t, Items: items})
		}
	}
	return out
}

// GearGroup is the items of one category.
type GearGroup struct {
	Type  GearType
	Items []GearItem
}

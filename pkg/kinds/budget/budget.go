// Package budget implements the production budget board. Content is a JSON
// document of line items grouped into categories plus a contingency
// percentage applied to the subtotal.
package budget

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/auteur/pkg/board"
)

// Type is the board type handled by this package.
const Type = "DOCUMENT_BUDGET"

// DefaultContingency is the contingency percentage of a fresh budget.
const DefaultContingency = 10.0

// Item is one budget line.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	IsCustom    bool    `json:"isCustom"`
}

// Total is quantity times rate.
func (i Item) Total() float64 { return i.Quantity * i.Rate }

// Category groups budget lines under a heading.
type Category struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Total sums the category's lines.
func (c Category) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Total()
	}
	return sum
}

// Budget is the decoded content of a budget board.
type Budget struct {
	Categories            []Category `json:"categories"`
	ContingencyPercentage float64    `json:"contingencyPercentage"`
}

// Totals are the derived figures shown at the bottom of the board.
type Totals struct {
	Subtotal    float64
	Contingency float64
	GrandTotal  float64
	ByCategory  map[string]float64
}

// Totals computes the subtotal, the contingency amount and the grand total.
func (b Budget) Totals() Totals {
	t := Totals{ByCategory: make(map[string]float64, len(b.Categories))}
	for _, c := range b.Categories {
		ct := c.Total()
		t.ByCategory[c.Title] = ct
		t.Subtotal += ct
	}
	t.Contingency = t.Subtotal * b.ContingencyPercentage / 100
	t.GrandTotal = t.Subtotal + t.Contingency
	return t
}

var templateLines = []struct {
	category string
	items    []string
}{
	{"Above the Line", []string{"Story Rights", "Screenwriter", "Producer", "Director", "Principal Cast"}},
	{"Production", []string{
		"Production Staff", "Camera Department", "Grip & Electric", "Sound Department",
		"Production Design", "Wardrobe Department", "Hair & Makeup", "Locations", "Production Office",
	}},
	{"Post-Production", []string{
		"Editor", "Assistant Editor", "Visual Effects (VFX)", "Color Grading",
		"Sound Design & Mixing", "Music Composition", "Titles & Graphics",
	}},
	{"Other", []string{"Insurance", "Legal Fees", "Marketing & Distribution", "Festival Fees"}},
}

// Default returns the template budget: every standard line at quantity one
// and rate zero, with the default contingency.
func Default() Budget {
	b := Budget{ContingencyPercentage: DefaultContingency}
	for ci, cat := range templateLines {
		c := Category{Title: cat.category}
		for ii, name := range cat.items {
			c.Items = append(c.Items, Item{
				ID:          fmt.Sprintf("item-%d-%d", ci, ii),
				Description: name,
				Quantity:    1,
			})
		}
		b.Categories = append(b.Categories, c)
	}
	return b
}

// Parse decodes board content. Empty or malformed content, or content
// without a categories list, yields [Default].
func Parse(content string) Budget {
	var raw struct {
		Categories            []Category `json:"categories"`
		ContingencyPercentage float64    `json:"contingencyPercentage"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil || raw.Categories == nil {
		return Default()
	}
	return Budget(raw)
}

// Encode serializes b as board content.
func (b Budget) Encode() string {
	data, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	return string(data)
}

// AddItem appends a custom line to the category at index cat.
func (b Budget) AddItem(cat int, description string, quantity, rate float64) (Budget, bool) {
	if cat < 0 || cat >= len(b.Categories) {
		return b, false
	}
	b = b.clone()
	b.Categories[cat].Items = append(b.Categories[cat].Items, Item{
		ID:          "item-" + board.NewID(),
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
		IsCustom:    true,
	})
	return b, true
}

// SetItem replaces quantity and rate of the line with the given id.
func (b Budget) SetItem(id string, quantity, rate float64) (Budget, bool) {
	for ci, c := range b.Categories {
		for ii, it := range c.Items {
			if it.ID != id {
				continue
			}
			b = b.clone()
			b.Categories[ci].Items[ii].Quantity = quantity
			b.Categories[ci].Items[ii].Rate = rate
			return b, true
		}
	}
	return b, false
}

// RemoveItem drops the line with the given id.
func (b Budget) RemoveItem(id string) (Budget, bool) {
	for ci, c := range b.Categories {
		if i := slices.IndexFunc(c.Items, func(it Item) bool { return it.ID == id }); i >= 0 {
			b = b.clone()
			b.Categories[ci].Items = slices.Delete(b.Categories[ci].Items, i, i+1)
			return b, true
		}
	}
	return b, false
}

func (b Budget) clone() Budget {
	out := Budget{ContingencyPercentage: b.ContingencyPercentage, Categories: make([]Category, len(b.Categories))}
	for i, c := range b.Categories {
		out.Categories[i] = Category{Title: c.Title, Items: slices.Clone(c.Items)}
	}
	return out
}

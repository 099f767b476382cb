package budget

import (
	"io"
	"strconv"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Plugin renders budget boards.
type Plugin struct{}

func (Plugin) Type() string { return Type }

func (Plugin) Meta() plugin.Meta {
	return plugin.Meta{Title: "Budget", Description: "Estimate production costs by department.", Icon: "currency"}
}

func (Plugin) Seed(b board.Board) board.Board {
	content := Default().Encode()
	b.Content = &content
	b.DocumentType = plugin.DocumentType(Type)
	return b
}

// Content renders the compact view: category totals and the summary.
func (Plugin) Content(w io.Writer, p plugin.Props) error {
	bud := Parse(p.Board.ContentString())
	t := bud.Totals()
	fw := frag.New(w)
	fw.Raw(`<table class="budget"><tbody>`)
	for _, c := range bud.Categories {
		fw.Printf(`<tr><th>%s</th><td>%s</td></tr>`, frag.Esc(c.Title), Money(t.ByCategory[c.Title]))
	}
	fw.Raw(`</tbody>`)
	writeSummary(fw, bud, t)
	fw.Raw(`</table>`)
	return fw.Err()
}

// Fullscreen renders every line item.
func (Plugin) Fullscreen(w io.Writer, p plugin.Props) error {
	bud := Parse(p.Board.ContentString())
	t := bud.Totals()
	fw := frag.New(w)
	fw.Raw(`<table class="budget budget-full">`)
	fw.Raw(`<thead><tr><th>Description</th><th>Qty</th><th>Rate</th><th>Total</th></tr></thead>`)
	for _, c := range bud.Categories {
		fw.Printf(`<tbody data-category="%s"><tr class="category"><th colspan="3">%s</th><td>%s</td></tr>`,
			frag.Esc(c.Title), frag.Esc(c.Title), Money(t.ByCategory[c.Title]))
		for _, it := range c.Items {
			fw.Printf(`<tr data-item="%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				frag.Esc(it.ID), frag.Esc(it.Description),
				strconv.FormatFloat(it.Quantity, 'f', -1, 64), Money(it.Rate), Money(it.Total()))
		}
		fw.Raw(`</tbody>`)
	}
	writeSummary(fw, bud, t)
	fw.Raw(`</table>`)
	return fw.Err()
}

func writeSummary(fw *frag.Writer, bud Budget, t Totals) {
	fw.Raw(`<tfoot>`)
	fw.Printf(`<tr><th>Subtotal</th><td>%s</td></tr>`, Money(t.Subtotal))
	fw.Printf(`<tr><th>Contingency (%s%%)</th><td>%s</td></tr>`,
		strconv.FormatFloat(bud.ContingencyPercentage, 'f', -1, 64), Money(t.Contingency))
	fw.Printf(`<tr class="grand-total"><th>Grand Total</th><td>%s</td></tr>`, Money(t.GrandTotal))
	fw.Raw(`</tfoot>`)
}

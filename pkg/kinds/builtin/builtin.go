// Package builtin installs every built-in board kind into a registry.
package builtin

import (
	"sync"

	"github.com/matzehuels/auteur/pkg/kinds/budget"
	"github.com/matzehuels/auteur/pkg/kinds/character"
	"github.com/matzehuels/auteur/pkg/kinds/checklist"
	"github.com/matzehuels/auteur/pkg/kinds/crew"
	"github.com/matzehuels/auteur/pkg/kinds/document"
	"github.com/matzehuels/auteur/pkg/kinds/logline"
	"github.com/matzehuels/auteur/pkg/kinds/notes"
	"github.com/matzehuels/auteur/pkg/kinds/treatment"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Plugins returns a fresh list of every built-in kind.
func Plugins() []plugin.Descriptor {
	out := notes.Plugins()
	out = append(out, document.Plugins()...)
	return append(out,
		budget.Plugin{},
		character.Plugin{},
		crew.Plugin{},
		checklist.Plugin{},
		treatment.Plugin{},
		logline.Plugin{},
	)
}

// Register adds every built-in kind to r. Calling it more than once is
// harmless since registration replaces by type.
func Register(r *plugin.Registry) {
	for _, d := range Plugins() {
		r.Register(d)
	}
}

var defaultOnce sync.Once

// Default returns the process-wide registry with the built-in kinds
// installed exactly once.
func Default() *plugin.Registry {
	r := plugin.Default()
	defaultOnce.Do(func() { Register(r) })
	return r
}

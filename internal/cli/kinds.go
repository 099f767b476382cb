package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/kinds/builtin"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// kindsCommand prints the board kinds a user can add.
func (c *CLI) kindsCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the board kinds that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := builtin.Default()
			kinds := reg.Menu()
			if all {
				kinds = reg.All()
			}
			for _, d := range kinds {
				m := d.Meta()
				fmt.Printf("%s %s\n", StyleHighlight.Render(m.Title), StyleDim.Render(d.Type()))
				if m.Description != "" {
					printDetail("%s", m.Description)
				}
				if all && plugin.IsHidden(d) {
					printDetail("hidden from the add menu")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include kinds hidden from the add menu")
	return cmd
}

// menuTypes returns the addable type strings for shell completion.
func menuTypes() []string {
	menu := builtin.Default().Menu()
	out := make([]string, len(menu))
	for i, d := range menu {
		out[i] = d.Type()
	}
	return out
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// settingFields are the field names accepted by "settings set".
var settingFields = []string{"frameRate", "aspectRatio", "resolution", "style", "projectType"}

// settingsCommand shows or changes the project settings.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the project's technical settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, h, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer h.Close()
			printSettings(ws.Snapshot().Settings)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set FIELD VALUE",
		Short: "Change one setting (" + strings.Join(settingFields, ", ") + ")",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return settingFields, cobra.ShellCompDirectiveNoFileComp
			case 1:
				return settingValues(args[0]), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				if err := ws.SetSetting(args[0], args[1]); err != nil {
					if allowed := settingValues(args[0]); len(allowed) > 0 {
						return fmt.Errorf("%s (allowed: %s)", errors.UserMessage(err), strings.Join(allowed, ", "))
					}
					return err
				}
				printSuccess("Set %s to %s", args[0], StyleValue.Render(args[1]))
				return nil
			})
		},
	}
	cmd.AddCommand(set)
	return cmd
}

func settingValues(field string) []string {
	switch field {
	case "frameRate":
		return board.FrameRates
	case "aspectRatio":
		return board.AspectRatios
	case "resolution":
		return board.Resolutions
	case "projectType":
		return board.ProjectTypes
	}
	return nil
}

func printSettings(s board.Settings) {
	printKeyValue("Frame rate", s.FrameRate)
	printKeyValue("Aspect", s.AspectRatio)
	printKeyValue("Resolution", s.Resolution)
	printKeyValue("Type", s.ProjectType)
	style := s.Style
	if style == "" {
		style = StyleDim.Render("(none)")
	}
	printKeyValue("Style", style)
}

// gearCommand manages the shared equipment inventory.
func (c *CLI) gearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gear",
		Short: "Manage the equipment inventory shared by all boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, h, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer h.Close()

			groups := ws.Snapshot().Gear.ByType()
			if len(groups) == 0 {
				printInfo("No gear yet")
				printNextStep("Add some", appName+" gear add Camera \"Sony FX3\"")
				return nil
			}
			for _, g := range groups {
				fmt.Println(StyleTitle.Render(string(g.Type)))
				for _, it := range g.Items {
					printKeyValue(it.ID[:min(8, len(it.ID))], it.Name)
				}
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add TYPE NAME",
		Short: "Add an item to the inventory",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			out := make([]string, len(board.GearCategories))
			for i, t := range board.GearCategories {
				out[i] = string(t)
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				gear, item, err := ws.Snapshot().Gear.Add(args[1], board.GearType(args[0]))
				if err != nil {
					return err
				}
				ws.SetGear(gear)
				printSuccess("Added %s %s", args[0], StyleValue.Render(item.Name))
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the inventory",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				gear, ok := ws.Snapshot().Gear.Remove(args[0])
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no gear item %s", args[0])
				}
				ws.SetGear(gear)
				printSuccess("Removed gear item %s", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}

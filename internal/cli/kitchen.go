package cli

import (
	"fmt"

	yaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"kitchenplan/internal/kitchen"
)

func newKitchenCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kitchen",
		Short: "Inspect kitchen presets",
	}

	var (
		preset    string
		overrides string
	)
	show := &cobra.Command{
		Use:   "show",
		Short: "Print a preset's inventory, optionally with overrides applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.setup(cmd)
			if err != nil {
				return err
			}
			if preset == "" {
				preset = cfg.Kitchen.Preset
			}
			reg, err := kitchen.NewRegistry(preset)
			if err != nil {
				return err
			}
			inv := reg.Snapshot()
			if overrides != "" {
				ov, err := kitchen.DecodeOverrides([]byte(overrides))
				if err != nil {
					return err
				}
				if inv, err = reg.Update(ov); err != nil {
					return err
				}
			}

			data, err := yaml.Marshal(inv)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# preset: %s\n%s", reg.Preset(), data)
			return nil
		},
	}
	show.Flags().StringVar(&preset, "preset", "", "preset name (default from config)")
	show.Flags().StringVar(&overrides, "set", "", `inline YAML overrides, e.g. "add_chef: [{id: chef_9, role: prep}]"`)

	list := &cobra.Command{
		Use:   "presets",
		Short: "List preset names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range kitchen.Presets() {
				marker := ""
				if name == kitchen.DefaultPreset() {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, marker)
			}
			return nil
		},
	}

	cmd.AddCommand(show, list)
	return cmd
}

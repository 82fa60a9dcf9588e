package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/pipeline"
	"kitchenplan/internal/report"
)

// ErrInfeasible is returned by plan --strict when the plan has
// error-severity conflicts.
var ErrInfeasible = errors.New("plan is not feasible")

func newPlanCmd(root *rootOptions) *cobra.Command {
	var (
		file   string
		preset string
		format string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Schedule an event file and report conflicts",
		Example: `  kitchenplan plan -f examples/sunday_roast.yml
  kitchenplan plan -f event.yml --preset commercial --format text`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, ctx, err := root.setup(cmd)
			if err != nil {
				return err
			}
			if format != "json" && format != "text" {
				return fmt.Errorf("unknown format %q", format)
			}
			if preset == "" {
				preset = cfg.Kitchen.Preset
			}

			req, err := pipeline.LoadRequest(file)
			if err != nil {
				return err
			}
			reg, err := kitchen.NewRegistry(preset)
			if err != nil {
				return err
			}

			p := pipeline.New(cfg, reg)
			p.Validator = report.NewRules()
			if format == "text" {
				p.Formatter = report.Text{}
			}
			res, err := p.Run(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "text" {
				fmt.Fprint(out, res.Output)
			} else {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			}
			if strict && !res.Feasible() {
				return ErrInfeasible
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "event file (YAML)")
	cmd.Flags().StringVar(&preset, "preset", "", "kitchen preset when the event names none (default from config)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or text")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the plan has blocking conflicts")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

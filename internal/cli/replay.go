package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/pipeline"
	"kitchenplan/internal/replay"
	"kitchenplan/internal/sched"
)

func newReplayCmd(root *rootOptions) *cobra.Command {
	var (
		file   string
		preset string
		minute time.Duration
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play a planned event back in accelerated time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, ctx, err := root.setup(cmd)
			if err != nil {
				return err
			}
			if minute <= 0 {
				return fmt.Errorf("--minute must be positive, got %s", minute)
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
			res, err := pipeline.New(cfg, reg).Run(ctx, req)
			if err != nil {
				return err
			}

			var start *time.Time
			if req.Constraints.StartAt != "" {
				t, err := time.Parse("15:04", req.Constraints.StartAt)
				if err != nil {
					return fmt.Errorf("start_at: %w", err)
				}
				start = &t
			}
			out := cmd.OutOrStdout()
			s := &sched.Schedule{Tasks: res.Schedule.Tasks, Timeline: res.Schedule.Timeline}
			return replay.Play(ctx, s, minute, func(m int64, c replay.Cue) {
				at := fmt.Sprintf("+%3dm", m)
				if start != nil {
					at = start.Add(time.Duration(m) * time.Minute).Format("15:04")
				}
				where := ""
				if c.ResourceID != "" || c.ChefID != "" {
					where = fmt.Sprintf(" [%s]", joinNonEmpty(c.ResourceID, c.ChefID))
				}
				fmt.Fprintf(out, "%s %-5s %s%s\n", at, c.Kind, c.TaskID, where)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "event file (YAML)")
	cmd.Flags().StringVar(&preset, "preset", "", "kitchen preset when the event names none (default from config)")
	cmd.Flags().DurationVar(&minute, "minute", 100*time.Millisecond, "wall time per simulated minute")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

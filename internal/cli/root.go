// Package cli holds the kitchenplan cobra commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"kitchenplan/internal/config"
	"kitchenplan/internal/ctxlog"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "kitchenplan",
		Short: "Plan a cooking event against a kitchen's equipment and staff",
		Long: `kitchenplan turns recipes broken into tasks into a timeline that respects
oven, burner, microwave and chef availability, and reports the conflicts and
bottlenecks that stand between the kitchen and the ready-by time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yml", "config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides config)")

	root.AddCommand(newPlanCmd(opts), newKitchenCmd(opts), newReplayCmd(opts))
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads the config, applies flag overrides and installs the logger
// in the command's context.
func (o *rootOptions) setup(cmd *cobra.Command) (config.Config, context.Context, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return cfg, ctxlog.WithLogger(cmd.Context(), logger), nil
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/atomtree/pkg/config"
	"github.com/matzehuels/atomtree/pkg/errors"
)

// configCommand creates the config command, which prints or checks view
// configurations.
func (c *CLI) configCommand() *cobra.Command {
	var check string

	cmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "Print a preset configuration as TOML, or check a configuration file",
		Long: `Print a preset configuration as TOML, or check a configuration file.

Presets: ` + strings.Join(config.Presets(), ", ") + `. The printed file is a
starting point for --config; fields left out keep the preset's values.`,
		Example: `  atomtree config components > view.toml
  atomtree config --check view.toml`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: config.Presets(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check != "" {
				cfg, err := config.Load(check)
				if err != nil {
					return err
				}
				newReport(cmd.OutOrStdout()).success("%s is valid (preset %s, %s layout)", check, cfg.Preset, cfg.Layout)
				return nil
			}

			cfg := config.Default()
			if len(args) == 1 {
				var ok bool
				if cfg, ok = config.Preset(args[0]); !ok {
					return errors.New(errors.ErrCodeInvalidConfig, "unknown preset %q (want one of %s)", args[0], strings.Join(config.Presets(), ", "))
				}
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&check, "check", "", "validate a TOML configuration file")

	return cmd
}

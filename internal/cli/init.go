package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultYAML = `# IntervalCoach config
# Priority: CLI flag > environment (INTERVALCOACH_*) > this file > default.

log_level:  "info"   # debug | info | warn | error
log_format: "text"   # text | json

# Workout
exercises: 9         # work intervals per set
sets:      2
work_time: 30        # seconds
work_rest: 10        # seconds between exercises
set_rest:  20        # seconds between sets

tick_interval: "1s"  # Go duration; shorter values speed up a dry run
halfway_cue:   true
notifications: true  # tray app only

# metrics_addr: ":9095"           # uncomment to expose Prometheus metrics
# schedule:     "30 7 * * 1-5"    # cron expression used by "intervalcoach run"
`

func newInitCmd(defaultYAML string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write default configuration for IntervalCoach.

If --config is given the file is written to that path.
Otherwise it is written to ~/.intervalcoach/intervalcoach.yaml.
Fails if the file already exists unless --force is passed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest := cfgFile
			if dest == "" {
				dir, err := homeConfigDir()
				if err != nil {
					return err
				}
				dest = filepath.Join(dir, "intervalcoach.yaml")
			}
			if err := writeConfig(dest, defaultYAML, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")
	return cmd
}

func writeConfig(dest, content string, force bool) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	if !force {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", dest, err)
		}
	}

	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

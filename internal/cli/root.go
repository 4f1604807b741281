package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"intervalcoach/internal/config"
	"intervalcoach/internal/core/eventhub"
	"intervalcoach/internal/telemetry"
)

const appName = "IntervalCoach"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "intervalcoach",
	Short: "Interval workout coach with spoken-style cues",
	Long: `IntervalCoach runs timed workouts: a preparation countdown, then sets of
work and rest intervals, announcing each phase change.

Without a subcommand it starts the system tray app.`,
	SilenceUsage: true,
	RunE:         runTray,
}

// Execute is the entry point called from cmd/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file path (default: ~/.intervalcoach/intervalcoach.yaml)")
	flags.String("log-level", "info", "log level: debug | info | warn | error")
	flags.String("log-format", "text", "log format: text | json")
	flags.String("metrics-addr", "", "Prometheus metrics address (e.g. :9095); empty disables")
	flags.Duration("tick-interval", time.Second, "length of one tick")

	bindFlag("log_level", flags, "log-level")
	bindFlag("log_format", flags, "log-format")
	bindFlag("metrics_addr", flags, "metrics-addr")
	bindFlag("tick_interval", flags, "tick-interval")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newInitCmd(defaultYAML))
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("intervalcoach")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := homeConfigDir(); err != nil {
			fmt.Fprintln(os.Stderr, "skipping home config:", err)
		} else {
			viper.AddConfigPath(dir)
		}
	}

	viper.SetEnvPrefix("intervalcoach")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "error reading config file:", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintln(os.Stderr, "config:", viper.ConfigFileUsed())
	}
}

// homeConfigDir returns ~/.intervalcoach.
func homeConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".intervalcoach"), nil
}

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func buildLogger(out io.Writer, level, format string) *slog.Logger {
	lvl, ok := logLevelMap[strings.ToLower(level)]
	if !ok {
		lvl = slog.LevelInfo
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(out, &tint.Options{Level: lvl}))
}

// listenerDiagnostics logs and counts failed timer listeners.
func listenerDiagnostics(logger *slog.Logger, metrics *telemetry.Metrics) eventhub.Diagnostics {
	return func(kind string, err error) {
		logger.Error("timer listener failed", slog.String("kind", kind), slog.String("error", err.Error()))
		metrics.RecordListenerFailure(kind, err)
	}
}

func bindFlag(viperKey string, fs *pflag.FlagSet, flagName string) {
	if err := viper.BindPFlag(viperKey, fs.Lookup(flagName)); err != nil {
		panic(fmt.Sprintf("bindFlag %q → %q: %v", flagName, viperKey, err))
	}
}

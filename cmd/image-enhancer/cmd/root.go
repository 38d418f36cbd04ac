package cmd

import (
	"fmt"
	"os"

	"image-enhancer/internal/config"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
)

// session is the state shared by one command invocation.
type session struct {
	v        *viper.Viper
	cfgFile  string
	cfg      *config.Config
	log      logger.Logger
	registry *prometheus.Registry
	recorder metrics.Recorder
}

func (s *session) load(cmd *cobra.Command) error {
	loader := config.NewLoader(s.v)

	cfg, err := loader.Load(s.cfgFile)
	if err != nil {
		return err
	}
	s.cfg = cfg

	s.log = logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))
	s.registry = prometheus.NewRegistry()
	s.recorder = metrics.NewPrometheusRecorder(s.registry)

	if used := loader.ConfigFileUsed(); used != "" {
		s.log.Debug("CLI", "configuration loaded", map[string]interface{}{
			"file":    used,
			"command": cmd.Name(),
		})
	}

	return nil
}

func (s *session) flushMetrics() error {
	if s.cfg == nil || s.cfg.Metrics.File == "" {
		return nil
	}

	if err := metrics.WriteTextfile(s.cfg.Metrics.File, s.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	s.log.Debug("CLI", "metrics written", map[string]interface{}{
		"file": s.cfg.Metrics.File,
	})
	return nil
}

// NewRootCommand builds the command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	s := &session{v: viper.New()}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "image-enhancer",
		Short: "Image enhancement with OpenCV filters",
		Long: `Denoise and enhance images with OpenCV.

Operations:
- median, mean, gaussian and bilateral smoothing
- erosion, dilation and binary noise removal by opening or closing
- CLAHE contrast enhancement and histogram equalization

Examples:
  image-enhancer process photo.jpg --op median --output out.png
  image-enhancer process scan.png --op binary-noise --op equalize --show
  image-enhancer gui`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.flushMetrics()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.cfgFile, "config", "", "config file (default is search in ., $HOME/.config/image-enhancer, /etc/image-enhancer)")
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.String("metrics-file", defaults.Metrics.File, "write Prometheus metrics in text format to this file on exit")

	_ = s.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = s.v.BindPFlag("metrics.file", flags.Lookup("metrics-file"))

	rootCmd.AddCommand(
		newProcessCommand(s),
		newOpsCommand(),
		newGUICommand(s),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

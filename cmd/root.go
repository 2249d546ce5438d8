package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/zillow-eda/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// Logger for status lines; replaced in initRuntime.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "zillow",
	Short: "Exploratory helpers for the single-family property dataset",
	Long: `zillow acquires the single-family property table (from a local csv cache or the
remote database), cleans it, splits it into train/validate/test sets and produces
plot data for exploring variable relationships.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initRuntime)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.zillow/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func initRuntime() {
	logger = newLogger(debug)
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config load it again and fail there
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
}

func newLogger(debug bool) *zap.Logger {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	zc.DisableCaller = !debug
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: logger setup failed: %v\n", err)
		return zap.NewNop()
	}
	return l
}

// requireConfig returns the loaded configuration, loading it if initialization failed earlier.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

package cmd

import (
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"
	"go.uber.org/zap"

	config "github.com/aria-assistant/cli/config"
	logger "github.com/aria-assistant/cli/internal/logger"
)

var (
	cfg      *config.Config
	cfgViper *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "aria",
	Short: "Desktop assistant command core",
	Long: `Aria interprets free-text commands, classifies them against a fixed
grammar of intents, and dispatches each to an action handler that performs
the side effect: launch or close applications, manipulate files, query
system state, open URLs.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use 'aria run' for the interactive assistant or --help to see available commands.")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	explicit, _ := rootCmd.PersistentFlags().GetString("config")
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")

	configPath := config.GetConfigPath(explicit)
	loaded, v, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", configPath, err)
		os.Exit(1)
	}
	cfg = loaded
	cfgViper = v

	logger.Init(verbose || cfg.Logging.Verbose)

	zapLogger, err := newZapLogger(verbose || cfg.Logging.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(zapLogger)
}

func newZapLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zapCfg.Build()
}

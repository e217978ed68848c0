package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/LeJamon/goHederad/internal/config"
)

var (
	// Global flags
	configFile string
	debug      bool

	// loaded by the root PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hederad",
	Short: "goHederad - crypto transfer engine",
	Long: `goHederad applies Hedera crypto transfers against a ledger state: hbar,
fungible token and NFT movements with alias auto-creation, automatic token
association and custom fee assessment.`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
}

// loadConfig reads the config file and HEDERAD_ environment variables.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if debug {
		loaded.Log.Level = logrus.DebugLevel.String()
	}
	cfg = loaded
	return nil
}

// newLogger builds the process logger from the [log] section.
func newLogger(c config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.Level = level
	logger.Out = os.Stderr
	if c.Format == "json" {
		logger.Formatter = &logrus.JSONFormatter{}
	} else {
		logger.Formatter = new(prefixed.TextFormatter)
	}
	return logger, nil
}

package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngx-extract/internal/config"
	"github.com/mvp-joe/ngx-extract/internal/console"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ngx-extract",
	Short: "Split Angular component files into lintable virtual documents",
	Long: `ngx-extract splits TypeScript component files into virtual documents so
inline templates can be linted with template rules, and collapses the
resulting per-document diagnostics back onto the original file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.ngx-extract/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the explicit config file when --config is set, otherwise
// the project config from the working directory.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if verbose {
		log.Printf("Using locator %q with %d suffixes", cfg.Processor.Locator, len(cfg.Processor.Suffixes))
	}
	return cfg, nil
}

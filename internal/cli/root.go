package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/ghsextract/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// version is printed by the version command
const version = "ghsextract v0.1.0"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ghsextract [path...]",
	Short: "ghsextract - H, P and EUH statement codes from safety data sheets",
	Long: `ghsextract finds GHS hazard (H), precautionary (P) and EU supplemental
hazard (EUH) statement codes in safety data sheets and prints them as one
tab-separated line: H-statements, P-statements, EUH-statements.

Combined statements such as "P302 + P352" are kept together. Every
statement appears once, in the order it is first found.

Without arguments, ghsextract reads pasted text or a document path from
the terminal. With arguments, each is read as a PDF, HTML or text document.

ghsextract reports codes only. It does not interpret them.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runExtract,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number for ghsextract.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.ghsextract/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	addExtractFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".ghsextract"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match GHSEXTRACT_*, e.g. GHSEXTRACT_INGEST_MAX_PAGES
	viper.SetEnvPrefix("GHSEXTRACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env vars reach Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("extract.unicode_normalize", cfg.Extract.UnicodeNormalize)
	viper.SetDefault("ingest.max_pages", cfg.Ingest.MaxPages)
	viper.SetDefault("ingest.max_bytes", cfg.Ingest.MaxBytes)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("rate_limiting.reads_per_second", cfg.RateLimiting.ReadsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)
	viper.SetDefault("output.format", cfg.Output.Format)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
}

// loadConfig returns the effective configuration: defaults overlaid with the
// config file, environment and bound flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger; quiet unless verbose
func newLogger(cfg *model.Config) *slog.Logger {
	if !cfg.Output.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

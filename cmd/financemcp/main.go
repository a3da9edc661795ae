// financemcp serves finance lookups (sector screener, income statements,
// company news and sector trends) as MCP tools over stdio, and runs the
// same lookups from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/seenimoa/financemcp/internal/config"
	"github.com/seenimoa/financemcp/internal/tools"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Loaded once in PersistentPreRunE.
var (
	cfg    *config.Config
	logger *log.Logger
	svc    *tools.Service
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "financemcp",
	Short: "Finance data tools: sector companies, financials, news and trends",
	Long: `financemcp looks up companies by sector and their income statements on
Financial Modeling Prep, searches company news on NewsAPI, and aggregates
sector-wide revenue and net income trends. Run "financemcp serve" to expose
the lookups as MCP tools over stdio, or "financemcp serve-http" for a JSON
API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
		}

		logger = cfg.Logging.NewLogger(os.Stderr)
		svc = newService(cfg, logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveHTTPCmd)
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(financialsCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config needed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("financemcp %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and API key status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  financemcp status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    FMP:           %s\n", cfg.FMP.BaseURL)
		fmt.Printf("    NewsAPI:       %s\n", cfg.NewsAPI.BaseURL)
		fmt.Printf("    Timeout:       %s\n", cfg.Fetch.Timeout)
		fmt.Printf("    Concurrency:   %d\n", cfg.Fetch.Concurrency)
		fmt.Printf("    HTTP API:      %s\n", cfg.API.Addr())
		fmt.Printf("    Logging:       %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		fmt.Println()

		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/IvanShishkin/datahound/internal/config"
	"github.com/IvanShishkin/datahound/internal/core"
	"github.com/IvanShishkin/datahound/internal/platform"
	"github.com/IvanShishkin/datahound/internal/report"
	"github.com/IvanShishkin/datahound/pkg/models"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = "0.1.0"
	logger     *zap.Logger
	verbose    bool
	configFile string
)

var (
	colorTitle = color.New(color.FgHiYellow, color.Bold)
	colorGray  = color.New(color.FgHiBlack)
	colorWarn  = color.New(color.FgYellow)
	colorError = color.New(color.FgRed)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datahound",
		Short: "datahound - inventory data files across your system",
		Long: `Recursively scan directories for CSV, Excel, text and JSON files and
write a timestamped inventory report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./datahound.yaml or ~/.config/datahound/datahound.yaml)")

	// Add commands
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(defaultsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger builds the development logger in verbose mode and an
// error-only JSON logger otherwise
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		// Silent logger - only errors
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		dirs        []string
		exclude     []string
		outputDir   string
		threads     int
		rootWorkers int
		formats     []string
		noEmail     bool
	)

	cmd := &cobra.Command{
		Use:   "scan [dir...]",
		Short: "Scan directories for data files",
		Long: `Walk the given directories (or the platform defaults) in parallel, record
every CSV, Excel, text and JSON file with its size and timestamps, and write
scan_results_<timestamp>.json plus summary_<timestamp>.txt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			defer logger.Sync()

			provider := platform.Current(logger)

			// Load configuration
			cfg, err := config.LoadConfig(provider, configFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			if roots := append(append([]string{}, args...), dirs...); len(roots) > 0 {
				cfg.Roots = roots
			}
			if cmd.Flags().Changed("exclude") {
				cfg.Exclude = exclude
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if threads > 0 {
				cfg.Workers = threads
			}
			if rootWorkers > 0 {
				cfg.RootWorkers = rootWorkers
			}
			if len(formats) > 0 {
				cfg.Formats = formats
			}
			if noEmail {
				cfg.ScanEmail = false
			}

			if err := cfg.Validate(); err != nil {
				colorError.Fprintf(os.Stderr, "\n  ✗ Invalid parameter: %s\n\n", err)
				return err
			}

			reporter, err := report.NewGenerator(cfg, logger)
			if err != nil {
				return err
			}

			printBanner(cfg)

			scanner := core.NewScanner(cfg, logger, provider)
			if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				scanner.SetProgressCallback(printProgress)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			// Run scan
			data, err := scanner.Scan(ctx)
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			// Persist reports; the console summary is shown even if this fails
			out, err := reporter.Generate(data)
			report.PrintConsole(os.Stdout, data, out)
			if err != nil {
				logger.Error("Failed to write report", zap.Error(err))
				return err
			}

			return nil
		},
	}

	// Flags
	cmd.Flags().StringSliceVarP(&dirs, "dirs", "d", nil, "Directories to scan (comma-separated, repeatable)")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Path fragments to exclude (comma-separated, repeatable)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for scan results (default: ~/file_scanner_results)")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "File workers per root (default: CPU cores * 2)")
	cmd.Flags().IntVar(&rootWorkers, "root-workers", 0, "Roots scanned concurrently (default: CPU cores)")
	cmd.Flags().StringSliceVarP(&formats, "report", "r", nil, "Extra report formats: yaml, md (json and txt are always written)")
	cmd.Flags().BoolVar(&noEmail, "no-email", false, "Skip mail profile lookup")

	return cmd
}

// printBanner prints the startup banner
func printBanner(cfg *config.Config) {
	fmt.Println()
	colorTitle.Printf("datahound v%s\n", version)
	fmt.Println()
	colorGray.Print("  Scanning:  ")
	fmt.Println(strings.Join(cfg.Roots, ", "))
	colorGray.Print("  Workers:   ")
	fmt.Printf("%d per root, %d roots at once\n", cfg.GetWorkers(), cfg.GetRootWorkers())
	fmt.Println()
}

// printProgress renders per-root progress lines
func printProgress(phase string, current, total int, message string) {
	switch phase {
	case core.PhaseRootStarted:
		colorGray.Printf("  → %s\n", message)
	case core.PhaseRootSkipped:
		colorWarn.Printf("  ⊘ %s (not found, skipped)\n", message)
	case core.PhaseRootDone:
		colorGray.Printf("  ✓ %s ", message)
		fmt.Printf("(%d/%d)\n", current, total)
	case core.PhaseEmail:
		colorGray.Printf("  ✉ %s\n", message)
	}
}

// categoriesCmd lists the recognized categories and their extensions
func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List recognized file categories",
		Long:  `Display every data category and the file extensions mapped to it.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("CATEGORIES (matched case-insensitively by extension):")
			for _, c := range models.Categories() {
				exts := models.Extensions(c)
				for i, ext := range exts {
					exts[i] = "." + ext
				}
				fmt.Printf("  %-8s %s\n", c, strings.Join(exts, ", "))
			}
			fmt.Println("")
			fmt.Println("Mail profiles (Windows only) are listed by name under 'email'.")
		},
	}
}

// defaultsCmd prints the platform default roots and exclusions
func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Show platform default roots and exclusions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			provider := platform.Current(logger)
			fmt.Printf("PLATFORM: %s\n\n", provider.Name())

			fmt.Println("DEFAULT ROOTS:")
			for _, root := range provider.DefaultRoots() {
				fmt.Printf("  %s\n", root)
			}
			fmt.Println("")

			fmt.Println("DEFAULT EXCLUSIONS (substring match on the full path):")
			for _, fragment := range provider.DefaultExclusions() {
				fmt.Printf("  %s\n", fragment)
			}
			return nil
		},
	}
}

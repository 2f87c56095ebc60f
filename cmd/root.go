package cmd

import (
	"path/filepath"

	"codescope/pkg/config"
	"codescope/pkg/jsparse"
	"codescope/pkg/logging"
	"codescope/pkg/scan"
	"codescope/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputFilename  string
	compressOutput  bool
	modifiedAfter   string
	threads         int
	ignorePatterns  []string
	useChecksum     bool
	gatherJSSummary string
	configFile      string
	projectPath     string
	projectName     string
	verbose         bool
)

// baseLogger is the logger handed in by main before any command runs.
var baseLogger *zap.Logger

// RootCmd is the base command: it runs the scan pipeline and, when
// requested, the JS/TS structural summary pass.
var RootCmd = &cobra.Command{
	Use:   "codescope",
	Short: "CodeScope gathers code context into a single artifact",
	Long: `CodeScope scans a source tree, filters files by extension, size, age,
pattern, and content checksum, and concatenates the surviving file contents
into one text artifact for downstream consumption, such as feeding a
language model. It can also produce a structural JSON summary of JS/TS
files (imports, functions, classes, prototype methods).`,
	RunE:          runScan,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute wires the provided logger into the command tree and runs it.
func Execute(logger *zap.Logger) error {
	baseLogger = logger
	return RootCmd.Execute()
}

func init() {
	flags := RootCmd.Flags()
	flags.StringVar(&outputFilename, "output", "", "Name of the output file (default from config)")
	flags.BoolVar(&compressOutput, "compress", false, "Compress the output into .gz")
	flags.StringVar(&modifiedAfter, "modified-after", "", "Include only files modified after this date (YYYY-MM-DD)")
	flags.IntVar(&threads, "threads", 0, "Number of workers for file reading")
	flags.StringArrayVar(&ignorePatterns, "ignore-pattern", nil, "Regex pattern to ignore (can be specified multiple times)")
	flags.BoolVar(&useChecksum, "use-checksum", false, "Use checksums to skip unchanged files")
	flags.StringVar(&gatherJSSummary, "gather-js-summary", "", "Output file path for the JS/TS summary JSON")
	flags.StringVar(&configFile, "config-file", "", "JSON config file to override defaults")
	flags.StringVar(&projectPath, "project-path", "", "Path to the project folder to scan")
	flags.StringVar(&projectName, "project-name", "", "Short project name used to namespace output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := baseLogger
	if verbose {
		if devLogger, err := logging.Setup(true, "CodeScope", version.Get().Version); err == nil {
			logger = devLogger
			defer logger.Sync()
		} else {
			logger.Warn("Falling back to default logger", zap.Error(err))
		}
	}

	cfg := config.Load(configFile, logger)

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputFilename = outputFilename
	}
	if flags.Changed("compress") {
		cfg.CompressOutput = compressOutput
	}
	if flags.Changed("modified-after") {
		cfg.ModifiedAfter = modifiedAfter
	}
	if flags.Changed("threads") {
		cfg.Threads = threads
	}
	if flags.Changed("ignore-pattern") {
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, ignorePatterns...)
	}
	if flags.Changed("use-checksum") {
		cfg.UseChecksumCache = useChecksum
	}
	if flags.Changed("gather-js-summary") {
		cfg.GatherJSSummary = gatherJSSummary
	}
	if flags.Changed("project-path") {
		cfg.ProjectPath = projectPath
	}
	if flags.Changed("project-name") {
		cfg.ProjectName = projectName
	}

	if err := scan.Run(cfg, logger); err != nil {
		return err
	}

	// The structural summary is an independent second pass over the same
	// tree; it runs only when a summary path was requested.
	if cfg.GatherJSSummary != "" {
		root, err := cfg.Root()
		if err != nil {
			return err
		}
		folder, _ := cfg.OutputTarget()
		summaryPath := filepath.Join(folder, cfg.GatherJSSummary)
		if err := jsparse.WriteSummary(root, summaryPath, logger); err != nil {
			return err
		}
	}

	return nil
}

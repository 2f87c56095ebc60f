// Package config builds the immutable run configuration for CodeScope.
// A configuration is assembled once per run from defaults, an optional JSON
// config file, and command-line overrides, then passed by value to every
// component.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DateLayout is the format accepted for the modified-after cutoff.
const DateLayout = "2006-01-02"

// Config holds every option recognized by a CodeScope run.
type Config struct {
	// File scanning
	FileExtensions    []string `mapstructure:"file_extensions"`
	IgnoreDirectories []string `mapstructure:"ignore_directories"`
	IgnoreExtensions  []string `mapstructure:"ignore_extensions"`
	IgnorePatterns    []string `mapstructure:"ignore_patterns"`
	ModifiedAfter     string   `mapstructure:"modified_after"`
	MaxFileSize       int64    `mapstructure:"max_file_size"`
	Threads           int      `mapstructure:"threads"`

	// Output / behavior
	OutputFilename   string `mapstructure:"output_filename"`
	OutputFolder     string `mapstructure:"output_folder"`
	CompressOutput   bool   `mapstructure:"compress_output"`
	ChecksumCache    string `mapstructure:"checksum_cache"`
	UseChecksumCache bool   `mapstructure:"use_checksum_cache"`
	GatherJSSummary  string `mapstructure:"gather_js_summary"`

	// Project path & name. ProjectPath overrides the scan root; ProjectName
	// namespaces the output location.
	ProjectPath string `mapstructure:"project_path"`
	ProjectName string `mapstructure:"project_name"`
}

// Default returns the baseline configuration every run starts from.
func Default() Config {
	return Config{
		FileExtensions: []string{
			".py", ".html", ".js", ".ts", ".jsx", ".tsx",
			".tf", ".css", ".yaml", ".json", ".toml", ".md",
		},
		IgnoreDirectories: []string{
			"__pycache__", ".git", "venv", "env", "node_modules",
		},
		IgnoreExtensions: []string{
			".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".hcl", ".txt",
		},
		IgnorePatterns: []string{
			`.*secret.*`,
			`.*\.log`,
		},
		ModifiedAfter:    "2024-01-01",
		MaxFileSize:      2 * 1024 * 1024,
		Threads:          8,
		OutputFilename:   "context.txt",
		OutputFolder:     "output",
		ChecksumCache:    ".file_checksums.json",
		UseChecksumCache: false,
		GatherJSSummary:  "",
		ProjectPath:      "",
		ProjectName:      "",
	}
}

// Load returns the run configuration: defaults merged with the optional JSON
// config file. List-valued options from the file append to the defaults,
// scalar options replace them. A missing or malformed config file is a
// warning, never fatal; the defaults stand for whatever could not be read.
func Load(configFile string, logger *zap.Logger) Config {
	cfg := Default()
	if configFile == "" {
		return cfg
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Could not read config file, keeping defaults",
			zap.String("file", configFile),
			zap.Error(err))
		return cfg
	}

	logger.Info("Loaded config file", zap.String("file", configFile))
	return mergeViper(cfg, v)
}

// mergeViper applies the values present in the config file on top of base.
func mergeViper(base Config, v *viper.Viper) Config {
	merged := base

	if v.IsSet("file_extensions") {
		merged.FileExtensions = append(merged.FileExtensions, v.GetStringSlice("file_extensions")...)
	}
	if v.IsSet("ignore_directories") {
		merged.IgnoreDirectories = append(merged.IgnoreDirectories, v.GetStringSlice("ignore_directories")...)
	}
	if v.IsSet("ignore_extensions") {
		merged.IgnoreExtensions = append(merged.IgnoreExtensions, v.GetStringSlice("ignore_extensions")...)
	}
	if v.IsSet("ignore_patterns") {
		merged.IgnorePatterns = append(merged.IgnorePatterns, v.GetStringSlice("ignore_patterns")...)
	}
	if v.IsSet("modified_after") {
		merged.ModifiedAfter = v.GetString("modified_after")
	}
	if v.IsSet("max_file_size") {
		merged.MaxFileSize = v.GetInt64("max_file_size")
	}
	if v.IsSet("threads") {
		merged.Threads = v.GetInt("threads")
	}
	if v.IsSet("output_filename") {
		merged.OutputFilename = v.GetString("output_filename")
	}
	if v.IsSet("output_folder") {
		merged.OutputFolder = v.GetString("output_folder")
	}
	if v.IsSet("compress_output") {
		merged.CompressOutput = v.GetBool("compress_output")
	}
	if v.IsSet("checksum_cache") {
		merged.ChecksumCache = v.GetString("checksum_cache")
	}
	if v.IsSet("use_checksum_cache") {
		merged.UseChecksumCache = v.GetBool("use_checksum_cache")
	}
	if v.IsSet("gather_js_summary") {
		merged.GatherJSSummary = v.GetString("gather_js_summary")
	}
	if v.IsSet("project_path") {
		merged.ProjectPath = v.GetString("project_path")
	}
	if v.IsSet("project_name") {
		merged.ProjectName = v.GetString("project_name")
	}

	return merged
}

// Cutoff parses the modified-after date. A malformed date falls back to the
// default cutoff with a warning.
func (c Config) Cutoff(logger *zap.Logger) time.Time {
	t, err := time.Parse(DateLayout, c.ModifiedAfter)
	if err != nil {
		logger.Warn("Invalid modified_after date, using default",
			zap.String("modifiedAfter", c.ModifiedAfter),
			zap.Error(err))
		t, _ = time.Parse(DateLayout, Default().ModifiedAfter)
	}
	return t
}

// Root returns the absolute scan root: project_path when set, otherwise the
// current directory.
func (c Config) Root() (string, error) {
	base := c.ProjectPath
	if base == "" {
		base = "."
	}
	root, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve scan root %s: %w", base, err)
	}
	return root, nil
}

// OutputTarget resolves the output folder and filename. When a project name
// is set, a still-default output filename becomes context_<name>.txt and the
// folder gains a per-project subdirectory.
func (c Config) OutputTarget() (folder, filename string) {
	filename = c.OutputFilename
	if c.ProjectName != "" && filename == Default().OutputFilename {
		filename = fmt.Sprintf("context_%s.txt", c.ProjectName)
	}

	folder = c.OutputFolder
	if folder == "" {
		folder = Default().OutputFolder
	}
	if c.ProjectName != "" {
		folder = filepath.Join(folder, c.ProjectName)
	}
	return folder, filename
}

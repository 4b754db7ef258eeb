package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/service"
)

// scopeFlags select the files to analyze and the configuration file.
// They are shared by analyze, check and watch.
type scopeFlags struct {
	configPath  string
	include     []string
	exclude     []string
	recursive   bool
	noGitignore bool
	workers     int
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "",
		"Path to config file (default: discovered from the first path upward)")
	cmd.Flags().StringSliceVar(&f.include, "include", nil,
		"Glob patterns of files to analyze (overrides config)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil,
		"Glob patterns of files to skip (overrides config)")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", true,
		"Descend into subdirectories")
	cmd.Flags().BoolVar(&f.noGitignore, "no-gitignore", false,
		"Analyze files ignored by .gitignore")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0,
		"Number of files analyzed in parallel (0 = number of CPUs)")
}

// loadRequest layers the configuration file, then override, then the
// boolean flags the user set explicitly. The result is validated.
func (f *scopeFlags) loadRequest(cmd *cobra.Command, args []string, override *domain.AnalyzeRequest) (*domain.AnalyzeRequest, error) {
	loader := service.NewConfigurationLoader()

	var base *domain.AnalyzeRequest
	if f.configPath != "" {
		loaded, err := loader.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		base = loaded
	} else {
		base = loader.LoadDefaultConfig(args[0])
		base.ConfigPath = loader.FindDefaultConfigFile(args[0])
	}

	override.Paths = args
	override.IncludePatterns = f.include
	override.ExcludePatterns = f.exclude
	override.MaxGoroutines = f.workers
	req := loader.MergeConfig(base, override)

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		req.Recursive = f.recursive
	}
	if flags.Changed("no-gitignore") {
		req.RespectGitignore = !f.noGitignore
	}

	if err := loader.ValidateConfig(req); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return req, nil
}

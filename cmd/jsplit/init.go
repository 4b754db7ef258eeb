package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jsplit/internal/config"
	"github.com/ludo-technologies/jsplit/internal/constants"
)

// initOptions holds what "jsplit init" writes and where
type initOptions struct {
	path        string
	force       bool
	minimal     bool
	interactive bool
	project     config.ProjectType
	strictness  config.Strictness
}

func initCmd() *cobra.Command {
	var project, strictness string
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a jsplit configuration file",
		Long: `Write a documented configuration file. Thresholds come from the
--strictness preset and file patterns from the --project preset.

Examples:
  jsplit init
  jsplit init --project react --strictness strict
  jsplit init --minimal --config tools/jsplit.yaml
  jsplit init -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.project = config.ProjectType(project)
			opts.strictness = config.Strictness(strictness)
			return runInit(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "config", "c", constants.ConfigFileName, "output path")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&opts.minimal, "minimal", false, "write only the essential options")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose presets interactively")
	cmd.Flags().StringVar(&project, "project", string(config.ProjectTypeGeneric), "project preset: generic, react, vue, node")
	cmd.Flags().StringVar(&strictness, "strictness", string(config.StrictnessStandard), "threshold preset: relaxed, standard, strict")

	return cmd
}

func runInit(out io.Writer, opts *initOptions) error {
	if opts.interactive {
		if err := askInitOptions(out, opts); err != nil {
			return err
		}
	}

	if _, ok := config.GetProjectPresets()[opts.project]; !ok {
		return fmt.Errorf("unknown project type: %s", opts.project)
	}
	if _, ok := config.GetStrictnessPresets()[opts.strictness]; !ok {
		return fmt.Errorf("unknown strictness: %s", opts.strictness)
	}

	if dir := filepath.Dir(opts.path); dir != "." {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}
	if _, err := os.Stat(opts.path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists, use --force to overwrite", opts.path)
	}

	content := config.GetFullConfigTemplate(opts.project, opts.strictness)
	if opts.minimal {
		content = config.GetMinimalConfigTemplate()
	}
	if err := os.WriteFile(opts.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	shown := opts.path
	if abs, err := filepath.Abs(opts.path); err == nil {
		shown = abs
	}
	fmt.Fprintf(out, "Created %s\n\nRun 'jsplit analyze .' to score your project.\n", shown)
	return nil
}

// choice is one entry of an interactive menu
type choice[T any] struct {
	Label string
	Hint  string
	Value T
}

func choose[T any](label string, items []choice[T]) (T, error) {
	sel := promptui.Select{
		Label: label,
		Items: items,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "> {{ .Label | cyan }} {{ .Hint | faint }}",
			Inactive: "  {{ .Label }} {{ .Hint | faint }}",
			Selected: "{{ .Label | green }}",
		},
	}
	idx, _, err := sel.Run()
	if err != nil {
		var zero T
		return zero, err
	}
	return items[idx].Value, nil
}

// askInitOptions fills opts from terminal menus
func askInitOptions(out io.Writer, opts *initOptions) error {
	fmt.Fprintln(out, "jsplit configuration")

	project, err := choose("Project type", []choice[config.ProjectType]{
		{"Generic JavaScript/TypeScript", "", config.ProjectTypeGeneric},
		{"React/Next.js", "skips .next and coverage", config.ProjectTypeReact},
		{"Vue/Nuxt", "skips .nuxt and coverage", config.ProjectTypeVue},
		{"Node.js backend", "skips test directories", config.ProjectTypeNodeBackend},
	})
	if err != nil {
		return fmt.Errorf("project selection cancelled: %w", err)
	}

	strictness, err := choose("Thresholds", []choice[config.Strictness]{
		{"Standard", "cognitive 15, extraction above 22", config.StrictnessStandard},
		{"Relaxed", "cognitive 25, fewer extraction hints", config.StrictnessRelaxed},
		{"Strict", "cognitive 10, for CI gates", config.StrictnessStrict},
	})
	if err != nil {
		return fmt.Errorf("strictness selection cancelled: %w", err)
	}

	path, err := (&promptui.Prompt{
		Label:   "Write to",
		Default: opts.path,
		Validate: func(s string) error {
			if s == "" {
				return errors.New("path is required")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return fmt.Errorf("output path input cancelled: %w", err)
	}

	opts.project, opts.strictness, opts.path = project, strictness, path
	return nil
}

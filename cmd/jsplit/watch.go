package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jsplit/app"
	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/service"
)

type watchOptions struct {
	scope    scopeFlags
	format   string
	details  bool
	debounce time.Duration
}

func watchCmd() *cobra.Command {
	o := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Re-analyze files whenever they change",
		Long: `Analyze the given paths, then keep watching them and print a fresh
report after every batch of changes. Unchanged files are served from an
in-memory cache. Stop with Ctrl+C.

Examples:
  jsplit watch src/
  jsplit watch --details --debounce 1s src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	o.scope.register(cmd)
	cmd.Flags().StringVarP(&o.format, "format", "f", "",
		"Output format: text, json, yaml, csv (default from config: text)")
	cmd.Flags().BoolVarP(&o.details, "details", "d", false,
		"Show the per-construct complexity breakdown")
	cmd.Flags().DurationVar(&o.debounce, "debounce", service.DefaultDebounce,
		"Quiet period before re-analyzing")

	return cmd
}

func (o *watchOptions) run(cmd *cobra.Command, args []string) error {
	req, err := o.scope.loadRequest(cmd, args, &domain.AnalyzeRequest{
		OutputFormat: domain.OutputFormat(o.format),
	})
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("details") {
		req.ShowDetails = o.details
	}
	if req.OutputFormat == domain.OutputFormatHTML {
		return domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}

	out := cmd.OutOrStdout()
	req.OutputWriter = out

	logger := newLogger()
	cache := service.NewResultCache(service.DefaultCacheCapacity)
	defer cache.Close()

	uc := app.NewAnalyzeUseCase(
		service.NewAnalyzeService(logger, service.NewProgressManager(false), cache),
		service.NewOutputFormatter(),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session := &watchSession{uc: uc, req: *req, out: out, logger: logger, cache: cache}
	session.analyze(ctx)

	fw, err := service.NewFileWatcher(logger, watchRoots(args), app.NewFileHelper().IsValidJSFile, o.debounce)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	fw.Start(ctx, func(files []string) {
		session.changed(ctx, files)
	})

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes (Ctrl+C to stop)...")
	<-ctx.Done()
	return fw.Stop()
}

// watchSession re-runs the analysis for a fixed request
type watchSession struct {
	uc     *app.AnalyzeUseCase
	req    domain.AnalyzeRequest
	out    io.Writer
	logger *slog.Logger
	cache  domain.ResultCache
}

func (s *watchSession) analyze(ctx context.Context) {
	if _, err := s.uc.Execute(ctx, s.req); err != nil && ctx.Err() == nil {
		s.logger.Error("analysis failed", "error", err)
	}
}

func (s *watchSession) changed(ctx context.Context, files []string) {
	for _, f := range files {
		s.cache.Invalidate(f)
	}
	s.logger.Info("change detected", "files", len(files))
	fmt.Fprintf(s.out, "\n--- %d file(s) changed at %s ---\n", len(files), time.Now().Format(time.TimeOnly))
	s.analyze(ctx)
}

// watchRoots returns the directories to watch for paths; a file is watched
// through its parent directory
func watchRoots(paths []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"union-generator/internal/analyze"
	"union-generator/internal/cache"
	"union-generator/internal/diagnostic"
	"union-generator/internal/extract"
	"union-generator/internal/gen"
	"union-generator/internal/pipeline"
)

// root returns the directory artifacts and the manifest are resolved
// against.
func (a *app) root() (string, error) {
	dir := a.cfg.Dir
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}

	return abs, nil
}

// pass loads the packages matching patterns, or the configured ones, and
// runs the pipeline over them.
func (a *app) pass(ctx context.Context, patterns []string) (*pipeline.Result, error) {
	if len(patterns) == 0 {
		patterns = a.cfg.Patterns
	}

	pkgs, err := analyze.Load(ctx, analyze.Options{
		Dir:      a.cfg.Dir,
		Patterns: patterns,
		BuildTag: a.cfg.BuildTag,
		Tests:    a.cfg.Tests,
		Logger:   a.log,
	})
	if err != nil {
		return nil, errors.WithHint(err, "generated files are excluded with -tags="+a.cfg.BuildTag+"; the rest must parse")
	}

	return pipeline.Run(ctx, pkgs, pipeline.Options{
		Workers: a.cfg.Workers,
		Env: extract.Env{
			OptionPath: a.cfg.OptionPackage,
			ResultPath: a.cfg.ResultPackage,
		},
		Renderer: a.gen,
		Cache:    a.cache,
		Logger:   a.log,
	})
}

// printDiagnostics writes one line per diagnostic to stdout.
func (a *app) printDiagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.Items {
		fmt.Fprintln(a.stdout, d.String())
	}
}

// generate runs one pass, writes its artifacts and updates the manifest.
// It returns the pass diagnostics.
func (a *app) generate(ctx context.Context, patterns []string) (diagnostic.Diagnostics, error) {
	res, err := a.pass(ctx, patterns)
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	diags := res.Diagnostics()
	a.printDiagnostics(diags)

	written, err := gen.WriteFiles(res.Artifacts())
	if err != nil {
		return diags, err
	}

	removed, err := a.updateManifest(res)
	if err != nil {
		return diags, err
	}

	a.log.Info("generation finished",
		zap.Int("unions", len(res.Outcomes)),
		zap.Int("written", len(written.Written)),
		zap.Int("unchanged", len(written.Unchanged)),
		zap.Int("removed", len(removed)),
		zap.Int("errors", len(diags.Errors())),
		zap.Int("warnings", len(diags.Warnings())))

	return diags, nil
}

// updateManifest records the artifacts of res and removes the files of
// unions that no longer produce them.
func (a *app) updateManifest(res *pipeline.Result) ([]string, error) {
	root, err := a.root()
	if err != nil {
		return nil, err
	}

	path := a.cfg.Manifest
	if path == "" {
		path = cache.DefaultManifest
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	m, err := cache.LoadManifest(path)
	if err != nil {
		return nil, err
	}

	var entries []cache.Entry

	for _, o := range res.Outcomes {
		for _, art := range o.Artifacts {
			entries = append(entries, cache.NewEntry(root, o.Package, art))
		}
	}

	stale := m.Apply(res.Packages, entries)

	removed, err := cache.Prune(root, stale)
	if err != nil {
		return removed, err
	}

	for _, p := range removed {
		a.log.Info("removed stale artifact", zap.String("path", p))
	}

	if len(m.Artifacts) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, errors.Wrapf(err, "failed to remove manifest %s", path)
		}

		return removed, nil
	}

	return removed, cache.WriteManifest(m, path)
}

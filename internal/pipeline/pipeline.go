// Package pipeline runs a generation pass over loaded packages.
//
// Every marked root is one unit of work: Inspect, Check, Extract and Render.
// Units are independent and run concurrently; outcomes are collected by
// declaration order, so a pass over unchanged input always yields the same
// diagnostics and artifacts in the same order.
package pipeline

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"union-generator/internal/analyze"
	"union-generator/internal/cache"
	"union-generator/internal/diagnostic"
	"union-generator/internal/extract"
	"union-generator/internal/gen"
	"union-generator/internal/model"
	"union-generator/internal/validate"
)

// Renderer renders a union model into artifacts. *gen.Generator implements it.
type Renderer interface {
	Render(u *model.Union) ([]gen.Artifact, error)
}

// Options configures Run.
type Options struct {
	// Workers bounds concurrent units. Zero means GOMAXPROCS.
	Workers  int
	Env      extract.Env
	Renderer Renderer
	// Cache may be nil.
	Cache  *cache.RenderCache
	Logger *zap.Logger
}

// Outcome is the result of one unit.
type Outcome struct {
	Package     string
	Report      *analyze.Report
	Diagnostics diagnostic.Diagnostics
	// Model is nil when the root was not accepted for generation.
	Model     *model.Union
	Artifacts []gen.Artifact
	Cached    bool
}

// Result is the result of a pass.
type Result struct {
	// Packages lists the import paths of every package scanned.
	Packages []string
	Outcomes []Outcome
}

// Diagnostics returns the diagnostics of every outcome, in declaration order.
func (r *Result) Diagnostics() diagnostic.Diagnostics {
	var all diagnostic.Diagnostics
	for _, o := range r.Outcomes {
		all.Merge(o.Diagnostics)
	}

	return all
}

// Artifacts returns the artifacts of every outcome, in declaration order.
func (r *Result) Artifacts() []gen.Artifact {
	var all []gen.Artifact
	for _, o := range r.Outcomes {
		all = append(all, o.Artifacts...)
	}

	return all
}

type unit struct {
	scanner *analyze.Scanner
	decl    analyze.Declaration
}

// Run scans pkgs and processes every marked root. Cancellation is observed
// between units; a unit that started always completes. A cancelled pass
// returns no result.
func Run(ctx context.Context, pkgs []*packages.Package, opts Options) (*Result, error) {
	if opts.Renderer == nil {
		opts.Renderer = gen.NewGenerator(gen.DefaultConfig())
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := &Result{}

	var units []unit

	for _, pkg := range pkgs {
		res.Packages = append(res.Packages, pkg.PkgPath)

		s := analyze.NewScanner(pkg)
		for _, d := range s.Scan() {
			units = append(units, unit{scanner: s, decl: d})
		}
	}

	opts.Logger.Debug("scanned packages",
		zap.Int("packages", len(pkgs)),
		zap.Int("unions", len(units)),
		zap.Int("workers", workers))

	res.Outcomes = make([]Outcome, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, u := range units {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res.Outcomes[i] = process(u, opts)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "generation pass interrupted")
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "generation pass interrupted")
	}

	return res, nil
}

func process(u unit, opts Options) Outcome {
	log := opts.Logger.With(zap.String("union", u.decl.ID.String()))

	report := u.scanner.Inspect(u.decl)
	out := Outcome{
		Package:     u.decl.ID.PkgPath,
		Report:      report,
		Diagnostics: validate.Check(report),
	}

	out.Model = extract.Extract(report, opts.Env)
	if out.Model == nil {
		log.Debug("union skipped", zap.Strings("codes", out.Diagnostics.Codes()))
		return out
	}

	if arts, ok := opts.Cache.Get(out.Model); ok {
		out.Artifacts, out.Cached = arts, true
		log.Debug("render cache hit")

		return out
	}

	arts, err := opts.Renderer.Render(out.Model)
	if err != nil {
		out.Diagnostics.Report(diagnostic.GenerationFailed, report.Location, report.Name, "", report.Name, err)
		log.Warn("generation failed", zap.Error(err))

		return out
	}

	opts.Cache.Add(out.Model, arts)
	out.Artifacts = arts

	log.Debug("union rendered", zap.Int("artifacts", len(arts)), zap.Int("cases", len(out.Model.Cases)))

	return out
}

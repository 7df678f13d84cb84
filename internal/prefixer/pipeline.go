package prefixer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Asset is a stylesheet travelling through a Pipeline. Filters replace
// Content in place; SourcePath only decides which filters apply.
type Asset struct {
	Content    string
	SourcePath string

	// Set by PrefixFilter.
	Report   Report
	Prefixed bool
}

// Ext returns the lower-cased extension of SourcePath without the dot.
func (a *Asset) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(a.SourcePath)), ".")
}

// SourceDir returns the directory holding SourcePath, or "" when the asset
// has no path.
func (a *Asset) SourceDir() string {
	if a.SourcePath == "" {
		return ""
	}
	return filepath.Dir(a.SourcePath)
}

// Filter is one step of a Pipeline. Load runs while the asset is read, Dump
// while it is written; a filter that only needs one hook leaves the other a
// no-op.
type Filter interface {
	Name() string
	Load(ctx context.Context, asset *Asset) error
	Dump(ctx context.Context, asset *Asset) error
}

// Pipeline runs every filter's Load hook in order, then every Dump hook.
type Pipeline struct {
	filters []Filter
	log     *zap.Logger
}

// NewPipeline creates a pipeline. log may be nil.
func NewPipeline(log *zap.Logger, filters ...Filter) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{filters: filters, log: log.Named("pipeline")}
}

// Filters returns the names of the configured filters in order.
func (p *Pipeline) Filters() []string {
	names := make([]string, len(p.filters))
	for i, f := range p.filters {
		names[i] = f.Name()
	}
	return names
}

// Run passes asset through the pipeline. It stops at the first failing filter.
func (p *Pipeline) Run(ctx context.Context, asset *Asset) error {
	for _, f := range p.filters {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.Load(ctx, asset); err != nil {
			return fmt.Errorf("%s load: %w", f.Name(), err)
		}
	}
	for _, f := range p.filters {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.Dump(ctx, asset); err != nil {
			return fmt.Errorf("%s dump: %w", f.Name(), err)
		}
	}
	p.log.Debug("Asset processed",
		zap.String("path", asset.SourcePath),
		zap.Bool("prefixed", asset.Prefixed),
		zap.Int("expanded", asset.Report.Expanded))
	return nil
}

// PrefixFilter expands vendor prefixes when the asset is dumped.
type PrefixFilter struct {
	Engine *Engine
}

// NewPrefixFilter wraps engine.
func NewPrefixFilter(engine *Engine) *PrefixFilter {
	return &PrefixFilter{Engine: engine}
}

func (f *PrefixFilter) Name() string { return "prefix" }

func (f *PrefixFilter) Load(context.Context, *Asset) error { return nil }

func (f *PrefixFilter) Dump(_ context.Context, asset *Asset) error {
	if !Supports(asset.SourcePath) {
		return nil
	}
	asset.Content, asset.Report = f.Engine.RewriteWithReport(asset.Content)
	asset.Prefixed = true
	return nil
}

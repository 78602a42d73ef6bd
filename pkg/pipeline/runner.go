package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/atomtree/pkg/cache"
	"github.com/matzehuels/atomtree/pkg/observability"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.InputPath())
	src, err := Load(opts)
	hooks.OnLoadComplete(ctx, opts.InputPath(), src.Snapshots(), time.Since(loadStart), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	result := &Result{Source: src}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Snapshots = src.Snapshots()

	r.Logger.Debug("loaded input",
		"path", src.Path,
		"snapshots", src.Snapshots(),
		"hash", src.Hash[:12],
		"duration", result.Stats.LoadTime)

	// Stage 2: Build and lay out
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.Config.Layout)
	root, index, err := BuildTree(src, opts)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Config.Layout, 0, time.Since(layoutStart), err)
		return nil, fmt.Errorf("build: %w", err)
	}
	res, sc := Layout(root, opts)
	result.Tree = root
	result.Snapshot = index
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(res.Nodes)
	result.Stats.LinkCount = len(res.Links)
	for _, n := range res.Nodes {
		result.Stats.Depth = max(result.Stats.Depth, n.Depth)
	}
	hooks.OnLayoutComplete(ctx, opts.Config.Layout, result.Stats.NodeCount, result.Stats.LayoutTime, nil)

	r.Logger.Info("computed layout",
		"input", opts.describe(),
		"snapshot", index,
		"root", root.Name,
		"nodes", result.Stats.NodeCount,
		"depth", result.Stats.Depth,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	result.SceneKey = r.Keyer.SceneKey(src.Hash, opts.SceneKeyOpts(index))
	artifacts, info, err := r.RenderWithCacheInfo(ctx, result.SceneKey, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", info.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders the scene identified by sceneKey, serving
// formats from the cache where possible, and reports the cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sceneKey string, sc *scene.Scene, opts Options) (map[string][]byte, CacheInfo, error) {
	var info CacheInfo
	if err := opts.ValidateForRender(); err != nil {
		return nil, info, err
	}
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(sceneKey, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				info.Hits++
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}
		missing = append(missing, format)
	}
	info.Misses = len(missing)
	info.RenderHit = len(missing) == 0
	if info.RenderHit {
		return artifacts, info, nil
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, missing)
	rendered, err := renderFormats(ctx, sc, opts, missing)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, info, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(sceneKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}
	return artifacts, info, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

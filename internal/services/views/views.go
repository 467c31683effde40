package views

import (
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/analytics"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// Set bundles every derived view of a filtered dataset. Each field is what
// one chart or card consumes.
type Set struct {
	Summary          models.Summary
	TokensByModel    models.Series
	CostByModel      models.Series
	TokensByWorkflow models.Series
	CostByWorkflow   models.Series
	TokensByTool     models.Series
	TokensOverTime   models.Series
	CrossTab         models.CrossTab
	WorkflowOverTime models.MultiSeries
	Filtered         models.Dataset
	Workflows        []string
}

// Builder derives views for the current dataset through the cache.
type Builder struct {
	cache      *Cache
	loc        *time.Location
	dataset    models.Dataset
	generation uint64
}

// NewBuilder creates a builder for one dataset generation.
func NewBuilder(cache *Cache, generation uint64, dataset models.Dataset, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{cache: cache, generation: generation, dataset: dataset, loc: loc}
}

// Generation returns the dataset generation the builder serves.
func (b *Builder) Generation() uint64 {
	return b.generation
}

// Filtered returns the dataset after the filter pipeline.
func (b *Builder) Filtered(f models.Filter) models.Dataset {
	return Get(b.cache, b.generation, "filtered", f, func() models.Dataset {
		return analytics.Filter(b.dataset, f, b.loc)
	})
}

// Workflows returns the selectable workflow names of the whole dataset.
func (b *Builder) Workflows() []string {
	return Get(b.cache, b.generation, "workflows", models.NewFilter(), func() []string {
		return analytics.Workflows(b.dataset)
	})
}

// Views computes or fetches every view for f.
func (b *Builder) Views(f models.Filter) Set {
	return Get(b.cache, b.generation, "set", f, func() Set {
		d := b.Filtered(f)
		return Set{
			Summary:          analytics.Summarize(d, b.loc),
			TokensByModel:    analytics.TokensByModel(d),
			CostByModel:      analytics.CostByModel(d),
			TokensByWorkflow: analytics.TokensByWorkflow(d),
			CostByWorkflow:   analytics.CostByWorkflow(d),
			TokensByTool:     analytics.TokensByTool(d),
			TokensOverTime:   analytics.TokensOverTime(d, b.loc),
			CrossTab:         analytics.WorkflowModelCrossTab(d, analytics.TopWorkflows),
			WorkflowOverTime: analytics.WorkflowTokensOverTime(d, analytics.TopWorkflows, b.loc),
			Filtered:         d,
			Workflows:        b.Workflows(),
		}
	})
}

// Table returns one page of the filtered rows. Pages are cheap to derive
// from the filtered set, so only the filter step is cached.
func (b *Builder) Table(f models.Filter, q models.TableQuery) models.TablePage {
	return analytics.View(b.Filtered(f), q, b.loc)
}

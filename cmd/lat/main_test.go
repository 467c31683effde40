package main

import (
	"bytes"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/llm-analytics-tui/internal/config"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseFlags([]string{
		"--report", "--from=2024-01-01", "--to=2024-01-31",
		"--workflow=etl", "--search=gpt", "--page=3", "--page-size=25",
	}, &out)
	require.NoError(t, err)

	assert.True(t, opts.report)
	assert.Equal(t, "2024-01-01", opts.from)
	assert.Equal(t, "2024-01-31", opts.to)
	assert.Equal(t, "etl", opts.workflow)
	assert.Equal(t, "gpt", opts.search)
	assert.Equal(t, 3, opts.page)
	assert.Equal(t, 25, opts.pageSize)
	assert.Empty(t, out.String())
}

func TestParseFlags_Version(t *testing.T) {
	for _, arg := range []string{"-v", "--version"} {
		opts, err := parseFlags([]string{arg}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.True(t, opts.version, arg)
	}
}

func TestParseFlags_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "lat --report")
	assert.Contains(t, out.String(), "page-size")
}

func TestParseFlags_Errors(t *testing.T) {
	_, err := parseFlags([]string{"--page=abc"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = parseFlags([]string{"extra"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestOptions_Filter(t *testing.T) {
	cfg := &config.Config{Location: time.UTC}

	f, err := (&options{}).filter(cfg)
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	f, err = (&options{from: "2024-01-01", workflow: "etl"}).filter(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.Start)
	assert.False(t, f.HasEnd())
	assert.Equal(t, "etl", f.Workflow)

	f, err = (&options{to: "2024-01-31"}).filter(cfg)
	require.NoError(t, err)
	assert.False(t, f.HasStart())
	assert.True(t, f.HasEnd())

	_, err = (&options{from: "2024-02-01", to: "2024-01-01"}).filter(cfg)
	assert.Error(t, err)

	_, err = (&options{from: "01/02/2024"}).filter(cfg)
	assert.Error(t, err)
}

func TestOptions_Query(t *testing.T) {
	cfg := &config.Config{PageSize: 50}

	q := (&options{page: 0, search: "etl"}).query(cfg)
	assert.Equal(t, 50, q.PageSize)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "etl", q.Search)
	assert.Equal(t, models.SortNewest, q.Order)

	q = (&options{page: 4, pageSize: 25}).query(cfg)
	assert.Equal(t, 25, q.PageSize)
	assert.Equal(t, 4, q.Page)
}

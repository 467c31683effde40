// Package main is the entry point for the LLM Analytics TUI. It runs the
// interactive dashboard on a terminal and prints a plain report otherwise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/j-veylop/llm-analytics-tui/internal/app"
	"github.com/j-veylop/llm-analytics-tui/internal/config"
	"github.com/j-veylop/llm-analytics-tui/internal/logger"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
	"github.com/j-veylop/llm-analytics-tui/internal/report"
	"github.com/j-veylop/llm-analytics-tui/internal/services"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/styles"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/tabs/data"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/tabs/info"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/tabs/workflows"
	"github.com/j-veylop/llm-analytics-tui/internal/ui/theme"
	"github.com/j-veylop/llm-analytics-tui/internal/version"
)

// options holds the parsed command line.
type options struct {
	from     string
	to       string
	workflow string
	search   string
	page     int
	pageSize int
	report   bool
	version  bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if opts.version {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses args. Usage and parse errors are written to output.
func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("lat", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.BoolVar(&opts.report, "report", false, "print a report instead of starting the dashboard")
	fs.StringVar(&opts.from, "from", "", "first day to include (YYYY-MM-DD)")
	fs.StringVar(&opts.to, "to", "", "last day to include (YYYY-MM-DD)")
	fs.StringVar(&opts.workflow, "workflow", "", "only include this workflow")
	fs.StringVar(&opts.search, "search", "", "search term for the row table")
	fs.IntVar(&opts.page, "page", 1, "row table page to print")
	fs.IntVar(&opts.pageSize, "page-size", 0, "rows per page: 10, 25 or 50 (default PAGE_SIZE)")
	fs.BoolVar(&opts.version, "version", false, "show version information")
	fs.BoolVar(&opts.version, "v", false, "show version information (shorthand)")
	fs.Usage = func() { printUsage(output, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(output, err)
		fs.Usage()
		return nil, err
	}
	return opts, nil
}

// filter builds the dataset filter from the date and workflow flags.
func (o *options) filter(cfg *config.Config) (models.Filter, error) {
	f := models.NewFilter().WithWorkflow(o.workflow)
	if o.from == "" && o.to == "" {
		return f, nil
	}
	start, end, err := models.ParseDateRange(o.from+".."+o.to, cfg.Location)
	if err != nil {
		return f, err
	}
	return f.WithDates(start, end), nil
}

// query builds the row table query from the search and paging flags.
func (o *options) query(cfg *config.Config) models.TableQuery {
	size := o.pageSize
	if size <= 0 {
		size = cfg.PageSize
	}
	q := models.NewTableQuery(size).WithSearch(o.search)
	q.Page = max(o.page, 1)
	return q
}

// run contains the main application logic, separated for cleaner error handling.
func run(opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := logger.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	if opts.report || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runReport(opts, cfg, os.Stdout)
	}
	return runTUI(cfg)
}

// runReport loads the source once and prints every view to w. A failed load
// still prints the (empty) report before returning the error.
func runReport(opts *options, cfg *config.Config, w io.Writer) error {
	f, err := opts.filter(cfg)
	if err != nil {
		return err
	}

	mgr, err := services.NewManager(cfg, services.Oneshot(), services.WithNotifier(quietNotifier))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := mgr.Close(); closeErr != nil {
			logger.Warn("error closing services", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := mgr.Load(ctx, 1)

	r := report.New(mgr.Builder(res.Seq, res.Rows), f, opts.query(cfg))
	r.Source = mgr.SourceName()
	r.LoadErr = res.Err
	r.Width = report.TerminalWidth()
	if err := r.Write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if res.Err != nil {
		return fmt.Errorf("load failed: %w", res.Err)
	}
	return nil
}

// quietNotifier drops desktop notifications in report mode.
func quietNotifier(string, string) error { return nil }

// runTUI starts the interactive dashboard and blocks until it exits.
func runTUI(cfg *config.Config) error {
	// A broken theme file falls back to the defaults.
	t, err := theme.Load(cfg.ThemePath)
	if err != nil {
		logger.Warn("failed to load theme", "error", err)
	}
	styles.Apply(t)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.GetState()
	state.SetPageSize(cfg.PageSize)
	model.SetTabs([]app.Tab{
		overview.New(state),
		workflows.New(state),
		data.New(state),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, `LLM Analytics TUI - token and cost dashboard for LLM usage logs

Usage:
  lat [flags]
  lat --report [--from=YYYY-MM-DD] [--to=YYYY-MM-DD] [--workflow=NAME]
               [--search=TERM] [--page=N] [--page-size=N]

The report is printed automatically when stdout is not a terminal.

Flags:
`)
	fs.PrintDefaults()
	fmt.Fprint(w, `
Keyboard Shortcuts:
  1-4, Tab/Shift+Tab  Switch tabs (Overview, Workflows, Data, Info)
  w / W               Next / previous workflow
  t                   Cycle time range
  d                   Edit date range
  x                   Clear filters
  r                   Reload the source
  ?                   Toggle help
  q, Ctrl+C           Quit

Environment Variables:
  SOURCE_FILE             Local JSON export to read (watched for changes)
  SOURCE_URL              URL returning the JSON export
  SHEET_ID, SHEET_GID     Google Sheet to read through the gviz endpoint
  TIMEZONE                Zone used to bucket days (default: local)
  REFRESH_INTERVAL        Auto reload interval, 0 disables (default: 5m)
  COST_ALERT_THRESHOLD    Daily cost that triggers a desktop alert
  PAGE_SIZE               Default rows per page
  DATABASE_PATH           SQLite load log path
  THEME_PATH              TOML theme file
  LOG_PATH, LOG_LEVEL     Log file and level

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/llm-analytics-tui/.env
  - ~/.llm-analytics/.env
`)
}

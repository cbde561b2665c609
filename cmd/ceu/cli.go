package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/config"
	"github.com/tasanda/ceu/crawl"
	"github.com/tasanda/ceu/process"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config    *config.Loader
	Providers *ceu.ProviderRegistry

	RawPages ceu.RawPageService
	Courses  ceu.CourseService

	Crawler   *crawl.Crawler
	Runner    *process.Runner
	Processor ceu.Processor

	Fetcher   ceu.Fetcher
	Analyzer  ceu.PageAnalyzer
	Previewer ceu.ContentPreviewer
}

// NER backends selectable with --ner.
const (
	nerFallback = "fallback"
	nerProse    = "prose"
	nerGemini   = "gemini"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string `name:"db" env:"CEU_DB" help:"SQLite database path (default ~/.ceu/ceu.db)"`
	ConfigDir   string `name:"config-dir" env:"CEU_CONFIG_DIR" default:"config" help:"Directory holding providers/*.yaml"`
	ArchiveDir  string `name:"archive-dir" env:"CEU_ARCHIVE_DIR" help:"Also keep compressed raw HTML under this directory"`
	NER         string `name:"ner" env:"CEU_NER" enum:"fallback,prose,gemini" default:"fallback" help:"Entity recognition backend (fallback, prose, gemini)"`
	GeminiKey   string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"API key for --ner=gemini"`
	GeminiModel string `name:"gemini-model" default:"${gemini_model}" help:"Gemini model for --ner=gemini"`
	LogLevel    string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Log level (debug, info, warn, error)"`
	LogFormat   string `name:"log-format" enum:"text,json" default:"text" help:"Log format (text, json)"`

	Crawl     CrawlCmd     `cmd:"" help:"Crawl a provider and store its pages"`
	Process   ProcessCmd   `cmd:"" help:"Extract courses from pending pages"`
	Stats     StatsCmd     `cmd:"" help:"Show page counts by status, provider and type"`
	Failed    FailedCmd    `cmd:"" help:"List pages whose extraction failed"`
	Reprocess ReprocessCmd `cmd:"" help:"Run extraction again for one page"`
	Extract   ExtractCmd   `cmd:"" help:"Extract course data from one HTML file or URL"`
	Explore   ExploreCmd   `cmd:"" help:"Analyze a page to help configure a new provider"`
	Providers ProvidersCmd `cmd:"" help:"List configured providers"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Provider string `arg:"" help:"Provider name"`
	MaxPages int    `short:"m" default:"1000" help:"Maximum pages to fetch"`
	DryRun   bool   `short:"n" help:"Fetch and classify pages without storing them"`
	Verbose  bool   `short:"v" help:"Print every fetched page"`
}

// ProcessCmd is the "process" subcommand.
type ProcessCmd struct {
	Limit       int    `short:"l" default:"100" help:"Maximum pages to process"`
	Provider    string `short:"p" help:"Only process pages from this provider"`
	Concurrency int    `short:"c" default:"4" help:"Pages processed at once"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// FailedCmd is the "failed" subcommand.
type FailedCmd struct {
	Limit int `short:"l" default:"20" help:"Maximum pages to list"`
}

// ReprocessCmd is the "reprocess" subcommand.
type ReprocessCmd struct {
	ID string `arg:"" help:"Raw page ID"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	HTMLFile string `name:"html-file" type:"existingfile" help:"Read HTML from this file"`
	URL      string `name:"url" help:"Fetch this URL, or name the page read with --html-file"`
	Provider string `short:"p" help:"Provider name recorded in the result"`
}

// ExploreCmd is the "explore" subcommand.
type ExploreCmd struct {
	URL     string `arg:"" help:"Page URL"`
	Content bool   `help:"Print the page's main content as Markdown"`
	Suggest string `placeholder:"NAME" help:"Print a starter provider config named NAME"`
}

// ProvidersCmd is the "providers" subcommand.
type ProvidersCmd struct {
	Validate bool `help:"Check every provider configuration"`
}

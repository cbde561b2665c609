package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/config"
	"github.com/tasanda/ceu/crawl"
	"github.com/tasanda/ceu/fs"
	"github.com/tasanda/ceu/gemini"
	"github.com/tasanda/ceu/goquery"
	ceuhttp "github.com/tasanda/ceu/http"
	"github.com/tasanda/ceu/nlp"
	"github.com/tasanda/ceu/pattern"
	"github.com/tasanda/ceu/preview"
	"github.com/tasanda/ceu/process"
	"github.com/tasanda/ceu/prose"
	ceuslog "github.com/tasanda/ceu/slog"
	"github.com/tasanda/ceu/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor CEU_DB is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ceu"),
		kong.Description("Crawl continuing-education providers and extract structured course data."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"gemini_model": gemini.DefaultModel},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ceu --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}
	deps.Logger = logger
	deps.Config = config.NewLoader(cli.ConfigDir)

	switch cmd {
	case "crawl", "process", "stats", "failed", "reprocess":
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.RawPages = sqlite.NewRawPageService(m.DB)
		deps.Courses = sqlite.NewCourseService(m.DB)
	}

	switch cmd {
	case "crawl", "providers":
		registry, err := deps.Config.Registry()
		if err != nil {
			logger.Warn("some provider configs failed to load", "dir", cli.ConfigDir, "err", err)
		}
		deps.Providers = registry
	}

	switch cmd {
	case "crawl", "extract", "explore":
		fetcher := ceuslog.NewLoggingFetcher(ceuhttp.NewFetcher(), logger)
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	switch cmd {
	case "process", "reprocess", "extract":
		processor, err := newProcessor(ctx, cli, logger, stderr)
		if err != nil {
			return err
		}
		deps.Processor = processor
		deps.Runner = &process.Runner{
			Processor: processor,
			RawPages:  deps.RawPages,
			Courses:   deps.Courses,
		}
	}

	switch cmd {
	case "crawl":
		deps.Crawler = &crawl.Crawler{
			Fetcher:  deps.Fetcher,
			Links:    goquery.NewLinkExtractor(),
			RawPages: deps.RawPages,
			Robots:   ceuhttp.NewRobotsPolicy(nil, ceuhttp.DefaultUserAgent),
			Sitemaps: ceuslog.NewLoggingSitemapService(ceuhttp.NewSitemapService(nil), logger),
		}
		if cli.ArchiveDir != "" {
			deps.Crawler.Archive = fs.NewArchive(cli.ArchiveDir)
		}
	case "explore":
		deps.Analyzer = goquery.NewAnalyzer()
		deps.Previewer = preview.NewPreviewer()
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if path == "" {
		path = m.DBPath
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CEU_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newProcessor builds the extraction pipeline. The entity model is chosen
// and loaded here, once per process.
func newProcessor(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (ceu.Processor, error) {
	tagger, err := newTagger(ctx, cli, logger, stderr)
	if err != nil {
		return nil, err
	}
	ceuslog.LogRecognitionMode(logger, tagger, cli.NER)

	processor := process.NewProcessor(
		goquery.NewNormalizer(),
		nlp.New(tagger),
		pattern.NewExtractor(),
	)
	return ceuslog.NewLoggingProcessor(processor, logger), nil
}

// newTagger returns the entity model selected with --ner, or nil for
// regex-only fallback recognition.
func newTagger(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (ceu.EntityTagger, error) {
	switch cli.NER {
	case nerProse:
		tagger, err := prose.NewTagger()
		if err != nil {
			return nil, fmt.Errorf("failed to load prose model: %w", err)
		}
		return ceuslog.NewLoggingTagger(tagger, nerProse, logger), nil

	case nerGemini:
		if cli.GeminiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set, required for --ner=gemini")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return ceuslog.NewLoggingTagger(gemini.NewTagger(client, cli.GeminiModel), nerGemini, logger), nil
	}
	return nil, nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ceu.db"
	}
	dir := filepath.Join(home, ".ceu")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ceu.db")
}

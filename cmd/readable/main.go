package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/goquery"
	"github.com/fwojciec/readable/htmltomarkdown"
	readablehttp "github.com/fwojciec/readable/http"
	"github.com/fwojciec/readable/opengraph"
	"github.com/fwojciec/readable/readability"
	"github.com/fwojciec/readable/reader"
	"github.com/fwojciec/readable/rod"
	readableslog "github.com/fwojciec/readable/slog"
	"github.com/fwojciec/readable/static"
	"github.com/fwojciec/readable/trafilatura"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout is how long in-flight requests may run after an
// interrupt.
const ShutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Listening is called with the server's base URL once it accepts
	// connections. Optional.
	Listening func(url string)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run parses args, starts the server, and serves until ctx is cancelled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readable"),
		kong.Description("Serve a distraction-free reading view of any article URL."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars(vars),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogFormat, cli.LogLevel)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cli)
	if err != nil {
		if cli.Render {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
		}
		return err
	}
	fetcher = readableslog.NewLoggingFetcher(fetcher, logger)
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("closing fetcher", "err", err)
		}
	}()

	svc := &reader.Service{
		Fetcher:   fetcher,
		Extractor: readableslog.NewLoggingExtractor(newExtractor(cli.Extractor), logger),
		Sanitizer: goquery.NewSanitizer(),
		Converter: htmltomarkdown.NewConverter(),
	}

	router := readablehttp.NewRouter(svc, static.Assets())
	server := readablehttp.NewServer(router, logger, cli.Timeout+ShutdownTimeout)
	server.Addr = cli.Addr
	if err := server.Open(); err != nil {
		return err
	}

	logger.Info("listening",
		"url", server.URL(),
		"extractor", cli.Extractor,
		"render", cli.Render,
	)
	if m.Listening != nil {
		m.Listening(server.URL())
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Serve)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newFetcher(cli *CLI) (readable.Fetcher, error) {
	if cli.Render {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithManagerOptions(rod.WithBrowserUserAgent(cli.UserAgent)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return readablehttp.NewFetcher(
		readablehttp.WithTimeout(cli.Timeout),
		readablehttp.WithUserAgent(cli.UserAgent),
	), nil
}

// newExtractor returns the named extraction engine with OpenGraph metadata
// as a fallback for title and site name.
func newExtractor(name string) readable.Extractor {
	var engine readable.Extractor
	switch name {
	case "trafilatura":
		engine = trafilatura.NewExtractor()
	default:
		engine = readability.NewExtractor()
	}
	return opengraph.NewExtractor(engine)
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

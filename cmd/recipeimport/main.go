// Command recipeimport serves the recipe import endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/marijep/recipeimport"
	"github.com/marijep/recipeimport/anthropic"
	"github.com/marijep/recipeimport/gemini"
	recipehttp "github.com/marijep/recipeimport/http"
	"github.com/marijep/recipeimport/importer"
	"github.com/marijep/recipeimport/openai"
	recipeprom "github.com/marijep/recipeimport/prometheus"
	recipeslog "github.com/marijep/recipeimport/slog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !m.Serving() {
		return
	}

	<-ctx.Done()

	if err := m.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	HTTPServer    *recipehttp.Server
	MetricsServer *http.Server

	metricsLn net.Listener
	logger    *slog.Logger
	logCloser io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run parses the arguments, wires dependencies and opens the servers.
// It returns once they are listening; call Close to shut them down.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipeimport"),
		kong.Description("Serve a CORS-enabled endpoint that turns recipe web pages into structured JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	extractor, err := newExtractor(ctx, cli)
	if err != nil {
		return err
	}

	m.logger, m.logCloser = newLogger(cli, stderr)

	var imp recipeimport.Importer = &importer.Importer{
		Fetcher: recipeslog.NewLoggingFetcher(
			recipehttp.NewFetcher(recipehttp.WithTimeout(cli.FetchTimeout)),
			m.logger,
		),
		Extractor: recipeslog.NewLoggingExtractor(extractor, m.logger),
		Strict:    cli.Strict,
	}
	imp = recipeslog.NewLoggingImporter(imp, m.logger)

	if cli.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		imp = recipeprom.NewImporter(imp, reg)
		if err := m.openMetrics(cli.MetricsAddr, reg); err != nil {
			_ = m.logCloser.Close()
			return fmt.Errorf("metrics server: %w", err)
		}
	}

	m.HTTPServer = recipehttp.NewServer()
	m.HTTPServer.Addr = cli.Addr
	m.HTTPServer.AllowedOrigin = cli.AllowedOrigin
	m.HTTPServer.Importer = imp
	m.HTTPServer.Logger = m.logger
	if err := m.HTTPServer.Open(); err != nil {
		m.HTTPServer = nil
		_ = m.Close()
		return fmt.Errorf("http server: %w", err)
	}

	m.logger.Info("listening",
		"url", m.HTTPServer.URL(),
		"provider", cli.Provider,
		"allowed_origin", cli.AllowedOrigin,
		"strict", cli.Strict,
	)
	return nil
}

// Serving reports whether Run opened the servers.
func (m *Main) Serving() bool {
	return m.HTTPServer != nil
}

// MetricsURL returns the base URL of the metrics server, if running.
func (m *Main) MetricsURL() string {
	if m.metricsLn == nil {
		return ""
	}
	return "http://" + m.metricsLn.Addr().String()
}

// Close gracefully stops the servers and flushes the log file.
func (m *Main) Close() error {
	var errs []error
	if m.HTTPServer != nil {
		errs = append(errs, m.HTTPServer.Close())
	}
	if m.MetricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recipehttp.ShutdownTimeout)
		errs = append(errs, m.MetricsServer.Shutdown(ctx))
		cancel()
	}
	if m.logger != nil {
		m.logger.Info("shutdown complete")
	}
	if m.logCloser != nil {
		errs = append(errs, m.logCloser.Close())
	}
	return errors.Join(errs...)
}

func (m *Main) openMetrics(addr string, g prometheus.Gatherer) (err error) {
	if m.metricsLn, err = net.Listen("tcp", addr); err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", recipeprom.Handler(g))
	m.MetricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go m.MetricsServer.Serve(m.metricsLn)
	return nil
}

// newExtractor builds the extraction backend selected on the command line.
// A missing API key is a startup error.
func newExtractor(ctx context.Context, cli *CLI) (recipeimport.Extractor, error) {
	config := recipeimport.ExtractorConfig{
		Model:     cli.Model,
		MaxTokens: cli.MaxTokens,
	}

	switch cli.Provider {
	case "gemini":
		if cli.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.NewExtractor(client, config, gemini.WithTimeout(cli.ExtractTimeout)), nil

	case "openai":
		if cli.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		client := openai.NewClient(cli.OpenAIAPIKey, cli.OpenAIBaseURL)
		return openai.NewExtractor(client, config, openai.WithTimeout(cli.ExtractTimeout)), nil

	default:
		if cli.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		var opts []option.RequestOption
		if cli.AnthropicBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cli.AnthropicBaseURL))
		}
		client := anthropic.NewClient(cli.AnthropicAPIKey, opts...)
		return anthropic.NewExtractor(client, config, anthropic.WithTimeout(cli.ExtractTimeout)), nil
	}
}

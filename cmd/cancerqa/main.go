// Package main is the cancerqa CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/hyperjump/cancerqa/internal/cli"
	"github.com/hyperjump/cancerqa/internal/config"
	"github.com/hyperjump/cancerqa/internal/corpus"
	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/server"
	"github.com/hyperjump/cancerqa/internal/session"
	"github.com/hyperjump/cancerqa/internal/storage"
	"github.com/hyperjump/cancerqa/internal/tui"
	"github.com/hyperjump/cancerqa/internal/watcher"
	"github.com/hyperjump/cancerqa/pkg/utils"
)

var version = "dev"

const defaultServerURL = "http://localhost:8000"

// loadConfig loads config from path, then applies environment overrides and validates.
// A missing file at the default path yields the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == config.DefaultPath {
		cfg, err = config.LoadOrDefault(path)
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "chat":
		runChat()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "init":
		runInit()
	case "version", "--version", "-v":
		fmt.Printf("cancerqa version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (matches, reloads, requests)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", *configPath),
		zap.Strings("corpus", cfg.Corpus.Paths),
		zap.Float64("threshold", cfg.Matching.Threshold),
		zap.Bool("debug", debugMode),
	)

	if undo, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf)); err != nil {
		logger.Warn("failed to set GOMAXPROCS", zap.Error(err))
	} else {
		defer undo()
	}

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := components.Store
	if err := store.Reload(ctx); err != nil {
		// Serve anyway; /ready reports 503 until a reload succeeds.
		logger.Error("initial corpus load failed", zap.Error(err))
	}

	if cfg.Corpus.WatchOrDefault() {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		w, err := watcher.NewWatcher(cfg.Corpus.Paths, func(path string) {
			logger.Info("corpus source changed", zap.String("path", path))
			_ = store.Reload(ctx)
		}, watchOpts...)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := w.Start(ctx); err != nil {
			logger.Warn("corpus watch disabled", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	srv := server.NewServer(components.Resolver, store, &cfg.Server, cfg.Matching.Threshold, logger,
		server.WithHistorySize(cfg.Session.HistorySize))
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

// printAskUsage prints ask subcommand usage.
func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: cancerqa ask [flags] <question>\n\n")
	fmt.Fprintf(fs.Output(), "The question is all remaining arguments joined by spaces. English and Bengali are detected automatically.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  cancerqa ask What are the early signs of breast cancer?
  cancerqa ask "স্তন ক্যান্সারের প্রাথমিক লক্ষণগুলি কী?"
  cancerqa ask --server "" --output json "How HPV transmitted?"   # direct, no server
`)
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the question
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// newAsker returns an askFunc that calls serverURL, or answers in-process when
// serverURL is empty. The returned cleanup must be called when done.
func newAsker(configPath, serverURL string, debug bool) (askFunc, *config.Config, func(), error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		return func(ctx context.Context, q string) (models.MatchResult, error) {
			return askViaHTTP(ctx, serverURL, q)
		}, cfg, func() {}, nil
	}
	logger := zap.NewNop()
	if debug || cfg.Debug {
		if logger, err = utils.NewLogger(true); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := components.Store.Reload(context.Background()); err != nil {
		return nil, nil, nil, describeLoadError(err)
	}
	return components.Resolver.Resolve, cfg, func() { _ = logger.Sync() }, nil
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	fs.Usage = func() { printAskUsage(fs) }
	configPath := fs.String("config", config.DefaultPath, "config file path (for direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = answer directly from the corpus)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging in direct mode")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	question := buildQuestion(fs.Args())
	if question == "" {
		fs.Usage()
		os.Exit(1)
	}

	ask, _, cleanup, err := newAsker(*configPath, *serverURL, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	res, err := ask(context.Background(), question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteAnswer(os.Stdout, question, res, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = answer directly from the corpus)")
	historySize := fs.Int("history", 0, "turns shown by :history (default from config)")
	debug := fs.Bool("debug", false, "enable debug logging in direct mode")
	plain := fs.Bool("plain", false, "line-based prompt instead of the full-screen interface")
	_ = fs.Parse(os.Args[2:])

	ask, cfg, cleanup, err := newAsker(*configPath, *serverURL, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	show := cfg.Session.HistorySize
	if *historySize > 0 {
		show = *historySize
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	hist := session.NewHistory(0)
	if *plain {
		if err := chatLoop(ctx, os.Stdin, os.Stdout, ask, hist, show); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if _, err := tea.NewProgram(tui.New(ctx, tui.AskFunc(ask), hist, show), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
		os.Exit(1)
	}
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file path")
	dbPath := fs.String("db", "", "target SQLite database (default from config)")
	sheet := fs.String("sheet", "", "worksheet to read from .xlsx sources (default: first sheet)")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	sources := fs.Args()
	if len(sources) == 0 {
		sources = cfg.Corpus.Paths
	}
	for i, src := range sources {
		if abs, err := filepath.Abs(src); err == nil {
			sources[i] = abs
		}
	}
	target := cfg.Storage.DatabasePath
	if *dbPath != "" {
		target = *dbPath
	}
	if *sheet == "" {
		*sheet = cfg.Corpus.Sheet
	}

	n, err := importCorpus(context.Background(), sources, target, *sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", describeLoadError(err))
		os.Exit(1)
	}
	fmt.Printf("Imported %d entries from %s into %s\n", n, strings.Join(sources, ", "), target)
}

// importCorpus reads sources into a table and replaces the contents of the database at target.
func importCorpus(ctx context.Context, sources []string, target, sheet string) (int, error) {
	if !storage.IsDatabase(target) {
		return 0, fmt.Errorf("target %s must end in .db, .sqlite or .sqlite3", target)
	}
	loader := corpus.NewLoader(nil, corpus.WithSheet(sheet))
	entries, err := loader.LoadEntries(ctx, sources...)
	if err != nil {
		return 0, err
	}
	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("create database directory: %w", err)
		}
	}
	store, err := storage.NewSQLiteStorage(target)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.ReplaceEntries(ctx, strings.Join(sources, ","), entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file to create")
	force := fs.Bool("force", false, "overwrite an existing file")
	_ = fs.Parse(os.Args[2:])

	if err := initConfig(*configPath, *force); err != nil {
		fmt.Fprintf(os.Stderr, "Init failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", *configPath)
}

// initConfig writes the built-in defaults to path, refusing to replace an existing file unless force is set.
func initConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return config.Save(path, &cfg)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file path (for direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = load the corpus directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var status models.StatusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		components, err := initializeComponents(cfg, zap.NewNop())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		status = localStatus(context.Background(), components.Store, cfg)
	}
	if err := cli.WriteStatus(os.Stdout, status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// localStatus loads the corpus once and reports it the way the server would.
func localStatus(ctx context.Context, store *corpus.Store, cfg *config.Config) models.StatusResponse {
	status := models.StatusResponse{Threshold: cfg.Matching.Threshold, Sources: cfg.Corpus.Paths}
	if err := store.Reload(ctx); err != nil {
		status.LastError = describeLoadError(err).Error()
	}
	if c := store.Current(); c != nil {
		status.Ready = true
		status.Entries = c.Len()
		status.Sources = c.Sources()
		status.LoadedAt = c.LoadedAt()
	}
	if n, err := storage.SourceBytes(status.Sources...); err == nil {
		status.SourceBytes = n
	}
	if rec, err := storage.DescribeImport(ctx, status.Sources...); err == nil {
		status.Import = rec
	}
	return status
}

// describeLoadError adds a hint to corpus load errors.
func describeLoadError(err error) error {
	switch {
	case errors.Is(err, corpus.ErrSourceNotFound):
		return fmt.Errorf("%w (set corpus.paths in config.yaml or CANCERQA_CORPUS)", err)
	case errors.Is(err, corpus.ErrMalformedSource):
		return fmt.Errorf("%w (expected columns Queries, Queries_Bengali, Answers, Ans_Bengali)", err)
	}
	return err
}

func askViaHTTP(ctx context.Context, serverURL, question string) (models.MatchResult, error) {
	var res models.MatchResult
	body, err := json.Marshal(models.AskRequest{Question: question})
	if err != nil {
		return res, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(serverURL, "/")+"/api/v1/ask", bytes.NewReader(body))
	if err != nil {
		return res, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return res, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return res, serverError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("decode response: %w", err)
	}
	return res, nil
}

func statusViaHTTP(serverURL string) (*models.StatusResponse, error) {
	resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}
	var s models.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func serverError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	var e models.ErrorResponse
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
}

func printUsage() {
	fmt.Println(`cancerqa - Bilingual (English/Bengali) women's cancer awareness Q&A

Usage:
  cancerqa server [flags]             Start the HTTP server
  cancerqa ask [flags] <question>     Answer one question
  cancerqa chat [flags]               Interactive chat session
  cancerqa import [flags] [source...] Import spreadsheet/CSV sources into SQLite
  cancerqa status [flags]             Show corpus status
  cancerqa init [--config path]       Write a default config file
  cancerqa version                    Show version
  cancerqa help                       Show this help

Server Flags:
  --config string    Config file path (default: ./config.yaml)
  --debug            Enable debug logging

Ask Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8000). Use --server "" to answer without a server.
  --output string    Output format: text or json (default: text)

Chat Flags:
  --config string    Config file path
  --server string    Server URL (default: empty, answer directly)
  --history int      Turns shown (default: session.history_size)
  --plain            Line-based prompt with :history, :clear, :quit

Import Flags:
  --config string    Config file path
  --db string        Target SQLite database (default: storage.database_path)
  --sheet string     Worksheet name for .xlsx sources

Init Flags:
  --config string    File to create (default: ./config.yaml)
  --force            Overwrite an existing file

Status Flags:
  --server string    Server URL (default: http://localhost:8000). Use --server "" to load the corpus directly.
  --output string    Output format: text or json (default: text)

Environment:
  PORT, CANCERQA_HOST, CANCERQA_CORPUS, CANCERQA_THRESHOLD, CANCERQA_DEBUG (also read from .env)

Examples:
  cancerqa server
  cancerqa ask "What are the early signs of breast cancer?"
  cancerqa ask --output json "কীভাবে এইচপিভি সংক্রমণিত?"
  cancerqa chat
  cancerqa import --db ./cancerqa.db queries_bengali.xlsx ans_bengali.xlsx
  cancerqa status --output json`)
}

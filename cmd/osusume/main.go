// Package main is the Osusume CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/authorindex"
	"github.com/hyperjump/osusume/internal/catalog"
	"github.com/hyperjump/osusume/internal/cli"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/embedding"
	"github.com/hyperjump/osusume/internal/engine"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/rating"
	"github.com/hyperjump/osusume/internal/server"
	"github.com/hyperjump/osusume/internal/storage"
	"github.com/hyperjump/osusume/internal/watcher"
	"github.com/hyperjump/osusume/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/osusume/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "osusume server" from the project dir uses the
// project's config (including debug).
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "query":
		runQuery()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("osusume version %s\n", version)
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
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (queries, catalog reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
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
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(components.Engine, components.Storage, cfg, logger)

	var watchSvc *watcher.Watcher
	if cfg.Watch.Enabled {
		artifacts := []string{
			cfg.Storage.BooksCSVPath,
			cfg.Storage.ReadListCSVPath,
			cfg.Storage.RatingModelPath,
		}
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc, err = watcher.NewWatcher(artifacts, func(path string) {
			logger.Info("catalog artifact changed, reloading", zap.String("path", path))
			eng, idx, reloadErr := buildEngine(context.Background(), cfg, components.Storage, components.Embedder, logger, true)
			if reloadErr != nil {
				logger.Warn("catalog reload failed, keeping previous engine", zap.Error(reloadErr))
				return
			}
			components.SwapIndex(idx)
			srv.SwapEngine(eng)
			logger.Info("catalog reloaded", zap.Int("books", eng.CatalogSize()))
		}, watchOpts...)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		watchCtx, watchCancel := context.WithCancel(ctx)
		defer watchCancel()
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	if idx := components.Index(); cfg.Storage.AuthorIndexPath != "" && idx != nil {
		if err := idx.Save(cfg.Storage.AuthorIndexPath); err != nil {
			logger.Warn("author index save failed",
				zap.String("path", cfg.Storage.AuthorIndexPath), zap.Error(err))
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

// buildQueryText joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildQueryText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// queryArgsReorder moves any flags (and their values) that appear after the
// query text to the front of the slice so that flag.Parse() sees them. Go's
// flag package stops at the first non-flag argument, so
// "osusume query -user 3 wizard school -k 5" would otherwise leave -k unparsed.
func queryArgsReorder(args []string) []string {
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

func printQueryUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: osusume query [flags] [query text]\n\n")
	fmt.Fprintf(fs.Output(), "Query text is all remaining arguments joined by spaces; it may be empty,\nin which case ranking uses predicted ratings and boosts alone.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  osusume query -user 3 wizard school
  osusume query -user 3 "i really like george orwell's work"
  osusume query -user 3 -boost 2.5 -k 5 dystopia
  osusume query -user 3                       # no text, rating-driven ranking
  osusume query -user 3 -output json dune     # structured JSON for other apps
`)
}

func runQuery() {
	queryArgs := queryArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the catalog directly when server is not running)")
	userID := fs.Int("user", 0, "user id (required)")
	boost := fs.Float64("boost", 0, "read-list boost factor (> 1; default from config)")
	k := fs.Int("k", 0, "number of recommendations (default from config)")
	save := fs.Bool("save", false, "persist the ranked result set")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printQueryUsage(fs) }
	_ = fs.Parse(queryArgs)

	if *userID < 1 {
		fmt.Fprintln(os.Stderr, "-user is required and must be >= 1")
		printQueryUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	req := &models.QueryRequest{
		UserID:      *userID,
		Text:        buildQueryText(fs.Args()),
		BoostFactor: *boost,
		K:           *k,
		SaveResult:  *save,
	}

	if *serverURL != "" {
		// Use HTTP API when the server is running (avoids a second SQLite
		// handle and a second title-embedding pass).
		response, err := queryViaHTTP(*serverURL, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteRecommendations(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct catalog access (when server is not running).
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	response, err := components.Engine.Query(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteRecommendations(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func queryViaHTTP(serverURL string, req *models.QueryRequest) (*models.QueryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/query", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	booksPath := fs.String("books", "", "books CSV path (default from config)")
	readListPath := fs.String("read-list", "", "read-list CSV path (default from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *booksPath != "" {
		cfg.Storage.BooksCSVPath = *booksPath
	}
	if *readListPath != "" {
		cfg.Storage.ReadListCSVPath = *readListPath
	}
	if cfg.Storage.BooksCSVPath == "" {
		fmt.Println("No books CSV configured; set storage.books_csv_path or pass -books")
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	nBooks, nEntries, err := importCatalog(ctx, cfg, store)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d book(s) and %d read-list entr(ies)\n", nBooks, nEntries)

	// Rebuild the author index so the next server start skips the build.
	books, err := store.ListBooks(ctx)
	if err != nil {
		fmt.Printf("Failed to list imported books: %v\n", err)
		os.Exit(1)
	}
	entries, err := store.ListReadList(ctx)
	if err != nil {
		fmt.Printf("Failed to list imported read list: %v\n", err)
		os.Exit(1)
	}
	cat, err := catalog.New(books, entries)
	if err != nil {
		fmt.Printf("Imported catalog is invalid: %v\n", err)
		os.Exit(1)
	}
	idx := authorindex.New()
	authors, ids := cat.AuthorFields()
	if err := idx.Build(authors, ids); err != nil {
		fmt.Printf("Author index build failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.AuthorIndexPath != "" {
		if err := idx.Save(cfg.Storage.AuthorIndexPath); err != nil {
			fmt.Printf("Author index save failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Author index written to %s (%d keys)\n", cfg.Storage.AuthorIndexPath, idx.Keys())
	}
}

// importCatalog loads the configured CSVs and replaces the stored catalog
// wholesale.
func importCatalog(ctx context.Context, cfg *config.Config, store storage.Storage) (int, int, error) {
	books, err := catalog.LoadBooksCSV(cfg.Storage.BooksCSVPath)
	if err != nil {
		return 0, 0, fmt.Errorf("load books csv: %w", err)
	}
	if err := store.ReplaceBooks(ctx, books); err != nil {
		return 0, 0, fmt.Errorf("replace books: %w", err)
	}
	var entries []models.ReadListEntry
	if cfg.Storage.ReadListCSVPath != "" {
		entries, err = catalog.LoadReadListCSV(cfg.Storage.ReadListCSVPath)
		if err != nil {
			return 0, 0, fmt.Errorf("load read-list csv: %w", err)
		}
		if err := store.ReplaceReadList(ctx, entries); err != nil {
			return 0, 0, fmt.Errorf("replace read list: %w", err)
		}
	}
	return len(books), len(entries), nil
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Books          int64                  `json:"books"`
	Catalog        int                    `json:"catalog"`
	AuthorKeys     int                    `json:"author_keys"`
	MaxUserID      int                    `json:"max_user_id"`
	DiskUsageBytes *int64                 `json:"disk_usage_bytes,omitempty"`
	Config         map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the catalog directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		ctx := context.Background()
		components, err := initializeComponents(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		bookCount, err := components.Storage.CountBooks(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count books failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Books:      bookCount,
			Catalog:    components.Engine.CatalogSize(),
			AuthorKeys: components.Engine.AuthorKeys(),
			MaxUserID:  components.Engine.MaxUserID(),
			Config: map[string]interface{}{
				"database_path":     cfg.Storage.DatabasePath,
				"author_index_path": cfg.Storage.AuthorIndexPath,
				"rating_model_path": cfg.Storage.RatingModelPath,
			},
		}
		diskBytes, err := storage.DiskUsageBytes(
			cfg.Storage.DatabasePath,
			cfg.Storage.AuthorIndexPath,
			cfg.Storage.RatingModelPath,
		)
		if err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("books:        %d   # count of stored books\n", status.Books)
		fmt.Printf("catalog:      %d   # count of books served by the engine\n", status.Catalog)
		fmt.Printf("author_keys:  %d   # distinct normalized author keys\n", status.AuthorKeys)
		fmt.Printf("max_user_id:  %d   # highest user id the engine accepts\n", status.MaxUserID)
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes: %d   # database + model artifacts on disk\n", *status.DiskUsageBytes)
		}
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"database_path", "author_index_path", "rating_model_path"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%s: %v\n", key, v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Storage
	Embedder embedding.Embedder
	Engine   *engine.Engine

	mu    sync.RWMutex
	index *authorindex.Index
}

// SwapIndex replaces the author index after a catalog reload. The watcher
// callback writes it while the shutdown path may read it, so access goes
// through the lock.
func (c *Components) SwapIndex(idx *authorindex.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = idx
}

// Index returns the current author index.
func (c *Components) Index() *authorindex.Index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		if logger != nil {
			logger.Warn("ONNX embedder unavailable, using deterministic mock",
				zap.String("model_path", cfg.Embedding.ModelPath), zap.Error(err))
		}
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	eng, idx, err := buildEngine(ctx, cfg, store, embedder, logger, false)
	if err != nil {
		_ = embedder.Close()
		_ = store.Close()
		return nil, err
	}

	components := &Components{
		Storage:  store,
		Embedder: embedder,
		Engine:   eng,
	}
	components.SwapIndex(idx)
	return components, nil
}

// buildEngine assembles the catalog, author index, rating model, and title
// scorer into a ready engine. When reimport is true (or storage is empty and
// a books CSV is configured), the catalog is reloaded from the CSVs first.
func buildEngine(
	ctx context.Context,
	cfg *config.Config,
	store storage.Storage,
	embedder embedding.Embedder,
	logger *zap.Logger,
	reimport bool,
) (*engine.Engine, *authorindex.Index, error) {
	books, err := store.ListBooks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list books: %w", err)
	}
	if (reimport || len(books) == 0) && cfg.Storage.BooksCSVPath != "" {
		if _, _, err := importCatalog(ctx, cfg, store); err != nil {
			return nil, nil, err
		}
		books, err = store.ListBooks(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("list books: %w", err)
		}
	}
	entries, err := store.ListReadList(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list read list: %w", err)
	}
	cat, err := catalog.New(books, entries)
	if err != nil {
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}

	idx := loadOrBuildIndex(cfg, cat, logger)

	model, err := rating.Load(cfg.Storage.RatingModelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load rating model: %w", err)
	}

	scorer, err := embedding.NewTitleScorer(ctx, embedder, cat.Titles())
	if err != nil {
		return nil, nil, fmt.Errorf("embed catalog titles: %w", err)
	}

	eng, err := engine.New(cat, idx, model, scorer, store, &cfg.Engine, logger)
	if err != nil {
		return nil, nil, err
	}
	if logger != nil {
		logger.Info("engine ready",
			zap.Int("books", cat.Size()),
			zap.Int("author_keys", idx.Keys()),
			zap.Int("max_user_id", eng.MaxUserID()),
		)
	}
	return eng, idx, nil
}

// loadOrBuildIndex loads the saved author index when it exists and still
// matches the catalog, otherwise rebuilds it from the catalog.
func loadOrBuildIndex(cfg *config.Config, cat *catalog.Catalog, logger *zap.Logger) *authorindex.Index {
	if cfg.Storage.AuthorIndexPath != "" {
		if idx, err := authorindex.Load(cfg.Storage.AuthorIndexPath); err == nil {
			if verifyErr := idx.Verify(cat.Size()); verifyErr == nil {
				return idx
			} else if logger != nil {
				logger.Warn("saved author index no longer matches catalog, rebuilding",
					zap.String("path", cfg.Storage.AuthorIndexPath), zap.Error(verifyErr))
			}
		}
	}
	idx := authorindex.New()
	authors, ids := cat.AuthorFields()
	// Build over a verified catalog cannot produce out-of-range ids.
	_ = idx.Build(authors, ids)
	return idx
}

func printUsage() {
	fmt.Println(`osusume - Hybrid multi-signal book recommendations

Usage:
  osusume server [flags]               Start the HTTP server
  osusume query [flags] [query text]   Rank books for a user
  osusume import [flags]               Import the book catalog from CSV
  osusume status [flags]               Show catalog/engine status
  osusume version                      Show version
  osusume help                         Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/osusume/config.yaml)
  --debug            Enable debug logging (queries, catalog reloads, etc.)

Query Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to load the catalog directly.
  --user int         User id (required)
  --boost float      Read-list boost factor, must be > 1 (default from config)
  --k int            Number of recommendations (default from config)
  --save             Persist the ranked result set
  --output string    Output format: text or json (default: text)

Import Flags:
  --config string      Config file path
  --books string       Books CSV path (default from config)
  --read-list string   Read-list CSV path (default from config)

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct mode.
  --output string    Output format: text or json (default: text)

Examples:
  osusume server
  osusume import --books books.csv --read-list to_read.csv
  osusume query --user 3 wizard school
  osusume query --user 3 --boost 2.5 --k 5 dystopia
  osusume query --user 3 --output json dune   # structured JSON for other apps
  osusume status
  osusume status --output json`)
}

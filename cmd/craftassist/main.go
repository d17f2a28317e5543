package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/craftassist/internal/config"
	"github.com/udisondev/craftassist/internal/craft"
	"github.com/udisondev/craftassist/internal/data"
	"github.com/udisondev/craftassist/internal/db"
	"github.com/udisondev/craftassist/internal/ingest"
	"github.com/udisondev/craftassist/internal/metrics"
	"github.com/udisondev/craftassist/internal/model"
	"github.com/udisondev/craftassist/internal/session"
	"github.com/udisondev/craftassist/internal/store"
)

const ConfigPath = "config/craftassist.yaml"

type options struct {
	configPath string
	jsonOut    bool
	save       bool
	saveDB     bool
	available  bool
	tiers      bool
	check      bool
	list       bool
	load       string
	remove     string
	serve      bool
	dumps      []string
}

func main() {
	opts := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: craftassist [options] [dump.json ...]\n\n")
		fmt.Fprintf(os.Stderr, "Resolves dumped items against the crafting reference data and prints\n")
		fmt.Fprintf(os.Stderr, "their modifiers with tiers.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  craftassist item.json            # Print resolved item\n")
		fmt.Fprintf(os.Stderr, "  craftassist -a -t item.json      # Also list open affixes with tiers\n")
		fmt.Fprintf(os.Stderr, "  craftassist --check              # Report reference data findings\n")
		fmt.Fprintf(os.Stderr, "  craftassist --load \"Plate Vest\"  # Print a saved item\n")
	}

	var o options
	pflag.StringVarP(&o.configPath, "config", "c", "", "Config file (default "+ConfigPath+", or $CRAFTASSIST_CONFIG)")
	pflag.BoolVarP(&o.jsonOut, "json", "j", false, "Print results as JSON")
	pflag.BoolVarP(&o.save, "save", "s", false, "Save processed items to the items directory")
	pflag.BoolVar(&o.saveDB, "db", false, "Save processed items to PostgreSQL")
	pflag.BoolVarP(&o.available, "available", "a", false, "List prefixes and suffixes still open on each item")
	pflag.BoolVarP(&o.tiers, "tiers", "t", false, "Show every tier of listed affixes")
	pflag.BoolVar(&o.check, "check", false, "Validate reference data and print findings")
	pflag.BoolVarP(&o.list, "list", "l", false, "List saved items")
	pflag.StringVar(&o.load, "load", "", "Print the saved item with this name")
	pflag.StringVar(&o.remove, "delete", "", "Delete the saved item with this name")
	pflag.BoolVar(&o.serve, "serve", false, "Keep serving metrics after processing until interrupted")
	help := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	o.dumps = pflag.Args()
	return o
}

func run(ctx context.Context, o options) error {
	cfgPath := o.configPath
	if cfgPath == "" {
		cfgPath = ConfigPath
		if p := os.Getenv("CRAFTASSIST_CONFIG"); p != "" {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", cfgPath, "data_dir", cfg.DataDir)

	files, err := store.New(cfg.ItemsDir())
	if err != nil {
		return err
	}

	sess := session.New()
	names, err := files.List()
	if err != nil {
		return err
	}
	sess.SetSavedNames(names)

	switch {
	case o.list:
		for _, n := range sess.SavedNames() {
			fmt.Println(n)
		}
		return nil
	case o.remove != "":
		return files.Delete(o.remove)
	}

	m := metrics.New()

	catalog, err := data.LoadFile(cfg.ReferenceDataPath(), data.Options{Strict: cfg.StrictReferenceData})
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}
	for _, f := range catalog.Findings() {
		m.Finding(f.Kind.String())
	}

	if o.check {
		for _, f := range catalog.Findings() {
			fmt.Println(f)
		}
		fmt.Printf("%d base groups, %d findings\n", catalog.Len(), len(catalog.Findings()))
		return nil
	}

	proc := craft.NewProcessor(cfg.Crafting, catalog, m, slog.Default())

	if o.load != "" {
		item, err := files.Load(o.load)
		if err != nil {
			return err
		}
		// Saved items carry no raw modifiers; only the base group is re-resolved
		// so available affixes can be listed.
		item.BaseGroup = craft.ResolveBaseGroup(item, catalog)
		sess.Add(item)
		return printItems(o, sess.Items(), nil)
	}

	if len(o.dumps) == 0 && !o.serve {
		pflag.Usage()
		return errors.New("no dump files given")
	}

	g, gctx := errgroup.WithContext(ctx)
	srvCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(srvCtx, cfg.MetricsAddr, m)
		})
	}

	g.Go(func() error {
		defer func() {
			if !o.serve {
				stopServer()
			}
		}()
		return processDumps(gctx, o, cfg, proc, sess, files)
	})

	return g.Wait()
}

func processDumps(ctx context.Context, o options, cfg config.Config, proc *craft.Processor, sess *session.Session, files *store.FileStore) error {
	if len(o.dumps) == 0 {
		return nil
	}

	dumps, err := loadDumps(ctx, o.dumps)
	if err != nil {
		return err
	}

	results, status := proc.ProcessBatch(ctx, dumps.Entities(), dumps)
	slog.Info("batch processed", "status", status.Code, "message", status.Message)
	if status.Code == craft.StatusInternalError {
		return status.Err
	}

	var processed []*model.Item
	for _, r := range results {
		if r.Status.OK() {
			sess.Add(r.Item)
			processed = append(processed, r.Item)
		}
	}

	if err := printItems(o, sess.Items(), results); err != nil {
		return err
	}

	if o.save {
		for _, it := range processed {
			if err := files.Save(it); err != nil {
				return err
			}
		}
		if names, err := files.List(); err == nil {
			sess.SetSavedNames(names)
		}
	}

	if o.saveDB || cfg.Database.Enabled {
		if err := saveToDatabase(ctx, cfg.Database, processed); err != nil {
			return err
		}
	}
	return nil
}

// loadDumps reads dump files concurrently, keeping argument order.
func loadDumps(ctx context.Context, paths []string) (ingest.DumpSet, error) {
	dumps := make(ingest.DumpSet, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := ingest.LoadDump(p)
			if err != nil {
				return err
			}
			dumps[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dumps, nil
}

func saveToDatabase(ctx context.Context, dbCfg config.DatabaseConfig, items []*model.Item) error {
	database, err := db.New(ctx, dbCfg.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, dbCfg.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := db.NewItemRepository(database.Pool()).SaveBatch(ctx, items); err != nil {
		return fmt.Errorf("saving items: %w", err)
	}
	slog.Info("items saved to database", "count", len(items))
	return nil
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}
	return nil
}

func printItems(o options, items []*model.Item, results []craft.Result) error {
	if o.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonReport(items, results)); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return nil
	}

	r := reporter{w: os.Stdout, available: o.available, tiers: o.tiers}
	for _, res := range results {
		if !res.Status.OK() {
			r.status(res)
		}
	}
	for _, it := range items {
		r.item(it)
	}
	return r.err
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

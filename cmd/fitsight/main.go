// File path: cmd/fitsight/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nicodishanthj/fitsight/internal/api"
	"github.com/nicodishanthj/fitsight/internal/common"
	"github.com/nicodishanthj/fitsight/internal/insight"
	"github.com/nicodishanthj/fitsight/internal/llm"
	"github.com/nicodishanthj/fitsight/internal/reconcile"
	"github.com/nicodishanthj/fitsight/internal/remote"
	"github.com/nicodishanthj/fitsight/internal/sqlite"
)

const usage = `fitsight keeps a local history of AI-generated activity insights in sync
with the remote tracking service.

Usage:
  fitsight process -id <activityID> [-force]   generate and post one insight
  fitsight batch [-count N] [-force]           process the N most recent activities
  fitsight sync                                push stored insights missing remotely
  fitsight list                                print stored insights
  fitsight serve [-addr :8081]                 run the local status API
`

func main() {
	logger := common.Logger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Debug("fitsight: .env file not loaded", "error", err)
	} else {
		logger.Info("fitsight: environment loaded from .env")
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "process":
		err = runProcess(ctx, args)
	case "batch":
		err = runBatch(ctx, args)
	case "sync":
		err = runSync(ctx, args)
	case "list":
		err = runList(ctx, args)
	case "serve":
		err = runServe(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("fitsight: command failed", "command", command, "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// buildEngine wires the store, provider, and optional remote client. The
// returned store must be closed by the caller.
func buildEngine() (*sqlite.Store, *reconcile.Engine, remote.Client, error) {
	store, err := sqlite.Open(strings.TrimSpace(os.Getenv("FITSIGHT_DB_PATH")))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open insight store: %w", err)
	}
	remoteClient, err := remote.NewFromEnv()
	if err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("init remote client: %w", err)
	}
	cfg := reconcile.LoadConfig()
	if !cfg.Enabled {
		common.Logger().Warn("fitsight: insight generation disabled; set FITSIGHT_AI_ENABLED and OPENAI_API_KEY")
	}
	generator := insight.NewGenerator(llm.NewProvider())
	var client remote.Client
	if remoteClient != nil {
		client = remoteClient
	}
	engine := reconcile.New(cfg, store, generator, client)
	return store, engine, client, nil
}

func runProcess(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	id := fs.String("id", "", "activity identifier")
	force := fs.Bool("force", false, "discard any existing insight and regenerate")
	candidates := fs.Int("candidates", 30, "recent activities fetched for trend context")
	fs.Parse(args)
	if strings.TrimSpace(*id) == "" {
		return fmt.Errorf("activity id required")
	}

	store, engine, remoteClient, err := buildEngine()
	if err != nil {
		return err
	}
	defer store.Close()
	if remoteClient == nil {
		return fmt.Errorf("remote endpoint required to fetch the activity; set FITSIGHT_REMOTE_ENDPOINT")
	}

	detail, err := remoteClient.Activity(ctx, *id)
	if err != nil {
		return err
	}
	recent, err := remoteClient.RecentActivities(ctx, 0, *candidates)
	if err != nil {
		common.Logger().Warn("fitsight: trend candidates unavailable", "error", err)
		recent = nil
	}

	var result reconcile.Result
	if *force {
		result, err = engine.Regenerate(ctx, detail.Activity, recent)
	} else {
		result, err = engine.Process(ctx, detail.Activity, recent, false)
	}
	if err != nil {
		return err
	}
	fmt.Printf("activity %s: %s\n", detail.ID, result.Status)
	if result.Record != nil {
		fmt.Printf("  model=%s confidence=%.2f\n  %s\n", result.Record.Model, result.Record.Confidence, result.Record.Insight)
	}
	return nil
}

func runBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	count := fs.Int("count", 10, "number of recent activities to process")
	force := fs.Bool("force", false, "regenerate even when an insight exists")
	fs.Parse(args)

	store, engine, remoteClient, err := buildEngine()
	if err != nil {
		return err
	}
	defer store.Close()
	if remoteClient == nil {
		return fmt.Errorf("remote endpoint required; set FITSIGHT_REMOTE_ENDPOINT")
	}

	activities, err := remoteClient.RecentActivities(ctx, 0, *count)
	if err != nil {
		return err
	}
	summary, err := engine.ProcessBatch(ctx, activities, *force)
	fmt.Printf("batch: processed=%d skipped=%d errors=%d\n", summary.Processed, summary.Skipped, summary.Errors)
	return err
}

func runSync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	fs.Parse(args)

	store, engine, remoteClient, err := buildEngine()
	if err != nil {
		return err
	}
	defer store.Close()
	if remoteClient == nil {
		return fmt.Errorf("remote endpoint required; set FITSIGHT_REMOTE_ENDPOINT")
	}

	summary, err := engine.SyncMissing(ctx)
	fmt.Printf("sync: synced=%d skipped=%d errors=%d\n", summary.Synced, summary.Skipped, summary.Errors)
	return err
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(args)

	store, err := sqlite.Open(strings.TrimSpace(os.Getenv("FITSIGHT_DB_PATH")))
	if err != nil {
		return fmt.Errorf("open insight store: %w", err)
	}
	defer store.Close()

	records, err := store.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no stored insights")
		return nil
	}
	for _, record := range records {
		fmt.Printf("%s  %s  %s (%.0f%%)\n    %s\n", record.CreatedAt.Format("2006-01-02 15:04"), record.ActivityID, record.ActivityName, record.Confidence*100, record.Insight)
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8081", "listen address")
	fs.Parse(args)

	store, engine, _, err := buildEngine()
	if err != nil {
		return err
	}
	defer store.Close()

	server, err := api.NewServer(store, engine)
	if err != nil {
		return err
	}
	logger := common.Logger()
	logger.Info("fitsight: serving status API", "addr", *addr)
	httpServer := &http.Server{Addr: *addr, Handler: server.Router()}
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

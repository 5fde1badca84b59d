package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"devserve/api"
	"devserve/config"
	"devserve/filestore"
	"devserve/logger"
)

func main() {
	ctx, stop := interruptContext(context.Background())
	defer stop()

	// Load config
	cfg := config.GetConfig()
	if cfg.Debug {
		logger.GetLogger().EnableDebug()
	}

	os.Exit(run(ctx, cfg, os.Stdout))
}

// interruptContext is cancelled by SIGINT or SIGTERM. Once it is cancelled the
// signals get their default behaviour back, so a second Ctrl+C during the
// graceful shutdown kills the process.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

// run serves cfg.Root until ctx is cancelled and returns the exit code
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) int {
	log := logger.GetLogger()

	server := api.NewServer(cfg, filestore.New(cfg.Root))

	ln, err := server.Listen()
	if err != nil {
		log.Error("Failed to start server", map[string]interface{}{
			"error": err.Error(),
			"addr":  cfg.Addr(),
		})
		return 1
	}

	fmt.Fprintf(stdout, "Starting server at %s\n", cfg.URL())
	fmt.Fprintln(stdout, "Press Ctrl+C to stop")

	if err := server.Serve(ctx, ln); err != nil {
		log.Error("Server failed", map[string]interface{}{
			"error": err.Error(),
		})
		return 1
	}

	fmt.Fprintln(stdout, "\nServer stopped.")
	return 0
}

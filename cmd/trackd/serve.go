package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tracklite/tracklite"
	"github.com/tracklite/tracklite/internal/config"
	"github.com/tracklite/tracklite/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the REST API server backing the kanban board UI.

The server owns a single in-memory store seeded with the built-in demo
dataset. All state is lost on exit; the next start reseeds from scratch.

Use --listen to change the bind address and --log to write request logs
to a rotating file instead of stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		listen, _ := cmd.Flags().GetString("listen")
		logFile, _ := cmd.Flags().GetString("log")

		if !cmd.Flags().Changed("listen") {
			if v := config.GetString("listen"); v != "" {
				listen = v
			}
		}
		if !cmd.Flags().Changed("log") {
			logFile = config.GetString("log-file")
		}

		store, err := tracklite.NewSeededStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to seed store: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()

		var logOutput io.Writer = os.Stdout
		if logFile != "" {
			rotator := newLogRotator(logFile)
			defer func() { _ = rotator.Close() }()
			logOutput = rotator
		}

		server.ServerVersion = Version
		srv := server.New(store, logOutput)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s trackd %s listening on %s\n", green("✓"), Version, listen)
		if logFile != "" {
			fmt.Printf("Logging to: %s\n", logFile)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		case sig := <-sigCh:
			fmt.Printf("\nReceived %v, shutting down...\n", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: shutdown failed: %v\n", err)
			os.Exit(1)
		}
	},
}

// newLogRotator creates a rotating request log sink
func newLogRotator(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.GetInt("log-max-size"),
		MaxBackups: config.GetInt("log-max-backups"),
		MaxAge:     config.GetInt("log-max-age"),
		Compress:   config.GetBool("log-compress"),
	}
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "Address to listen on")
	serveCmd.Flags().String("log", "", "Request log file (rotated; default stdout)")
	rootCmd.AddCommand(serveCmd)
}

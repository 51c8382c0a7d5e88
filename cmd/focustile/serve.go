package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focustile/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FocusTile SSH server",
	Long: `Start an SSH server that gives every SSH user their own canvas.

Each user's canvas, timer and notes are stored under their SSH user name
in the shared store. A user can have one open canvas at a time.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses serve.host_key from the config

Examples:
  focustile serve                           # Listen on the configured address
  focustile serve --ssh :2222               # Listen on port 2222
  focustile serve --metrics-addr :9090      # Expose Prometheus metrics
  focustile serve --store sqlite --db ./ft.db

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (e.g. 30m)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Prometheus metrics address (disabled if empty)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagSSHAddr != "" {
		cfg.Serve.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Serve.HostKey = flagHostKey
	}
	if flagMetricsAddr != "" {
		cfg.Serve.MetricsAddr = flagMetricsAddr
	}
	if flagIdleTimeout > 0 {
		cfg.Serve.IdleTimeout = flagIdleTimeout
	}

	logger := newLogger(os.Stderr, cfg.Log.Level, "focustile-ssh")

	kv, history, err := openStore(cfg)
	if err != nil {
		fatalf("opening store: %v", err)
	}
	defer kv.Close()
	if history == nil {
		logger.Warn("store keeps no session history", "backend", cfg.Storage.Backend)
	}

	serverCfg := tui.SSHServerConfig{
		Address:      cfg.Serve.Address,
		HostKeyPath:  cfg.Serve.HostKey,
		IdleTimeout:  cfg.Serve.IdleTimeout,
		MetricsAddr:  cfg.Serve.MetricsAddr,
		Canvas:       canvasOptions(cfg, nil),
		DismissAfter: cfg.Notify.DismissAfter,
	}

	server, err := tui.NewSSHServer(serverCfg, kv, history, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting FocusTile SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

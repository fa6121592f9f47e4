package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-quest/internal/platform/tui"
	"github.com/vovakirdan/grid-quest/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the grid-quest SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a scenario picker menu and
its own character. Runs are stored per-server and tagged with the SSH user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridquest/host_key

Examples:
  gridquest serve                           # Listen on :23235 with auto-generated key
  gridquest serve --ssh :2222               # Listen on port 2222
  gridquest serve --host-key ./my_host_key  # Use specific host key
  gridquest serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	a := mustSetup("", storage.SourceSSH)
	defer a.close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = a.cfg.SSH.Address
	cfg.HostKeyPath = a.cfg.SSH.HostKeyPath
	cfg.DBPath = a.cfg.Storage.Path
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}

	opts := a.playOptions(nil)
	opts.Logger = a.logger.WithPrefix("gridquest-ssh")

	server, err := tui.NewSSHServer(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting grid-quest SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}

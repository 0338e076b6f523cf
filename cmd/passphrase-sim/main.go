// Command passphrase-sim simulates a hardware wallet and its host over an
// in-process connection, exercising the passphrase prompt end to end.
//
// Usage:
//
//	passphrase-sim [-config sim.yaml]
//
// Settings can also be given as PASSPHRASE_SIM_* environment variables
// or in a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/nholstein/passphrase"
	"github.com/nholstein/passphrase/session"
	"github.com/nholstein/passphrase/storage"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path (YAML)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	err = run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	policy, err := cfg.OverflowPolicy()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "host> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	logger := cfg.NewLogger(rl.Stderr())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	deviceConn, hostConn := net.Pipe()
	dev := newDevice(passphrase.NewReportChannel(deviceConn), store, session.New(), logger, policy)
	served := make(chan error, 1)
	go func() {
		served <- dev.serve(ctx)
	}()

	h := host{
		channel: passphrase.NewReportChannel(hostConn),
		rl:      rl,
		device:  dev,
	}
	err = h.run(ctx)

	cancel()
	_ = hostConn.Close()
	_ = deviceConn.Close()

	serveErr := <-served
	if errors.Is(serveErr, context.Canceled) || errors.Is(serveErr, io.ErrClosedPipe) || errors.Is(serveErr, io.EOF) {
		serveErr = nil
	}
	return errors.Join(err, serveErr)
}

func openStore(cfg Config) (storage.Store, error) { //nolint:ireturn
	if cfg.StorePath == "" {
		return storage.NewMemoryStore(storage.Settings{
			PassphraseProtection: cfg.Protect,
			Label:                cfg.Label,
		}), nil
	}

	store, err := storage.Open(cfg.StorePath, storage.DeriveMACKey([]byte(cfg.DeviceSecret)))
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	return store, nil
}

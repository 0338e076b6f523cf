package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nholstein/passphrase"
	wire "github.com/nholstein/passphrase/internal"
)

// host is the interactive side of the simulator, playing the wallet
// software talking to the device.
type host struct {
	channel passphrase.Channel
	rl      *readline.Instance
	device  *device
}

func (h *host) stdout() io.Writer {
	return h.rl.Stdout()
}

// run reads commands until the user quits or the input ends.
func (h *host) run(ctx context.Context) error {
	h.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := h.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if err != nil {
			fmt.Fprintln(h.stdout(), "Exiting...")
			return nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			h.printHelp()

		case "unlock", "u":
			err = h.call(ctx, wire.GetPublicKey{})

		case "init":
			err = h.call(ctx, wire.Initialize{})

		case "clear":
			err = h.call(ctx, wire.ClearSession{})

		case "protect":
			err = h.cmdProtect(ctx, args)

		case "status", "s":
			h.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(h.stdout(), "Exiting...")
			return nil

		default:
			fmt.Fprintf(h.stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}

		if err != nil {
			return err
		}
	}
}

func (h *host) printHelp() {
	fmt.Fprintln(h.stdout(), `
Passphrase Simulator Commands:
  unlock            - Request an operation using the key material
  init              - Start a new host session (clears the passphrase)
  clear             - Clear the cached passphrase
  protect on|off    - Enable or disable passphrase protection
  status            - Show device status
  quit              - Exit

When the device asks for a passphrase, enter it, or enter
:cancel to cancel or :init to re-initialize instead.`)
}

func (h *host) cmdProtect(ctx context.Context, args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(h.stdout(), "Usage: protect on|off")
		return nil
	}

	enabled := args[0] == "on"
	return h.call(ctx, &wire.ApplySettings{UsePassphrase: &enabled})
}

func (h *host) cmdStatus() {
	settings := h.device.store.Settings()
	fmt.Fprintf(h.stdout(), "Label:                 %s\n", settings.Label)
	fmt.Fprintf(h.stdout(), "Passphrase protection: %t\n", settings.PassphraseProtection)
	fmt.Fprintf(h.stdout(), "Passphrase cached:     %t\n", h.device.cache.PassphraseCached())
	fmt.Fprintf(h.stdout(), "Session:               %s\n", h.device.cache.ID())
}

// call sends a message and answers passphrase requests until the
// device's final response arrives.
func (h *host) call(ctx context.Context, m wire.Message) error {
	err := h.channel.Write(ctx, m.Serialize(nil))
	if err != nil {
		return err
	}

	for {
		frame, err := h.channel.ReadTiny(ctx)
		if err != nil {
			return err
		}

		msgType, payload, err := wire.ParseFrame(frame)
		if err != nil {
			return fmt.Errorf("device response: %w", err)
		}

		//nolint:exhaustive
		switch msgType {
		case wire.MessagePassphraseRequest:
			reply, err := h.promptPassphrase()
			if err != nil {
				return err
			}
			err = h.channel.Write(ctx, reply.Serialize(nil))
			if err != nil {
				return err
			}

		case wire.MessageSuccess:
			var s wire.Success
			err = s.Parse(payload)
			fmt.Fprintf(h.stdout(), "Success: %s\n", s.Message)
			return err

		case wire.MessageFailure:
			var f wire.Failure
			err = f.Parse(payload)
			fmt.Fprintf(h.stdout(), "Failure (%v): %s\n", f.Code, f.Message)
			return err

		case wire.MessageFeatures:
			var f wire.Features
			err = f.Parse(payload)
			fmt.Fprintf(h.stdout(), "Features: vendor=%s label=%q passphrase_protection=%t passphrase_cached=%t\n",
				f.Vendor, f.Label, f.PassphraseProtection, f.PassphraseCached)
			return err

		default:
			fmt.Fprintf(h.stdout(), "Unexpected response: %v\n", msgType)
			return nil
		}
	}
}

func (h *host) promptPassphrase() (wire.Message, error) { //nolint:ireturn
	fmt.Fprintln(h.stdout(), "Device requests a passphrase (:cancel to cancel, :init to re-initialize)")

	secret, err := h.rl.ReadPassword("passphrase: ")
	if errors.Is(err, readline.ErrInterrupt) {
		return wire.Cancel{}, nil
	} else if err != nil {
		return nil, err
	}

	switch string(secret) {
	case ":cancel":
		return wire.Cancel{}, nil
	case ":init":
		return wire.Initialize{}, nil
	}
	return &wire.PassphraseAck{Passphrase: secret}, nil
}

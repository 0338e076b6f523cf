package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nholstein/passphrase"
	wire "github.com/nholstein/passphrase/internal"
	"github.com/nholstein/passphrase/session"
	"github.com/nholstein/passphrase/storage"
)

type harness struct {
	ctx    context.Context
	host   *passphrase.ReportChannel
	device *device
}

func startDevice(t *testing.T, store storage.Store) *harness {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	deviceConn, hostConn := net.Pipe()
	dev := newDevice(passphrase.NewReportChannel(deviceConn), store, session.New(),
		slog.New(slog.DiscardHandler), passphrase.OverflowReject)

	served := make(chan error, 1)
	go func() {
		served <- dev.serve(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		_ = hostConn.Close()
		err := <-served
		if !errors.Is(err, context.Canceled) && !errors.Is(err, io.ErrClosedPipe) && !errors.Is(err, io.EOF) {
			t.Errorf("serve: %v", err)
		}
		_ = deviceConn.Close()
	})

	return &harness{
		ctx:    ctx,
		host:   passphrase.NewReportChannel(hostConn),
		device: dev,
	}
}

func (h *harness) send(t *testing.T, m wire.Message) {
	t.Helper()
	require.NoError(t, h.host.Write(h.ctx, m.Serialize(nil)))
}

func (h *harness) expect(t *testing.T, want wire.MessageType, rsp wire.Payload) {
	t.Helper()
	frame, err := h.host.ReadTiny(h.ctx)
	require.NoError(t, err)
	require.NoError(t, wire.ParseMessage(want, rsp, frame))
}

func TestDeviceUnlock(t *testing.T) {
	h := startDevice(t, storage.NewMemoryStore(storage.Settings{PassphraseProtection: true}))

	h.send(t, wire.GetPublicKey{})
	h.expect(t, wire.MessagePassphraseRequest, wire.EmptyPayload{})
	h.send(t, &wire.PassphraseAck{Passphrase: []byte("hunter2")})

	var s wire.Success
	h.expect(t, wire.MessageSuccess, &s)
	assert.Equal(t, "Key material unlocked", s.Message)

	got, err := h.device.cache.Passphrase()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	// Cached: no second prompt.
	h.send(t, wire.GetPublicKey{})
	h.expect(t, wire.MessageSuccess, &s)
}

func TestDeviceCancel(t *testing.T) {
	h := startDevice(t, storage.NewMemoryStore(storage.Settings{PassphraseProtection: true}))

	h.send(t, wire.GetPublicKey{})
	h.expect(t, wire.MessagePassphraseRequest, wire.EmptyPayload{})
	h.send(t, wire.Cancel{})

	var f wire.Failure
	h.expect(t, wire.MessageFailure, &f)
	assert.Equal(t, passphrase.FailureActionCancelled, f.Code)
	assert.False(t, h.device.cache.PassphraseCached())
}

func TestDeviceInitializeDuringPrompt(t *testing.T) {
	store := storage.NewMemoryStore(storage.Settings{PassphraseProtection: true, Label: "satoshi"})
	h := startDevice(t, store)
	before := h.device.cache.ID()

	h.send(t, wire.GetPublicKey{})
	h.expect(t, wire.MessagePassphraseRequest, wire.EmptyPayload{})
	h.send(t, wire.Initialize{})

	var f wire.Features
	h.expect(t, wire.MessageFeatures, &f)
	assert.Equal(t, "satoshi", f.Label)
	assert.True(t, f.PassphraseProtection)
	assert.False(t, f.PassphraseCached)
	assert.NotEqual(t, before, h.device.cache.ID(), "session should be restarted")
}

func TestDeviceSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.cbor")
	key := storage.DeriveMACKey([]byte("device secret"))
	store, err := storage.Open(path, key)
	require.NoError(t, err)
	h := startDevice(t, store)

	on := true
	h.send(t, &wire.ApplySettings{UsePassphrase: &on})
	h.expect(t, wire.MessageSuccess, &wire.Success{})

	reopened, err := storage.Open(path, key)
	require.NoError(t, err)
	assert.True(t, reopened.PassphraseProtected())

	h.send(t, wire.GetPublicKey{})
	h.expect(t, wire.MessagePassphraseRequest, wire.EmptyPayload{})
	h.send(t, &wire.PassphraseAck{Passphrase: []byte("x")})
	h.expect(t, wire.MessageSuccess, &wire.Success{})

	h.send(t, wire.ClearSession{})
	h.expect(t, wire.MessageSuccess, &wire.Success{})
	assert.False(t, h.device.cache.PassphraseCached())
}

func TestDeviceUnexpectedMessage(t *testing.T) {
	h := startDevice(t, &storage.MemoryStore{})

	h.send(t, wire.PassphraseRequest{})

	var f wire.Failure
	h.expect(t, wire.MessageFailure, &f)
	assert.Equal(t, passphrase.FailureUnexpectedMessage, f.Code)
}

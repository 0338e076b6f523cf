package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nholstein/passphrase"
	wire "github.com/nholstein/passphrase/internal"
	"github.com/nholstein/passphrase/session"
	"github.com/nholstein/passphrase/storage"
)

// device is the simulated wallet: it dispatches host messages one at a
// time and guards key material operations with the passphrase gate.
type device struct {
	id        uuid.UUID
	channel   passphrase.Channel
	store     storage.Store
	cache     *session.Cache
	logger    *slog.Logger
	gate      *passphrase.Gate
	responder *passphrase.Responder
}

func newDevice(channel passphrase.Channel, store storage.Store, cache *session.Cache, logger *slog.Logger, policy passphrase.OverflowPolicy) *device {
	d := device{
		id:      uuid.New(),
		channel: channel,
		store:   store,
		cache:   cache,
		logger:  logger,
	}
	d.responder = &passphrase.Responder{
		Channel:  channel,
		Cache:    cache,
		Features: d.features,
	}
	d.gate = passphrase.NewGate(channel, store, cache,
		passphrase.WithLogger(logger),
		passphrase.WithHandlers(d.responder),
		passphrase.WithOverflowPolicy(policy),
	)

	return &d
}

func (d *device) features() passphrase.Features {
	settings := d.store.Settings()
	return passphrase.Features{
		Vendor:               "passphrase-sim",
		DeviceID:             d.id.String(),
		Label:                settings.Label,
		PassphraseProtection: settings.PassphraseProtection,
		PassphraseCached:     d.cache.PassphraseCached(),
		Initialized:          true,
	}
}

// serve handles host messages until the channel fails or ctx ends.
func (d *device) serve(ctx context.Context) error {
	for {
		frame, err := d.channel.ReadTiny(ctx)
		if err != nil {
			return err
		}

		err = d.dispatch(ctx, frame)
		if err != nil {
			return err
		}
	}
}

func (d *device) dispatch(ctx context.Context, frame []byte) error {
	msgType, payload, err := wire.ParseFrame(frame)
	if err != nil {
		d.logger.Warn("dropping malformed frame", "error", err)
		return nil
	}
	d.logger.Debug("received message", "type", msgType, "session", d.cache.ID())

	//nolint:exhaustive
	switch msgType {
	case wire.MessageInitialize:
		return d.responder.HandleInitialize(ctx)

	case wire.MessageGetPublicKey:
		result, err := d.gate.Protect(ctx)
		if err != nil {
			return err
		} else if !result.OK() {
			return d.gate.ReportCancellation(ctx, passphrase.FailureActionCancelled, "Passphrase cancelled")
		}
		return d.success(ctx, "Key material unlocked")

	case wire.MessageClearSession:
		d.cache.Clear()
		return d.success(ctx, "Session cleared")

	case wire.MessageApplySettings:
		var apply wire.ApplySettings
		err = apply.Parse(payload)
		if err != nil {
			return d.responder.HandleFailure(ctx, passphrase.FailureSyntaxError, err.Error())
		}

		err = d.store.Update(func(settings *storage.Settings) {
			if apply.Label != nil {
				settings.Label = *apply.Label
			}
			if apply.UsePassphrase != nil {
				settings.PassphraseProtection = *apply.UsePassphrase
			}
		})
		if err != nil {
			d.logger.Error("failed to apply settings", "error", err)
			return d.responder.HandleFailure(ctx, passphrase.FailureFirmwareError, "Failed to store settings")
		}
		return d.success(ctx, "Settings applied")

	default:
		return d.responder.HandleFailure(ctx, passphrase.FailureUnexpectedMessage, "Unexpected message")
	}
}

func (d *device) success(ctx context.Context, message string) error {
	return d.channel.Write(ctx, (&wire.Success{Message: message}).Serialize(nil))
}

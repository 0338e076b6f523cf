package passphrase

import (
	"cmp"
	"context"
	"log/slog"

	wire "github.com/nholstein/passphrase/internal"
)

// FailureType is the code reported to the host in a Failure message.
type FailureType = wire.FailureType

const (
	FailureUnexpectedMessage = wire.FailureUnexpectedMessage
	FailureButtonExpected    = wire.FailureButtonExpected
	FailureSyntaxError       = wire.FailureSyntaxError
	FailureActionCancelled   = wire.FailureActionCancelled
	FailurePinExpected       = wire.FailurePinExpected
	FailurePinCancelled      = wire.FailurePinCancelled
	FailurePinInvalid        = wire.FailurePinInvalid
	FailureInvalidSignature  = wire.FailureInvalidSignature
	FailureOther             = wire.FailureOther
	FailureNotEnoughFunds    = wire.FailureNotEnoughFunds
	FailureNotInitialized    = wire.FailureNotInitialized
	FailureFirmwareError     = wire.FailureFirmwareError
)

type gateError string

func (g gateError) Error() string {
	return string(g)
}

const (
	// ErrUserCanceled is the error of a [ResultCanceled] interaction.
	ErrUserCanceled gateError = "passphrase entry canceled"

	// ErrCanceledByInitialize is the error of a
	// [ResultCanceledByInitialize] interaction.
	ErrCanceledByInitialize gateError = "passphrase entry canceled by host initialize"
)

// Result is the outcome of [Gate.Protect]. The zero Result denies
// access.
type Result uint8

const (
	ResultCanceled             Result = iota // canceled
	ResultGranted                            // granted
	ResultCanceledByInitialize               // canceled by initialize
)

// OK reports whether access to the key material is permitted.
func (r Result) OK() bool {
	return r == ResultGranted
}

// Err returns nil for [ResultGranted], otherwise the error matching the
// reason access was denied.
func (r Result) Err() error {
	switch r {
	case ResultGranted:
		return nil
	case ResultCanceledByInitialize:
		return ErrCanceledByInitialize
	default:
		return ErrUserCanceled
	}
}

// ConfigStore reports the persisted device configuration.
type ConfigStore interface {
	PassphraseProtected() bool
}

// SessionCache holds the passphrase for the lifetime of the device's
// session.
type SessionCache interface {
	PassphraseCached() bool
	CachePassphrase(passphrase string)
}

// Handlers surface a canceled passphrase interaction to the host.
type Handlers interface {
	HandleFailure(ctx context.Context, code FailureType, message string) error
	HandleInitialize(ctx context.Context) error
}

// Option configures a [Gate].
type Option func(*Gate)

// WithLogger sets the logger. If not specified nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithHandlers overrides how cancellations are reported. If not
// specified a [Responder] answering over the gate's channel is used.
func WithHandlers(handlers Handlers) Option {
	return func(g *Gate) {
		g.handlers = handlers
	}
}

// WithOverflowPolicy sets the treatment of passphrases longer than
// [MaxPassphraseLength]. The default is [OverflowReject].
func WithOverflowPolicy(policy OverflowPolicy) Option {
	return func(g *Gate) {
		g.policy = policy
	}
}

var discardLogger = slog.New(slog.DiscardHandler)

// Gate decides whether key material may be used, prompting the host for
// a passphrase when protection is enabled and none is cached.
//
// A Gate is not safe for concurrent use. [Gate.Protect] and
// [Gate.ReportCancellation] are meant to be called in turn by the single
// goroutine dispatching host messages:
//
//	result, err := gate.Protect(ctx)
//	if err != nil {
//		return err
//	} else if !result.OK() {
//		return gate.ReportCancellation(ctx, passphrase.FailureActionCancelled, "Passphrase cancelled")
//	}
type Gate struct {
	channel  Channel
	config   ConfigStore
	cache    SessionCache
	handlers Handlers
	logger   *slog.Logger
	policy   OverflowPolicy

	// canceledByInit is set when the last interaction was ended by
	// an Initialize message, and consumed by ReportCancellation.
	canceledByInit bool
}

// NewGate creates a [Gate] exchanging messages with the host over
// channel.
func NewGate(channel Channel, config ConfigStore, cache SessionCache, options ...Option) *Gate {
	g := Gate{
		channel: channel,
		config:  config,
		cache:   cache,
	}
	for _, option := range options {
		option(&g)
	}

	return &g
}

func (g *Gate) log() *slog.Logger {
	return cmp.Or(g.logger, discardLogger)
}

func (g *Gate) responder() Handlers { //nolint:ireturn
	if g.handlers != nil {
		return g.handlers
	}
	return &Responder{Channel: g.channel, Cache: g.cache}
}

// Protect returns [ResultGranted] without any message exchange if
// passphrase protection is disabled or a passphrase is already cached.
// Otherwise it requests a passphrase from the host and waits, without
// a timeout, until the host acknowledges, cancels, or re-initializes.
// An acknowledged passphrase is cached.
//
// Canceled interactions are not errors; they are returned as a [Result]
// and should be passed on to [Gate.ReportCancellation]. An error is
// only returned if the channel fails or ctx ends.
func (g *Gate) Protect(ctx context.Context) (Result, error) {
	g.canceledByInit = false

	if !g.config.PassphraseProtected() || g.cache.PassphraseCached() {
		return ResultGranted, nil
	}

	logger := g.log()
	m := machine{
		channel: g.channel,
		logger:  logger,
		policy:  g.policy,
	}
	defer m.info.Wipe()

	err := m.run(ctx)
	if err != nil {
		logger.Error("passphrase interaction failed", "error", err)
		return ResultCanceled, err
	}

	logger.Info("passphrase interaction finished", "outcome", m.info.Outcome)

	//nolint:exhaustive
	switch m.info.Outcome {
	case OutcomeReceived:
		passphrase, _ := m.info.Passphrase()
		g.cache.CachePassphrase(passphrase)
		return ResultGranted, nil

	case OutcomeCanceledByInit:
		g.canceledByInit = true
		return ResultCanceledByInitialize, nil

	default:
		return ResultCanceled, nil
	}
}

// ReportCancellation surfaces the failure of the preceding
// [Gate.Protect]. If it was canceled by an Initialize message the device
// is re-initialized and code and message are ignored; otherwise a
// failure with code and message is reported.
//
// The re-initialize indication is consumed: a later call reports a
// plain failure unless another Protect is canceled by Initialize.
func (g *Gate) ReportCancellation(ctx context.Context, code FailureType, message string) error {
	byInit := g.canceledByInit
	g.canceledByInit = false

	handlers := g.responder()
	if byInit {
		g.log().Info("passphrase canceled by initialize, re-initializing")
		return handlers.HandleInitialize(ctx)
	}

	g.log().Info("passphrase canceled", "code", code)
	return handlers.HandleFailure(ctx, code, message)
}

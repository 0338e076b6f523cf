package passphrase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	wire "github.com/nholstein/passphrase/internal"
)

//go:generate go run golang.org/x/tools/cmd/stringer -linecomment -output=state_string.go -type=State,Outcome,Result,OverflowPolicy

// MaxPassphraseLength is the longest passphrase, in bytes, accepted from
// the host.
const MaxPassphraseLength = wire.MaxPassphraseLength

// State is the position of a passphrase interaction.
type State uint8

const (
	StateRequest  State = iota // REQUEST
	StateWaiting               // WAITING
	StateFinished              // FINISHED
)

// Outcome classifies the message which ended a passphrase interaction.
type Outcome uint8

const (
	OutcomePending        Outcome = iota // PENDING
	OutcomeReceived                      // RECEIVED
	OutcomeCanceled                      // CANCELED
	OutcomeCanceledByInit                // CANCELED_BY_INIT
)

// OverflowPolicy decides what happens to a passphrase longer than
// [MaxPassphraseLength].
type OverflowPolicy uint8

const (
	// OverflowReject ignores the oversized acknowledgement as though it
	// were unrelated traffic; the device keeps waiting.
	OverflowReject OverflowPolicy = iota // reject

	// OverflowTruncate keeps the first [MaxPassphraseLength] bytes,
	// backing off to the start of a partial trailing UTF-8 sequence.
	OverflowTruncate // truncate
)

// Info holds the result of a single passphrase interaction. The secret
// is only meaningful once the outcome is [OutcomeReceived].
type Info struct {
	Outcome Outcome
	secret  [MaxPassphraseLength]byte
	length  int
}

// Passphrase returns the received passphrase.
func (i *Info) Passphrase() (string, bool) {
	if i.Outcome != OutcomeReceived {
		return "", false
	}
	return string(i.secret[:i.length]), true
}

// Wipe zeroes the secret.
func (i *Info) Wipe() {
	clear(i.secret[:])
	i.length = 0
}

// setSecret performs the bounded copy of an acknowledged passphrase.
func (i *Info) setSecret(secret []byte, policy OverflowPolicy) bool {
	if len(secret) > len(i.secret) {
		if policy != OverflowTruncate {
			return false
		}
		secret = truncateUTF8(secret, len(i.secret))
	}

	i.length = copy(i.secret[:], secret)
	return true
}

func truncateUTF8(b []byte, n int) []byte {
	b = b[:n]
	for i := len(b); i > 0 && i > len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i-1]) {
			continue
		}
		if !utf8.FullRune(b[i-1:]) {
			return b[:i-1]
		}
		break
	}
	return b
}

// machine runs one REQUEST → WAITING → FINISHED passphrase interaction.
type machine struct {
	channel Channel
	logger  *slog.Logger
	policy  OverflowPolicy
	state   State
	info    Info
}

// run drives the machine until it finishes. Only the channel can fail;
// on error the interaction is abandoned and the secret wiped.
func (m *machine) run(ctx context.Context) error {
	for m.state != StateFinished {
		err := m.step(ctx)
		if err != nil {
			m.info.Wipe()
			return err
		}
	}
	return nil
}

func (m *machine) step(ctx context.Context) error {
	switch m.state {
	case StateRequest:
		var buf [wire.HeaderLength]byte
		err := m.channel.Write(ctx, wire.PassphraseRequest{}.Serialize(buf[:0]))
		if err != nil {
			return fmt.Errorf("send passphrase request: %w", err)
		}
		m.transition(StateWaiting)

	case StateWaiting:
		// There is deliberately no timeout: only the host can end
		// the wait, by answering, canceling or re-initializing.
		frame, err := m.channel.ReadTiny(ctx)
		if err != nil {
			return fmt.Errorf("wait for passphrase: %w", err)
		}
		m.classify(frame)
		clear(frame)

		if m.info.Outcome != OutcomePending {
			m.transition(StateFinished)
		}

	case StateFinished:
	}

	return nil
}

func (m *machine) transition(to State) {
	m.logger.Debug("passphrase state", "from", m.state, "to", to)
	m.state = to
}

// classify updates the outcome from a frame received while waiting.
// Anything other than an acknowledgement, cancel or initialize leaves
// the outcome pending.
func (m *machine) classify(frame []byte) {
	msgType, payload, err := wire.ParseFrame(frame)
	if err != nil {
		m.logger.Debug("ignoring malformed frame", "error", err)
		return
	}

	//nolint:exhaustive
	switch msgType {
	case wire.MessagePassphraseAck:
		var ack wire.PassphraseAck
		err = ack.Parse(payload)
		if err != nil {
			m.logger.Debug("ignoring malformed passphrase acknowledgement", "error", err)
			return
		}

		if len(ack.Passphrase) > MaxPassphraseLength {
			m.logger.Warn("oversized passphrase", "length", len(ack.Passphrase), "max", MaxPassphraseLength, "policy", m.policy)
		}
		if !m.info.setSecret(ack.Passphrase, m.policy) {
			return
		}
		m.info.Outcome = OutcomeReceived

	case wire.MessageCancel:
		m.info.Outcome = OutcomeCanceled

	case wire.MessageInitialize:
		m.info.Outcome = OutcomeCanceledByInit

	default:
		m.logger.Debug("ignoring message while waiting for passphrase", "type", msgType)
	}
}

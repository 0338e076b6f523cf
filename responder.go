package passphrase

import (
	"context"

	wire "github.com/nholstein/passphrase/internal"
)

// Features describes the device to the host after a re-initialization.
type Features = wire.Features

// Responder is the default [Handlers], answering the host over a
// [Channel].
type Responder struct {
	Channel Channel

	// Cache is cleared on re-initialization if it has a Clear method.
	Cache SessionCache

	// Features reports the device's features to send after a
	// re-initialization. It is called after the cache is cleared. If
	// nil an empty Features message is sent.
	Features func() Features
}

// HandleFailure sends a Failure message with code and message.
func (r *Responder) HandleFailure(ctx context.Context, code FailureType, message string) error {
	failure := wire.Failure{
		Code:    code,
		Message: message,
	}
	return r.Channel.Write(ctx, failure.Serialize(nil))
}

// HandleInitialize starts a new session: any cached passphrase is
// dropped and the device's features are sent.
func (r *Responder) HandleInitialize(ctx context.Context) error {
	if c, ok := r.Cache.(interface{ Clear() }); ok {
		c.Clear()
	}

	var features Features
	if r.Features != nil {
		features = r.Features()
	}
	return r.Channel.Write(ctx, features.Serialize(nil))
}

package passphrase

import (
	"cmp"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Channel exchanges message frames with the host.
//
// A frame is a complete serialized message: the '##' magic, a 2 byte
// message type, 4 byte payload length, then the protobuf payload.
//
// ReadTiny blocks until the next short control message (an
// acknowledgement, cancel, or initialize) arrives from the host. The
// returned frame belongs to the caller, which may overwrite it.
type Channel interface {
	Write(ctx context.Context, frame []byte) error
	ReadTiny(ctx context.Context) ([]byte, error)
}

// HTTPChannel is a [Channel] which exchanges messages through an HTTP
// message relay, in the manner of the trezord bridge.
//
// Frames are hex encoded. A frame is sent with a POST to
// {url}/post/{session}; a POST to {url}/read/{session} blocks until the
// host's next frame is available and returns it.
//
// The zero value HTTPChannel is valid to use and connects to the relay
// at http://127.0.0.1:21325 with session "1" using
// [net/http.DefaultClient]. This behavior can be customized with
// [NewHTTPChannel].
type HTTPChannel struct {
	client  *http.Client
	url     string
	session string
}

type httpChannel HTTPChannel

// HTTPOption configures the behavior of the [HTTPChannel] created by
// [NewHTTPChannel].
type HTTPOption func(*httpChannel)

// NewHTTPChannel creates an [HTTPChannel] using the provided
// configuration options.
func NewHTTPChannel(options ...HTTPOption) HTTPChannel {
	var ch httpChannel
	for _, option := range options {
		option(&ch)
	}

	return (HTTPChannel)(ch)
}

// WithHTTPClient configures the [HTTPChannel] to make HTTP requests
// using the provided HTTP client. The client must not time out reads
// shorter than a user takes to type a passphrase.
//
// If not specified this defaults to [http.DefaultClient].
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(ch *httpChannel) {
		ch.client = client
	}
}

// WithRelayURL configures the [HTTPChannel] to issue HTTP requests to
// the relay at the provided URL.
//
// If not specified this defaults to "http://127.0.0.1:21325".
func WithRelayURL(url string) HTTPOption {
	return func(ch *httpChannel) {
		ch.url = strings.TrimSuffix(url, "/")
	}
}

// WithRelaySession selects the relay session messages are exchanged
// on.
//
// If not specified this defaults to "1".
func WithRelaySession(session string) HTTPOption {
	return func(ch *httpChannel) {
		ch.session = session
	}
}

// Write posts the frame to the relay.
func (h *HTTPChannel) Write(ctx context.Context, frame []byte) error {
	_, err := h.post(ctx, "post", frame)
	return err
}

// ReadTiny waits for the relay to return the host's next frame.
func (h *HTTPChannel) ReadTiny(ctx context.Context) ([]byte, error) {
	body, err := h.post(ctx, "read", nil)
	if err != nil {
		return nil, err
	}

	return checkErr(hex.DecodeString(strings.TrimSpace(string(body))))
}

func (h *HTTPChannel) post(ctx context.Context, op string, frame []byte) ([]byte, error) {
	client := cmp.Or(h.client, http.DefaultClient)
	base := cmp.Or(h.url, "http://127.0.0.1:21325")
	session := cmp.Or(h.session, "1")

	endpoint := base + "/" + op + "/" + url.PathEscape(session)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(hex.EncodeToString(frame)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain")

	rsp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rsp.Body.Close() }()

	if rsp.StatusCode < http.StatusOK || rsp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("relay %s failed: %s", op, rsp.Status)
	}

	return io.ReadAll(rsp.Body)
}

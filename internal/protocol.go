// Package wire implements the message frame layout and payload
// serialization/deserialization of the host wallet protocol.
package wire

//go:generate go run golang.org/x/tools/cmd/stringer -linecomment -output=protocol_string.go -type=MessageType,FailureType

const (
	// HeaderLength is the '##' magic, 2 byte message type and 4 byte
	// payload length preceding every message.
	HeaderLength = 2 + 2 + 4

	// MaxPayloadLength bounds the payload of a received message,
	// matching the device's inbound message buffer.
	MaxPayloadLength = 24 * 1024

	// MaxPassphraseLength is the longest passphrase a PassphraseAck
	// may carry. The device holds it in a 51 byte NUL terminated
	// buffer.
	MaxPassphraseLength = 50
)

// MessageType identifies the protobuf message carried in a frame.
type MessageType uint16

const (
	MessageInitialize        MessageType = 0  // Initialize
	MessagePing              MessageType = 1  // Ping
	MessageSuccess           MessageType = 2  // Success
	MessageFailure           MessageType = 3  // Failure
	MessageChangePin         MessageType = 4  // ChangePin
	MessageWipeDevice        MessageType = 5  // WipeDevice
	MessageGetEntropy        MessageType = 9  // GetEntropy
	MessageEntropy           MessageType = 10 // Entropy
	MessageGetPublicKey      MessageType = 11 // GetPublicKey
	MessagePublicKey         MessageType = 12 // PublicKey
	MessageLoadDevice        MessageType = 13 // LoadDevice
	MessageResetDevice       MessageType = 14 // ResetDevice
	MessageSignTx            MessageType = 15 // SignTx
	MessageFeatures          MessageType = 17 // Features
	MessagePinMatrixRequest  MessageType = 18 // PinMatrixRequest
	MessagePinMatrixAck      MessageType = 19 // PinMatrixAck
	MessageCancel            MessageType = 20 // Cancel
	MessageTxRequest         MessageType = 21 // TxRequest
	MessageTxAck             MessageType = 22 // TxAck
	MessageCipherKeyValue    MessageType = 23 // CipherKeyValue
	MessageClearSession      MessageType = 24 // ClearSession
	MessageApplySettings     MessageType = 25 // ApplySettings
	MessageButtonRequest     MessageType = 26 // ButtonRequest
	MessageButtonAck         MessageType = 27 // ButtonAck
	MessageGetAddress        MessageType = 29 // GetAddress
	MessageAddress           MessageType = 30 // Address
	MessageEntropyRequest    MessageType = 35 // EntropyRequest
	MessageEntropyAck        MessageType = 36 // EntropyAck
	MessageSignMessage       MessageType = 38 // SignMessage
	MessageVerifyMessage     MessageType = 39 // VerifyMessage
	MessageMessageSignature  MessageType = 40 // MessageSignature
	MessagePassphraseRequest MessageType = 41 // PassphraseRequest
	MessagePassphraseAck     MessageType = 42 // PassphraseAck
)

// FailureType is the code carried by a Failure message.
type FailureType uint8

const (
	FailureUnexpectedMessage FailureType = 1  // UnexpectedMessage
	FailureButtonExpected    FailureType = 2  // ButtonExpected
	FailureSyntaxError       FailureType = 3  // SyntaxError
	FailureActionCancelled   FailureType = 4  // ActionCancelled
	FailurePinExpected       FailureType = 5  // PinExpected
	FailurePinCancelled      FailureType = 6  // PinCancelled
	FailurePinInvalid        FailureType = 7  // PinInvalid
	FailureInvalidSignature  FailureType = 8  // InvalidSignature
	FailureOther             FailureType = 9  // Other
	FailureNotEnoughFunds    FailureType = 10 // NotEnoughFunds
	FailureNotInitialized    FailureType = 11 // NotInitialized
	FailureFirmwareError     FailureType = 99 // FirmwareError
)

// Message is a serializable message exchanged with the host.
type Message interface {
	ID() MessageType
	Serialize([]byte) []byte
}

// Payload is a deserializable message body.
type Payload interface {
	Parse([]byte) error
}

// makeFrame appends the frame header for m followed by its payload. The
// payload length is patched in once the payload has been appended.
func makeFrame(out []byte, m Message, payload func([]byte) []byte) []byte {
	start := len(out)
	out = Append(out, "##")
	out = Append16(out, m.ID())
	out = Append32(out, 0)
	out = payload(out)
	Put32(out[start+4:], len(out)-start-HeaderLength)
	return out
}

// ParseFrame validates a frame and returns its message type and payload.
// The returned payload aliases buf. Trailing bytes past the declared
// length are ignored; report transports pad the final report.
func ParseFrame(buf []byte) (MessageType, []byte, error) {
	if len(buf) < HeaderLength {
		return 0, nil, ErrShortFrame
	} else if buf[0] != '#' || buf[1] != '#' {
		return 0, nil, ErrBadMagic
	}

	msgType, msgLen := ParseHeader(buf)
	switch {
	case msgLen > MaxPayloadLength:
		return msgType, nil, ErrFrameTooLarge
	case len(buf)-HeaderLength < msgLen:
		return msgType, nil, ErrTruncatedFrame
	}

	return msgType, buf[HeaderLength : HeaderLength+msgLen], nil
}

// ParseMessage parses a frame into rsp, failing if the frame holds a
// message of another type.
func ParseMessage(want MessageType, rsp Payload, buf []byte) error {
	msgType, payload, err := ParseFrame(buf)
	if err != nil {
		return err
	} else if msgType != want {
		return Errorf("received %v while expecting %v", msgType, want)
	}

	return rsp.Parse(payload)
}

package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Protobuf field numbers from the host protocol's messages.proto.
const (
	fieldPassphrase = 1

	fieldFailureCode    = 1
	fieldFailureMessage = 2

	fieldFeaturesVendor               = 1
	fieldFeaturesDeviceID             = 6
	fieldFeaturesPassphraseProtection = 8
	fieldFeaturesLabel                = 10
	fieldFeaturesInitialized          = 12
	fieldFeaturesPassphraseCached     = 18

	fieldSuccessMessage = 1

	fieldApplySettingsLabel         = 2
	fieldApplySettingsUsePassphrase = 3
)

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

// parseFields walks a protobuf payload and calls field for each entry.
// Field values the callback doesn't consume are skipped.
func parseFields(b []byte, field func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ErrMalformedPayload
		}
		b = b[n:]

		n, err := field(num, typ, b)
		if err != nil {
			return err
		} else if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return ErrMalformedPayload
		}
		b = b[n:]
	}
	return nil
}

// EmptyPayload accepts any payload; unknown fields are skipped.
type EmptyPayload struct{}

func (EmptyPayload) Parse(b []byte) error {
	return parseFields(b, func(protowire.Number, protowire.Type, []byte) (int, error) {
		return 0, nil
	})
}

// PassphraseRequest asks the host to prompt the user for a passphrase.
type PassphraseRequest struct{}

func (PassphraseRequest) ID() MessageType {
	return MessagePassphraseRequest
}

func (p PassphraseRequest) Serialize(out []byte) []byte {
	return makeFrame(out, p, func(b []byte) []byte { return b })
}

// PassphraseAck carries the passphrase entered on the host. After
// parsing, Passphrase aliases the received frame and is unbounded; the
// receiver is responsible for copying at most [MaxPassphraseLength]
// bytes out of it.
type PassphraseAck struct {
	Passphrase []byte
}

func (*PassphraseAck) ID() MessageType {
	return MessagePassphraseAck
}

func (p *PassphraseAck) Serialize(out []byte) []byte {
	return makeFrame(out, p, func(b []byte) []byte {
		b = protowire.AppendTag(b, fieldPassphrase, protowire.BytesType)
		return protowire.AppendBytes(b, p.Passphrase)
	})
}

func (p *PassphraseAck) Parse(b []byte) error {
	p.Passphrase = nil
	return parseFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldPassphrase || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(b)
		p.Passphrase = v
		return n, nil
	})
}

// Cancel aborts the operation in progress.
type Cancel struct{}

func (Cancel) ID() MessageType {
	return MessageCancel
}

func (c Cancel) Serialize(out []byte) []byte {
	return makeFrame(out, c, func(b []byte) []byte { return b })
}

// Initialize starts a new host session. The language and state fields
// of the full message are not used by the device and never sent.
type Initialize struct{}

func (Initialize) ID() MessageType {
	return MessageInitialize
}

func (i Initialize) Serialize(out []byte) []byte {
	return makeFrame(out, i, func(b []byte) []byte { return b })
}

// Failure reports an aborted operation to the host.
type Failure struct {
	Code    FailureType
	Message string
}

func (*Failure) ID() MessageType {
	return MessageFailure
}

func (f *Failure) Serialize(out []byte) []byte {
	return makeFrame(out, f, func(b []byte) []byte {
		if f.Code != 0 {
			b = protowire.AppendTag(b, fieldFailureCode, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(f.Code))
		}
		return appendString(b, fieldFailureMessage, f.Message)
	})
}

func (f *Failure) Parse(b []byte) error {
	*f = Failure{}
	return parseFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldFailureCode && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			f.Code = FailureType(v)
			return n, nil
		case num == fieldFailureMessage && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			f.Message = v
			return n, nil
		}
		return 0, nil
	})
}

// Features describes the device to the host, sent in response to an
// Initialize message.
type Features struct {
	Vendor               string
	DeviceID             string
	Label                string
	PassphraseProtection bool
	PassphraseCached     bool
	Initialized          bool
}

func (*Features) ID() MessageType {
	return MessageFeatures
}

func (f *Features) Serialize(out []byte) []byte {
	return makeFrame(out, f, func(b []byte) []byte {
		b = appendString(b, fieldFeaturesVendor, f.Vendor)
		b = appendString(b, fieldFeaturesDeviceID, f.DeviceID)
		b = appendBool(b, fieldFeaturesPassphraseProtection, f.PassphraseProtection)
		b = appendString(b, fieldFeaturesLabel, f.Label)
		b = appendBool(b, fieldFeaturesInitialized, f.Initialized)
		return appendBool(b, fieldFeaturesPassphraseCached, f.PassphraseCached)
	})
}

//nolint:cyclop
func (f *Features) Parse(b []byte) error {
	*f = Features{}
	return parseFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			switch num {
			case fieldFeaturesVendor:
				f.Vendor = v
			case fieldFeaturesDeviceID:
				f.DeviceID = v
			case fieldFeaturesLabel:
				f.Label = v
			default:
				return 0, nil
			}
			return n, nil

		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			switch num {
			case fieldFeaturesPassphraseProtection:
				f.PassphraseProtection = protowire.DecodeBool(v)
			case fieldFeaturesInitialized:
				f.Initialized = protowire.DecodeBool(v)
			case fieldFeaturesPassphraseCached:
				f.PassphraseCached = protowire.DecodeBool(v)
			default:
				return 0, nil
			}
			return n, nil
		}
		return 0, nil
	})
}

// Success acknowledges a completed operation.
type Success struct {
	Message string
}

func (*Success) ID() MessageType {
	return MessageSuccess
}

func (s *Success) Serialize(out []byte) []byte {
	return makeFrame(out, s, func(b []byte) []byte {
		return appendString(b, fieldSuccessMessage, s.Message)
	})
}

func (s *Success) Parse(b []byte) error {
	*s = Success{}
	return parseFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldSuccessMessage || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeString(b)
		s.Message = v
		return n, nil
	})
}

// GetPublicKey asks for a public key, an operation using the key
// material. The derivation path isn't needed by the device here.
type GetPublicKey struct{}

func (GetPublicKey) ID() MessageType {
	return MessageGetPublicKey
}

func (g GetPublicKey) Serialize(out []byte) []byte {
	return makeFrame(out, g, func(b []byte) []byte { return b })
}

// ClearSession drops the cached session state, including the passphrase.
type ClearSession struct{}

func (ClearSession) ID() MessageType {
	return MessageClearSession
}

func (c ClearSession) Serialize(out []byte) []byte {
	return makeFrame(out, c, func(b []byte) []byte { return b })
}

// ApplySettings changes the persisted device settings. Nil fields are
// left unchanged.
type ApplySettings struct {
	Label         *string
	UsePassphrase *bool
}

func (*ApplySettings) ID() MessageType {
	return MessageApplySettings
}

func (a *ApplySettings) Serialize(out []byte) []byte {
	return makeFrame(out, a, func(b []byte) []byte {
		if a.Label != nil {
			b = protowire.AppendTag(b, fieldApplySettingsLabel, protowire.BytesType)
			b = protowire.AppendString(b, *a.Label)
		}
		if a.UsePassphrase != nil {
			b = appendBool(b, fieldApplySettingsUsePassphrase, *a.UsePassphrase)
		}
		return b
	})
}

func (a *ApplySettings) Parse(b []byte) error {
	*a = ApplySettings{}
	return parseFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldApplySettingsLabel && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			a.Label = &v
			return n, nil
		case num == fieldApplySettingsUsePassphrase && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			use := protowire.DecodeBool(v)
			a.UsePassphrase = &use
			return n, nil
		}
		return 0, nil
	})
}

package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestPassphraseAck(t *testing.T) {
	frame := (&PassphraseAck{Passphrase: []byte("hunter2")}).Serialize(nil)

	var ack PassphraseAck
	err := ParseMessage(MessagePassphraseAck, &ack, frame)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if string(ack.Passphrase) != "hunter2" {
		t.Errorf("%q != %q", ack.Passphrase, "hunter2")
	}
}

func TestPassphraseAckUnbounded(t *testing.T) {
	// Parsing does not bound the passphrase, the receiver does.
	long := bytes.Repeat([]byte("x"), 3*MaxPassphraseLength)
	frame := (&PassphraseAck{Passphrase: long}).Serialize(nil)

	var ack PassphraseAck
	err := ParseMessage(MessagePassphraseAck, &ack, frame)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if !bytes.Equal(ack.Passphrase, long) {
		t.Errorf("passphrase altered during parsing")
	}
}

func TestPassphraseAckSkipsUnknownFields(t *testing.T) {
	// field 2 varint 1, then field 1 "ab"
	payload := []byte{0x10, 0x01, 0x0a, 0x02, 'a', 'b'}

	var ack PassphraseAck
	err := ack.Parse(payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(ack.Passphrase) != "ab" {
		t.Errorf("%q != %q", ack.Passphrase, "ab")
	}
}

func TestMalformedPayload(t *testing.T) {
	for name, payload := range map[string][]byte{
		"truncated tag":    {0x80},
		"truncated string": {0x0a, 0x05, 'a'},
		"bad wire type":    {0x0f},
	} {
		var ack PassphraseAck
		err := ack.Parse(payload)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("%s: expected %v, got %v", name, ErrMalformedPayload, err)
		}
	}

	err := EmptyPayload{}.Parse([]byte{0x0a, 0x05})
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected %v, got %v", ErrMalformedPayload, err)
	}
}

func TestFailure(t *testing.T) {
	frame := (&Failure{Code: FailureActionCancelled, Message: "Passphrase cancelled"}).Serialize(nil)

	var f Failure
	err := ParseMessage(MessageFailure, &f, frame)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if f.Code != FailureActionCancelled || f.Message != "Passphrase cancelled" {
		t.Errorf("unexpected failure: %+v", f)
	}
}

func TestFeatures(t *testing.T) {
	expect := Features{
		Vendor:               "keepkey.com",
		DeviceID:             "0123456789ABCDEF",
		Label:                "test wallet",
		PassphraseProtection: true,
		Initialized:          true,
	}
	frame := expect.Serialize(nil)

	var f Features
	err := ParseMessage(MessageFeatures, &f, frame)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if f != expect {
		t.Errorf("%+v != %+v", f, expect)
	}
}

func TestEmptyMessages(t *testing.T) {
	for _, m := range []Message{PassphraseRequest{}, Cancel{}, Initialize{}, GetPublicKey{}, ClearSession{}} {
		frame := m.Serialize(nil)
		err := ParseMessage(m.ID(), EmptyPayload{}, frame)
		if err != nil {
			t.Errorf("%v: %v", m.ID(), err)
		}
		if len(frame) != HeaderLength {
			t.Errorf("%v: frame length %d", m.ID(), len(frame))
		}
	}
}

func TestApplySettings(t *testing.T) {
	off := false
	frame := (&ApplySettings{UsePassphrase: &off}).Serialize(nil)

	var a ApplySettings
	err := ParseMessage(MessageApplySettings, &a, frame)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if a.Label != nil {
		t.Errorf("label should be unset, got %q", *a.Label)
	}
	if a.UsePassphrase == nil || *a.UsePassphrase {
		t.Errorf("use_passphrase should be set to false")
	}

	err = ParseMessage(MessageSuccess, &Success{}, frame)
	if err == nil {
		t.Errorf("ApplySettings parsed as Success")
	}
}

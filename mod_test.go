package passphrase

import (
	"testing"
)

// CanceledByInit exposes the pending re-initialize indication.
func (g *Gate) CanceledByInit() bool {
	return g.canceledByInit
}

func TestTruncateUTF8(t *testing.T) {
	for _, tc := range []struct {
		in     string
		n      int
		expect string
	}{
		{"abcdef", 3, "abc"},
		{"abé", 3, "ab"},
		{"abé", 4, "abé"},
		{"a€", 2, "a"},
		{"a€", 3, "a"},
		{"a\U0001F511", 4, "a"},
		{"a\U0001F511", 5, "a\U0001F511"},
		{"\xff\xff\xff", 2, "\xff\xff"},
	} {
		got := string(truncateUTF8([]byte(tc.in), tc.n))
		if got != tc.expect {
			t.Errorf("truncateUTF8(%q, %d) = %q, expected %q", tc.in, tc.n, got, tc.expect)
		}
	}
}

func TestInfoBoundedCopy(t *testing.T) {
	long := make([]byte, 2*MaxPassphraseLength)
	for i := range long {
		long[i] = 'x'
	}

	var info Info
	if info.setSecret(long, OverflowReject) {
		t.Errorf("oversized passphrase should be rejected")
	}
	if info.length != 0 {
		t.Errorf("rejected passphrase was copied: %d bytes", info.length)
	}

	if !info.setSecret(long, OverflowTruncate) {
		t.Fatalf("oversized passphrase should be truncated")
	}
	if info.length != MaxPassphraseLength {
		t.Errorf("truncated to %d bytes, expected %d", info.length, MaxPassphraseLength)
	}

	if _, ok := info.Passphrase(); ok {
		t.Errorf("passphrase readable before the outcome is RECEIVED")
	}
	info.Outcome = OutcomeReceived
	if p, _ := info.Passphrase(); len(p) != MaxPassphraseLength {
		t.Errorf("passphrase length %d", len(p))
	}

	info.Wipe()
	if p, _ := info.Passphrase(); p != "" {
		t.Errorf("wiped passphrase still readable: %q", p)
	}
	for _, b := range info.secret {
		if b != 0 {
			t.Fatalf("secret not zeroed")
		}
	}
}

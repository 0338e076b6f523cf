// Package passphrase gates a hardware wallet's key material behind an
// optional user passphrase.
//
// When passphrase protection is enabled in the device configuration,
// key material may only be used once the user has entered a passphrase
// on the connected host. [Gate.Protect] asks the host for the
// passphrase, waits for it, and caches it for the rest of the session
// so later operations don't prompt again.
//
// # Interaction
//
// The device sends a PassphraseRequest and then waits indefinitely for
// one of three short messages from the host:
//
//   - PassphraseAck carries the passphrase; access is granted.
//   - Cancel aborts the prompt; access is denied.
//   - Initialize starts a new host session; access is denied and the
//     device re-initializes instead of reporting a failure.
//
// Any other message arriving during the wait is ignored, so unrelated
// traffic cannot dismiss a prompt the user is still typing into.
//
// A denied [Result] is handed to [Gate.ReportCancellation] together with
// the failure code fitting the aborted operation:
//
//	result, err := gate.Protect(ctx)
//	if err != nil {
//		return err
//	} else if !result.OK() {
//		return gate.ReportCancellation(ctx, passphrase.FailureActionCancelled, "Passphrase cancelled")
//	}
//
// # Channels
//
// Messages are exchanged through a [Channel]. Two are provided: an
// [HTTPChannel] talking to a trezord-style HTTP relay, and a
// [ReportChannel] carrying frames as 64 byte reports over any
// [io.ReadWriter], such as an emulator socket.
//
// # Passphrase length
//
// Passphrases are limited to [MaxPassphraseLength] bytes. Longer
// acknowledgements are rejected by default; see [OverflowPolicy].
package passphrase

// checkErr squelches a return value if an error is given.
func checkErr[V any](value V, err error) (V, error) { //nolint:ireturn
	if err != nil {
		var zero V
		return zero, err
	}
	return value, nil
}

package passphrase

import (
	"cmp"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	wire "github.com/nholstein/passphrase/internal"
)

// ReportChannel is a [Channel] which carries frames as a sequence of
// fixed 64 byte reports, as exchanged over USB HID or with a device
// emulator over UDP. Each report is written with a single Write call.
//
// If the underlying connection supports read and write deadlines (e.g.
// a [net.Conn]) then reads and writes are interrupted when their
// context ends.
type ReportChannel struct {
	rw     io.ReadWriter
	rlock  sync.Mutex
	wlock  sync.Mutex
	report [wire.ReportSize]byte
}

// NewReportChannel creates a [ReportChannel] over rw.
func NewReportChannel(rw io.ReadWriter) *ReportChannel {
	return &ReportChannel{rw: rw}
}

// Write sends the frame as one or more reports.
func (c *ReportChannel) Write(ctx context.Context, frame []byte) error {
	c.wlock.Lock()
	defer c.wlock.Unlock()

	if d, ok := c.rw.(interface{ SetWriteDeadline(time.Time) error }); ok {
		defer watchDeadline(ctx, d.SetWriteDeadline)()
	}

	reports := wire.AppendReports(nil, frame)
	for len(reports) > 0 {
		n := copy(c.report[:], reports)
		_, err := c.rw.Write(c.report[:n])
		if err != nil {
			return ctxErrOr(ctx, err)
		}
		reports = reports[n:]
	}

	return nil
}

// ReadTiny reads reports until a complete frame is reassembled. Reports
// which do not belong to a frame are skipped.
func (c *ReportChannel) ReadTiny(ctx context.Context) ([]byte, error) {
	c.rlock.Lock()
	defer c.rlock.Unlock()

	if d, ok := c.rw.(interface{ SetReadDeadline(time.Time) error }); ok {
		defer watchDeadline(ctx, d.SetReadDeadline)()
	}

	for {
		frame, err := wire.ReadReports(c.rw)
		var logicErr wire.LogicError
		if errors.As(err, &logicErr) {
			continue
		} else if err != nil {
			return nil, ctxErrOr(ctx, err)
		}

		return frame, nil
	}
}

// ctxErrOr prefers the context's error over the I/O error it caused.
// A deadline only ever comes from ctx, so an expired deadline waits for
// ctx to observe it too.
func ctxErrOr(ctx context.Context, err error) error {
	if _, ok := ctx.Deadline(); ok && errors.Is(err, os.ErrDeadlineExceeded) {
		<-ctx.Done()
	}
	return cmp.Or(ctx.Err(), err)
}

// watchDeadline applies the context's deadline and interrupts the I/O
// once the context is canceled. The returned function clears the
// deadline again.
func watchDeadline(ctx context.Context, setDeadline func(time.Time) error) func() {
	deadline, _ := ctx.Deadline()
	_ = setDeadline(deadline)

	stop := context.AfterFunc(ctx, func() {
		_ = setDeadline(time.Unix(1, 0))
	})

	return func() {
		stop()
		_ = setDeadline(time.Time{})
	}
}

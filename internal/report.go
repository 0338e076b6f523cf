package wire

import (
	"io"
)

// ReportSize is the fixed size of a HID report, and of an emulator
// datagram. Each report begins with a '?' marker, the first report of a
// frame continues with the '##' frame magic.
const ReportSize = 64

// AppendReports splits frame into [ReportSize] byte reports, zero
// padding the final report.
func AppendReports(out, frame []byte) []byte {
	for first := true; first || len(frame) > 0; first = false {
		var report [ReportSize]byte
		report[0] = '?'
		n := copy(report[1:], frame)
		frame = frame[n:]
		out = Append(out, report[:])
	}
	return out
}

// ReadReports reads reports from r and reassembles the next frame.
// Reports preceding the start of a frame are discarded to resynchronize
// with the sender. A continuation report lacking its '?' marker fails
// with [ErrBadReport].
func ReadReports(r io.Reader) ([]byte, error) {
	var report [ReportSize]byte
	for {
		_, err := io.ReadFull(r, report[:])
		if err != nil {
			return nil, err
		}
		if report[0] == '?' && report[1] == '#' && report[2] == '#' {
			break
		}
	}

	_, msgLen := ParseHeader(report[1:])
	if msgLen > MaxPayloadLength {
		return nil, ErrFrameTooLarge
	}

	total := HeaderLength + msgLen
	frame := make([]byte, 0, total+ReportSize)
	frame = Append(frame, report[1:])
	for len(frame) < total {
		_, err := io.ReadFull(r, report[:])
		if err != nil {
			return nil, err
		} else if report[0] != '?' {
			return nil, ErrBadReport
		}
		frame = Append(frame, report[1:])
	}

	return frame[:total], nil
}

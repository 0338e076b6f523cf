package wire

import (
	"encoding/binary"
)

func Append[V ~[]byte | ~string](b []byte, v V) []byte {
	return append(b, v...)
}

func Append16[V ~uint16 | ~int16 | ~int](b []byte, v V) []byte {
	return binary.BigEndian.AppendUint16(b, uint16(v))
}

func Append32[V ~uint32 | ~int32 | ~int](b []byte, v V) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

func Put32[V ~uint32 | ~int32 | ~int](b []byte, v V) {
	binary.BigEndian.PutUint32(b, uint32(v))
}

func Parse16[V ~uint16 | ~int16](b []byte, o int, v *V) {
	*v = V(uint16(b[o])<<8 | uint16(b[o+1]))
}

func Parse32[V ~uint32 | ~int32](b []byte, o int, v *V) {
	*v = V(uint32(b[o])<<24 | uint32(b[o+1])<<16 | uint32(b[o+2])<<8 | uint32(b[o+3]))
}

// ParseHeader splits a frame header into its message type and declared
// payload length. The caller must ensure b holds at least HeaderLength
// bytes.
func ParseHeader(b []byte) (MessageType, int) {
	// Two bytes of magic, 2 byte message type and 4 byte length
	var (
		t MessageType
		l uint32
	)
	Parse16(b, 2, &t)
	Parse32(b, 4, &l)
	return t, int(l)
}

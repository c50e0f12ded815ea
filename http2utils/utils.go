// Package http2utils collects the small byte-order and padding helpers the
// frame codec needs: big-endian 24/32-bit packing, the PADDED flag's
// leading pad-length octet, and the unsafe string/byte conversions the
// fasthttp ecosystem favors over a copy.
package http2utils

import (
	"crypto/rand"
	"errors"
	"reflect"
	"unsafe"

	"github.com/valyala/fastrand"
)

func Uint24ToBytes(b []byte, n uint32) {
	_ = b[2] // bound checking
	b[0] = byte(n >> 16)
	b[1] = byte(n >> 8)
	b[2] = byte(n)
}

func BytesToUint24(b []byte) uint32 {
	_ = b[2] // bound checking
	return uint32(b[0])<<16 |
		uint32(b[1])<<8 |
		uint32(b[2])
}

func AppendUint24Bytes(dst []byte, n uint32) []byte {
	dst = append(dst, byte(n>>16))
	dst = append(dst, byte(n>>8))
	dst = append(dst, byte(n))
	return dst
}

func AppendUint32Bytes(dst []byte, n uint32) []byte {
	dst = append(dst, byte(n>>24))
	dst = append(dst, byte(n>>16))
	dst = append(dst, byte(n>>8))
	dst = append(dst, byte(n))
	return dst
}

func Uint32ToBytes(b []byte, n uint32) {
	_ = b[3] // bound checking
	b[0] = byte(n >> 24)
	b[1] = byte(n >> 16)
	b[2] = byte(n >> 8)
	b[3] = byte(n)
}

func BytesToUint32(b []byte) uint32 {
	_ = b[3] // bound checking
	n := uint32(b[0])<<24 |
		uint32(b[1])<<16 |
		uint32(b[2])<<8 |
		uint32(b[3])
	return n
}

func EqualsFold(a, b []byte) bool {
	n := len(a)
	if n != len(b) {
		return false
	}
	for i := 0; i < n; i++ {
		if a[i]|0x20 != b[i]|0x20 {
			return false
		}
	}
	return true
}

func Resize(b []byte, neededLen int) []byte {
	b = b[:cap(b)]

	if n := neededLen - len(b); n > 0 {
		b = append(b, make([]byte, n)...)
	}

	return b[:neededLen]
}

// ErrPadding is returned by CutPadding when the pad_length octet is not
// smaller than the remaining payload it claims to pad.
var ErrPadding = errors.New("http2utils: pad length exceeds payload")

// CutPadding strips the PADDED flag's leading pad-length octet and trailing
// padding octets from payload, returning the data in between.
//
// A pad_length equal to len(payload)-1 (zero data octets) is accepted: RFC
// 7540 Section 6.1 doesn't forbid an empty DATA/HEADERS/PUSH_PROMISE
// payload once padding is removed, only pad_length that would read past the
// end of the frame.
//
// https://tools.ietf.org/html/rfc7540#section-6.1
func CutPadding(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, ErrPadding
	}

	pad := int(payload[0])
	if pad >= len(payload) {
		return nil, ErrPadding
	}

	return payload[1 : len(payload)-pad], nil
}

// AddPadding appends a random amount (8..254 octets) of padding to b and
// returns the extended slice with the pad-length octet prepended. n is the
// size of the whole added region, pad-length octet included, so the octet
// written is n-1, not n.
func AddPadding(b []byte) []byte {
	n := int(fastrand.Uint32n(256-9)) + 9
	nn := len(b)

	b = Resize(b, nn+n)
	copy(b[1:], b[:nn])

	b[0] = uint8(n - 1)

	rand.Read(b[nn+1 : nn+n])

	return b
}

func FastBytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

func FastStringToBytes(s string) []byte {
	sh := (*reflect.StringHeader)(unsafe.Pointer(&s))
	bh := reflect.SliceHeader{
		Data: sh.Data,
		Len:  sh.Len,
		Cap:  sh.Len,
	}

	return *(*[]byte)(unsafe.Pointer(&bh))
}

package http2

import (
	"fmt"

	"github.com/domsolutions/h2codec/http2utils"
)

const FrameGoAway FrameType = 0x7

var _ Frame = &GoAway{}

// GoAway initiates a graceful shutdown or signals a fatal connection error,
// naming the highest stream id the sender processed.
//
// https://tools.ietf.org/html/rfc7540#section-6.8
type GoAway struct {
	stream uint32
	code   ErrorCode
	data   []byte // additional debug data
}

func (ga *GoAway) Error() string {
	return fmt.Sprintf("last stream=%d, code=%s, data=%q", ga.stream, ga.code, ga.data)
}

func (ga *GoAway) Type() FrameType {
	return FrameGoAway
}

// Reset resets ga.
func (ga *GoAway) Reset() {
	ga.stream = 0
	ga.code = 0
	ga.data = ga.data[:0]
}

// CopyTo copies ga to other.
func (ga *GoAway) CopyTo(other *GoAway) {
	other.stream = ga.stream
	other.code = ga.code
	other.data = append(other.data[:0], ga.data...)
}

// Code returns the error code.
func (ga *GoAway) Code() ErrorCode {
	return ga.code
}

// SetCode sets the error code.
func (ga *GoAway) SetCode(code ErrorCode) {
	ga.code = code
}

// Stream returns the last stream id the sender processed.
func (ga *GoAway) Stream() uint32 {
	return ga.stream
}

// SetStream sets the last stream id the sender processed.
func (ga *GoAway) SetStream(stream uint32) {
	ga.stream = stream & (1<<31 - 1)
}

// Data returns the additional debug data, if any.
func (ga *GoAway) Data() []byte {
	return ga.data
}

// SetData sets the additional debug data.
func (ga *GoAway) SetData(b []byte) {
	ga.data = append(ga.data[:0], b...)
}

func (ga *GoAway) Deserialize(fr *FrameHeader) error {
	if fr.Stream() != 0 {
		return newFrameError(KindProtocol, fr, errNonZeroStream)
	}

	if len(fr.payload) < 8 {
		return newFrameError(KindFrameSize, fr, ErrMissingBytes)
	}

	ga.stream = http2utils.BytesToUint32(fr.payload[:4]) & (1<<31 - 1)
	ga.code = ErrorCode(http2utils.BytesToUint32(fr.payload[4:8]))

	if len(fr.payload) > 8 {
		ga.data = append(ga.data[:0], fr.payload[8:]...)
	} else {
		ga.data = ga.data[:0]
	}

	return nil
}

func (ga *GoAway) Serialize(fr *FrameHeader) {
	fr.payload = http2utils.AppendUint32Bytes(fr.payload[:0], ga.stream&(1<<31-1))
	fr.payload = http2utils.AppendUint32Bytes(fr.payload, uint32(ga.code))
	fr.payload = append(fr.payload, ga.data...)
}

package http2

import (
	"github.com/domsolutions/h2codec/http2utils"
)

const FrameResetStream FrameType = 0x3

var _ Frame = &RstStream{}

// RstStream terminates a stream abnormally.
//
// https://tools.ietf.org/html/rfc7540#section-6.4
type RstStream struct {
	code ErrorCode
}

func (rst *RstStream) Type() FrameType {
	return FrameResetStream
}

// Code returns the error code.
func (rst *RstStream) Code() ErrorCode {
	return rst.code
}

// SetCode sets the error code.
func (rst *RstStream) SetCode(code ErrorCode) {
	rst.code = code
}

// Reset resets rst.
func (rst *RstStream) Reset() {
	rst.code = 0
}

// CopyTo copies rst to r.
func (rst *RstStream) CopyTo(r *RstStream) {
	r.code = rst.code
}

// Error builds an error describing why the stream was reset.
func (rst *RstStream) Error() error {
	return NewError(rst.code, "")
}

func (rst *RstStream) Deserialize(fr *FrameHeader) error {
	if fr.Stream() == 0 {
		return newFrameError(KindProtocol, fr, errZeroStream)
	}

	if len(fr.payload) != 4 {
		return newFrameError(KindFrameSize, fr, ErrMissingBytes)
	}

	rst.code = ErrorCode(http2utils.BytesToUint32(fr.payload))

	return nil
}

func (rst *RstStream) Serialize(fr *FrameHeader) {
	fr.payload = http2utils.AppendUint32Bytes(fr.payload[:0], uint32(rst.code))
}

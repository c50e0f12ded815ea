package http2

import (
	"errors"
	"fmt"
)

// ErrorCode is the 32-bit error code carried by RST_STREAM and GOAWAY
// frames. Codes outside the well-known range are not rejected: they are
// passed through to the caller untouched.
//
// https://tools.ietf.org/html/rfc7540#section-7
type ErrorCode uint32

const (
	NoError            ErrorCode = 0x0
	ProtocolError      ErrorCode = 0x1
	InternalError      ErrorCode = 0x2
	FlowControlError   ErrorCode = 0x3
	SettingsTimeout    ErrorCode = 0x4
	StreamClosedError  ErrorCode = 0x5
	FrameSizeErrorCode ErrorCode = 0x6
	RefusedStreamError ErrorCode = 0x7
	CancelError        ErrorCode = 0x8
	CompressionError   ErrorCode = 0x9
	ConnectError       ErrorCode = 0xa
	EnhanceYourCalm    ErrorCode = 0xb
	InadequateSecurity ErrorCode = 0xc
	HTTP11Required     ErrorCode = 0xd
)

var errorCodeNames = map[ErrorCode]string{
	NoError:            "NO_ERROR",
	ProtocolError:      "PROTOCOL_ERROR",
	InternalError:      "INTERNAL_ERROR",
	FlowControlError:   "FLOW_CONTROL_ERROR",
	SettingsTimeout:    "SETTINGS_TIMEOUT",
	StreamClosedError:  "STREAM_CLOSED",
	FrameSizeErrorCode: "FRAME_SIZE_ERROR",
	RefusedStreamError: "REFUSED_STREAM",
	CancelError:        "CANCEL",
	CompressionError:   "COMPRESSION_ERROR",
	ConnectError:       "CONNECT_ERROR",
	EnhanceYourCalm:    "ENHANCE_YOUR_CALM",
	InadequateSecurity: "INADEQUATE_SECURITY",
	HTTP11Required:     "HTTP_1_1_REQUIRED",
}

func (c ErrorCode) String() string {
	if s, ok := errorCodeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN_ERROR(0x%x)", uint32(c))
}

// DecodeErrorKind classifies a codec-level decode failure. It mirrors the
// error taxonomy a receiver must distinguish in order to react correctly:
// most kinds are connection-fatal, UnknownType alone is not.
type DecodeErrorKind int

const (
	// KindTruncated: fewer octets were available than the declared length
	// promised, at a point other than a clean frame boundary.
	KindTruncated DecodeErrorKind = iota
	// KindFrameSize: declared length violates a fixed-size invariant or
	// exceeds the negotiated MAX_FRAME_SIZE.
	KindFrameSize
	// KindMalformedPadding: pad_length is not smaller than the remaining
	// payload it claims to pad.
	KindMalformedPadding
	// KindProtocol: a shape invariant specific to the frame type was
	// violated (stream id zero where non-zero is required, and so on).
	KindProtocol
	// KindHpack: the HPACK engine rejected a header block fragment.
	KindHpack
	// KindUnknownType: the frame type octet is outside the ten known
	// types. Non-fatal: RFC 7540 requires these to be ignored.
	KindUnknownType
	// KindTransport: the underlying transport failed independently of
	// frame shape (read/write error from the network).
	KindTransport
)

func (k DecodeErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindFrameSize:
		return "frame size error"
	case KindMalformedPadding:
		return "malformed padding"
	case KindProtocol:
		return "protocol error"
	case KindHpack:
		return "hpack error"
	case KindUnknownType:
		return "unknown type"
	case KindTransport:
		return "transport error"
	default:
		return "unknown kind"
	}
}

// Fatal reports whether an error of kind k should tear down the connection.
// UnknownType is the sole recoverable kind: the caller discards the frame's
// payload and keeps reading.
func (k DecodeErrorKind) Fatal() bool {
	return k != KindUnknownType
}

// FrameError is returned by the receive path when a frame fails to decode.
// Header fields parsed before the failure (type, flags, stream) are always
// populated when HeaderOK is true, so a caller that needs to build a
// compliant GOAWAY has something to report even when the payload itself
// never made it through.
type FrameError struct {
	Kind     DecodeErrorKind
	Type     FrameType
	Flags    FrameFlags
	Stream   uint32
	HeaderOK bool
	Err      error
}

func (e *FrameError) Error() string {
	if e.HeaderOK {
		return fmt.Sprintf("http2: %s frame (stream=%d): %s: %v", e.Type, e.Stream, e.Kind, e.Err)
	}
	return fmt.Sprintf("http2: %s: %v", e.Kind, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// Fatal reports whether e should tear down the connection.
func (e *FrameError) Fatal() bool {
	return e.Kind.Fatal()
}

func newFrameError(kind DecodeErrorKind, frh *FrameHeader, err error) *FrameError {
	fe := &FrameError{Kind: kind, Err: err}
	if frh != nil {
		fe.Type = frh.kind
		fe.Flags = frh.flags
		fe.Stream = frh.stream
		fe.HeaderOK = true
	}
	return fe
}

// NewError builds a plain error carrying an RFC 7540 error code, the shape
// RstStream.Error uses to report why a stream was torn down.
func NewError(code ErrorCode, msg string) error {
	if msg == "" {
		return fmt.Errorf("http2: %s", code)
	}
	return fmt.Errorf("http2: %s: %s", code, msg)
}

var (
	// ErrMissingBytes is returned when a frame's payload length differs
	// from the fixed size its type requires, or is below the minimum the
	// type needs.
	ErrMissingBytes = errors.New("http2: missing bytes in payload")
	// ErrUnknowFrameType is returned by FrameHeader.ReadFrom when the type
	// octet doesn't match any of the ten known frame types.
	ErrUnknowFrameType = errors.New("http2: unknown frame type")
	// ErrPayloadExceeds is returned when a frame's declared length exceeds
	// the negotiated MAX_FRAME_SIZE.
	ErrPayloadExceeds = errors.New("http2: payload exceeds negotiated max frame size")

	errZeroStream        = errors.New("http2: frame requires a non-zero stream id")
	errNonZeroStream     = errors.New("http2: frame requires stream id zero")
	errSettingsAckLength = errors.New("http2: SETTINGS ack must carry an empty payload")
	errSettingsLength    = errors.New("http2: SETTINGS payload length is not a multiple of 6")
	errWindowUpdateZero  = errors.New("http2: window increment of 0 is invalid")
	errPushPromiseStream = errors.New("http2: promised stream id must be even and non-zero")
)

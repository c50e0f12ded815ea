package http2

import (
	"bufio"
	"io"
	"sync"

	"github.com/domsolutions/h2codec/http2utils"
)

const (
	// DefaultFrameSize is the size in bytes of a frame header.
	//
	// http://httpwg.org/specs/rfc7540.html#FrameHeader
	DefaultFrameSize = 9

	// DefaultMaxFrameSize is the MAX_FRAME_SIZE default every connection
	// starts with before SETTINGS negotiates anything larger.
	//
	// https://httpwg.org/specs/rfc7540.html#SETTINGS_MAX_FRAME_SIZE
	DefaultMaxFrameSize = 1 << 14

	// AbsoluteMaxFrameSize is the largest length a 24-bit frame length
	// field can ever carry, regardless of negotiation.
	AbsoluteMaxFrameSize = 1<<24 - 1

	// Frame flags. The same bit is reused across frame types with
	// different meaning; Flags() is always interpreted by the owning
	// Frame, never by FrameHeader itself.
	FlagAck        FrameFlags = 0x1
	FlagEndStream  FrameFlags = 0x1
	FlagEndHeaders FrameFlags = 0x4
	FlagPadded     FrameFlags = 0x8
	FlagPriority   FrameFlags = 0x20
)

var frameHeaderPool = sync.Pool{
	New: func() interface{} {
		return &FrameHeader{}
	},
}

// FrameHeader is the 9-octet frame header plus the payload bytes and the
// decoded Frame body that travel underneath it.
//
// Use AcquireFrameHeader instead of allocating a FrameHeader directly, and
// ReleaseFrameHeader to return it (and its body) to the pool.
//
// A FrameHeader instance MUST NOT be used from more than one goroutine: the
// codec is single-threaded and cooperative, matching one HTTP/2 connection
// direction at a time.
//
// https://tools.ietf.org/html/rfc7540#section-4.1
type FrameHeader struct {
	length   int        // 24 bits
	kind     FrameType  // 8 bits
	flags    FrameFlags // 8 bits
	reserved bool       // top bit of the stream id octets, written on send only if set
	stream   uint32     // 31 bits

	maxLen uint32

	rawHeader [DefaultFrameSize]byte
	payload   []byte

	fr Frame
}

// AcquireFrameHeader gets a FrameHeader from the pool.
func AcquireFrameHeader() *FrameHeader {
	frh := frameHeaderPool.Get().(*FrameHeader)
	frh.Reset()
	return frh
}

// ReleaseFrameHeader resets frh's body, if any, and returns it and frh to
// their pools. frh's own fields are left as they are until the next
// AcquireFrameHeader resets them.
func ReleaseFrameHeader(frh *FrameHeader) {
	ReleaseFrame(frh.fr)
	frh.fr = nil
	frameHeaderPool.Put(frh)
}

// Reset resets header and payload values. A non-zero maxLen is left
// untouched so a reader loop doesn't have to renegotiate MAX_FRAME_SIZE on
// every frame; a zero maxLen is set to DefaultMaxFrameSize.
func (frh *FrameHeader) Reset() {
	frh.kind = 0
	frh.flags = 0
	frh.reserved = false
	frh.stream = 0
	frh.length = 0
	if frh.maxLen == 0 {
		frh.maxLen = DefaultMaxFrameSize
	}
	frh.fr = nil
	frh.payload = frh.payload[:0]
}

// Type returns the frame type (https://httpwg.org/specs/rfc7540.html#Frame_types).
func (frh *FrameHeader) Type() FrameType {
	return frh.kind
}

// Flags returns the raw flags octet. Its meaning depends on Type.
func (frh *FrameHeader) Flags() FrameFlags {
	return frh.flags
}

// SetFlags overwrites the flags octet.
func (frh *FrameHeader) SetFlags(flags FrameFlags) {
	frh.flags = flags
}

// Stream returns the stream id of the current frame (31 bits; the reserved
// bit is never included).
func (frh *FrameHeader) Stream() uint32 {
	return frh.stream
}

// SetStream sets the stream id on the current frame. The value is masked to
// 31 bits; use SetReserved to control the top bit explicitly.
func (frh *FrameHeader) SetStream(stream uint32) {
	frh.stream = stream & (1<<31 - 1)
}

// Reserved reports the value of the top bit of the stream identifier field
// as it was received. RFC 7540 requires senders to set it to zero and
// receivers to ignore it; the codec preserves it only for diagnostics.
func (frh *FrameHeader) Reserved() bool {
	return frh.reserved
}

// SetReserved sets the top bit of the stream identifier field on send.
func (frh *FrameHeader) SetReserved(v bool) {
	frh.reserved = v
}

// Len returns the payload length.
func (frh *FrameHeader) Len() int {
	return frh.length
}

// MaxLen returns the negotiated MAX_FRAME_SIZE that ReadFrom checks incoming
// payload lengths against. WriteTo does not check it.
func (frh *FrameHeader) MaxLen() uint32 {
	return frh.maxLen
}

// SetMaxLen sets the negotiated MAX_FRAME_SIZE used to validate incoming
// frames on the next ReadFrom call. 0 disables the check.
func (frh *FrameHeader) SetMaxLen(n uint32) {
	frh.maxLen = n
}

func (frh *FrameHeader) parseValues(header []byte) {
	frh.length = int(http2utils.BytesToUint24(header[:3]))
	frh.kind = FrameType(header[3])
	frh.flags = FrameFlags(header[4])

	raw := http2utils.BytesToUint32(header[5:])
	frh.reserved = raw&0x80000000 != 0
	frh.stream = raw & (1<<31 - 1)
}

func (frh *FrameHeader) parseHeader(header []byte) {
	http2utils.Uint24ToBytes(header[:3], uint32(frh.length))
	header[3] = byte(frh.kind)
	header[4] = byte(frh.flags)

	raw := frh.stream & (1<<31 - 1)
	if frh.reserved {
		raw |= 0x80000000
	}
	http2utils.Uint32ToBytes(header[5:], raw)
}

// ReadFrameFrom reads one frame using the default MAX_FRAME_SIZE.
func ReadFrameFrom(br *bufio.Reader) (*FrameHeader, error) {
	return ReadFrameFromWithSize(br, DefaultMaxFrameSize)
}

// ReadFrameFromWithSize reads one frame, rejecting payloads longer than max.
func ReadFrameFromWithSize(br *bufio.Reader, max uint32) (*FrameHeader, error) {
	frh := AcquireFrameHeader()
	frh.maxLen = max

	_, err := frh.ReadFrom(br)
	if err != nil {
		ReleaseFrameHeader(frh)
		return nil, err
	}

	return frh, nil
}

// ReadFrom reads a single frame from br: the 9-octet header, then its
// payload, then dispatches to the matching Frame's Deserialize.
//
// A clean connection close (0 bytes read exactly at the start of a frame)
// is reported as io.EOF. Any other short read is reported as a
// *FrameError with Kind KindTruncated, since it happened mid-frame rather
// than at a frame boundary.
//
// https://tools.ietf.org/html/rfc7540#section-4.1
func (frh *FrameHeader) ReadFrom(br *bufio.Reader) (int64, error) {
	header := frh.rawHeader[:]

	n, err := io.ReadFull(br, header)
	if err != nil {
		if err == io.EOF {
			return int64(n), io.EOF
		}
		return int64(n), newFrameError(KindTruncated, nil, err)
	}

	rn := int64(n)

	frh.parseValues(header)

	if frh.kind > maxFrameType {
		// UnknownType is non-fatal: discard the payload so the stream
		// stays aligned for the next frame, then let the caller decide
		// whether to keep reading.
		if frh.length > 0 {
			discarded, _ := io.CopyN(io.Discard, br, int64(frh.length))
			rn += discarded
		}
		return rn, newFrameError(KindUnknownType, frh, ErrUnknowFrameType)
	}

	if err := frh.checkLen(); err != nil {
		return rn, newFrameError(KindFrameSize, frh, err)
	}

	if frh.length > 0 {
		frh.payload = http2utils.Resize(frh.payload, frh.length)

		n, err = io.ReadFull(br, frh.payload)
		rn += int64(n)
		if err != nil {
			return rn, newFrameError(KindTruncated, frh, err)
		}
	} else {
		frh.payload = frh.payload[:0]
	}

	frh.fr = AcquireFrame(frh.kind)

	if err := frh.fr.Deserialize(frh); err != nil {
		return rn, err
	}

	return rn, nil
}

// WriteTo serializes the frame body, recomputes the header from it, and
// writes header+payload to w. Short writes are not retried, here or by
// bufio.Writer: a failed or short write to the underlying transport comes
// back as an error from w.Write or from the caller's Flush.
func (frh *FrameHeader) WriteTo(w *bufio.Writer) (wb int64, err error) {
	frh.fr.Serialize(frh)

	frh.length = len(frh.payload)
	frh.parseHeader(frh.rawHeader[:])

	n, err := w.Write(frh.rawHeader[:])
	if err != nil {
		return int64(n), err
	}
	wb += int64(n)

	n, err = w.Write(frh.payload)
	wb += int64(n)

	return wb, err
}

// Body returns the decoded Frame carried under this header.
func (frh *FrameHeader) Body() Frame {
	return frh.fr
}

// SetBody attaches fr as the body to serialize on the next WriteTo call.
func (frh *FrameHeader) SetBody(fr Frame) {
	if fr == nil {
		panic("http2: Body cannot be nil")
	}

	frh.kind = fr.Type()
	frh.fr = fr
}

func (frh *FrameHeader) setPayload(payload []byte) {
	frh.payload = append(frh.payload[:0], payload...)
}

func (frh *FrameHeader) checkLen() error {
	if frh.maxLen != 0 && frh.length > int(frh.maxLen) {
		return ErrPayloadExceeds
	}
	return nil
}

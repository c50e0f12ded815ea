package http2

import (
	"github.com/domsolutions/h2codec/http2utils"
)

const FrameHeaders FrameType = 0x1

var (
	_ Frame            = &Headers{}
	_ FrameWithHeaders = &Headers{}
)

// FrameWithHeaders is implemented by the frame types whose payload carries
// a header block fragment: HEADERS, PUSH_PROMISE and CONTINUATION. The
// codec uses it to bind the raw fragment bytes to the shared HPACK table in
// RecvFrame/SendFrame, independently of each type's own shape
// (de)serialization.
type FrameWithHeaders interface {
	Frame
	// Headers returns the raw (HPACK-compressed) header block fragment.
	Headers() []byte
	// SetHeaders sets the raw header block fragment.
	SetHeaders(b []byte)
	// HeaderFields returns the fields decoded from Headers(), if any.
	HeaderFields() []*HeaderField
	// SetHeaderFields stores the fields decoded from Headers().
	SetHeaderFields(fields []*HeaderField)
	// EndHeaders reports whether this fragment is the last one of its
	// header block: a false value means one or more CONTINUATION frames
	// follow with the rest of the block.
	EndHeaders() bool
}

// Headers opens (or continues to describe) a stream. It optionally carries
// a padding octet count and a priority block ahead of its header block
// fragment.
//
// https://tools.ietf.org/html/rfc7540#section-6.2
type Headers struct {
	padded     bool
	padLength  uint8
	priority   bool
	exclusive  bool
	streamDep  uint32
	weight     uint8
	endStream  bool
	endHeaders bool
	rawHeaders []byte
	fields     []*HeaderField
}

// Reset resets h.
func (h *Headers) Reset() {
	h.padded = false
	h.padLength = 0
	h.priority = false
	h.exclusive = false
	h.streamDep = 0
	h.weight = 0
	h.endStream = false
	h.endHeaders = false
	h.rawHeaders = h.rawHeaders[:0]
	h.fields = h.fields[:0]
}

// CopyTo copies h fields to h2.
func (h *Headers) CopyTo(h2 *Headers) {
	h2.padded = h.padded
	h2.padLength = h.padLength
	h2.priority = h.priority
	h2.exclusive = h.exclusive
	h2.streamDep = h.streamDep
	h2.weight = h.weight
	h2.endStream = h.endStream
	h2.endHeaders = h.endHeaders
	h2.rawHeaders = append(h2.rawHeaders[:0], h.rawHeaders...)
	h2.fields = append(h2.fields[:0], h.fields...)
}

func (h *Headers) Type() FrameType {
	return FrameHeaders
}

// Headers returns the raw header block fragment bytes.
func (h *Headers) Headers() []byte {
	return h.rawHeaders
}

// SetHeaders sets the raw header block fragment.
func (h *Headers) SetHeaders(b []byte) {
	h.rawHeaders = append(h.rawHeaders[:0], b...)
}

// HeaderFields returns the fields HPACK decoded from the raw fragment.
func (h *Headers) HeaderFields() []*HeaderField {
	return h.fields
}

// SetHeaderFields stores fields decoded (or to be encoded) for this frame.
func (h *Headers) SetHeaderFields(fields []*HeaderField) {
	h.fields = fields
}

// EndStream reports the END_STREAM flag.
func (h *Headers) EndStream() bool {
	return h.endStream
}

// SetEndStream sets the END_STREAM flag.
func (h *Headers) SetEndStream(value bool) {
	h.endStream = value
}

// EndHeaders reports the END_HEADERS flag.
func (h *Headers) EndHeaders() bool {
	return h.endHeaders
}

// SetEndHeaders sets the END_HEADERS flag.
func (h *Headers) SetEndHeaders(value bool) {
	h.endHeaders = value
}

// HasPriority reports whether a priority block is present.
func (h *Headers) HasPriority() bool {
	return h.priority
}

// SetPriority attaches a priority block to the frame.
func (h *Headers) SetPriority(exclusive bool, streamDependency uint32, weight uint8) {
	h.priority = true
	h.exclusive = exclusive
	h.streamDep = streamDependency & (1<<31 - 1)
	h.weight = weight
}

// Exclusive returns the priority block's exclusive bit.
func (h *Headers) Exclusive() bool {
	return h.exclusive
}

// StreamDependency returns the priority block's stream dependency.
func (h *Headers) StreamDependency() uint32 {
	return h.streamDep
}

// Weight returns the priority block's weight.
func (h *Headers) Weight() byte {
	return h.weight
}

// Padded reports whether the frame carries (or will carry) padding.
func (h *Headers) Padded() bool {
	return h.padded
}

// SetPadLength enables padding on send with the given pad length.
func (h *Headers) SetPadLength(n uint8) {
	h.padded = true
	h.padLength = n
}

// PadLength returns the pad_length octet as seen on the wire.
func (h *Headers) PadLength() uint8 {
	return h.padLength
}

func (h *Headers) Deserialize(frh *FrameHeader) error {
	if frh.Stream() == 0 {
		return newFrameError(KindProtocol, frh, errZeroStream)
	}

	flags := frh.Flags()
	payload := frh.payload

	h.padded = flags.Has(FlagPadded)
	if h.padded {
		if len(payload) == 0 {
			return newFrameError(KindMalformedPadding, frh, http2utils.ErrPadding)
		}
		h.padLength = payload[0]

		cut, err := http2utils.CutPadding(payload)
		if err != nil {
			return newFrameError(KindMalformedPadding, frh, err)
		}
		payload = cut
	}

	h.priority = flags.Has(FlagPriority)
	if h.priority {
		if len(payload) < 5 { // 4 (dependency+exclusive) + 1 (weight)
			return newFrameError(KindFrameSize, frh, ErrMissingBytes)
		}

		raw := http2utils.BytesToUint32(payload)
		h.exclusive = raw&0x80000000 != 0
		h.streamDep = raw & (1<<31 - 1)
		h.weight = payload[4]
		payload = payload[5:]
	}

	h.endStream = flags.Has(FlagEndStream)
	h.endHeaders = flags.Has(FlagEndHeaders)
	h.rawHeaders = append(h.rawHeaders[:0], payload...)

	return nil
}

func (h *Headers) Serialize(frh *FrameHeader) {
	frh.payload = frh.payload[:0]

	if h.padded {
		frh.payload = append(frh.payload, h.padLength)
	}

	if h.priority {
		raw := h.streamDep & (1<<31 - 1)
		if h.exclusive {
			raw |= 0x80000000
		}
		frh.payload = http2utils.AppendUint32Bytes(frh.payload, raw)
		frh.payload = append(frh.payload, h.weight)
	}

	frh.payload = append(frh.payload, h.rawHeaders...)

	if h.padded {
		frh.payload = append(frh.payload, make([]byte, h.padLength)...)
	}

	if h.endStream {
		frh.SetFlags(frh.Flags().Add(FlagEndStream))
	}
	if h.endHeaders {
		frh.SetFlags(frh.Flags().Add(FlagEndHeaders))
	}
	if h.priority {
		frh.SetFlags(frh.Flags().Add(FlagPriority))
	}
	if h.padded {
		frh.SetFlags(frh.Flags().Add(FlagPadded))
	}
}

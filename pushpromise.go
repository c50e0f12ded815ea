package http2

import (
	"github.com/domsolutions/h2codec/http2utils"
)

const FramePushPromise FrameType = 0x5

var (
	_ Frame            = &PushPromise{}
	_ FrameWithHeaders = &PushPromise{}
)

// PushPromise announces a stream the server intends to push, ahead of
// sending it.
//
// https://tools.ietf.org/html/rfc7540#section-6.6
type PushPromise struct {
	padded           bool
	padLength        uint8
	reserved         bool
	promisedStreamID uint32
	endHeaders       bool
	rawHeaders       []byte
	fields           []*HeaderField
}

func (pp *PushPromise) Type() FrameType {
	return FramePushPromise
}

func (pp *PushPromise) Reset() {
	pp.padded = false
	pp.padLength = 0
	pp.reserved = false
	pp.promisedStreamID = 0
	pp.endHeaders = false
	pp.rawHeaders = pp.rawHeaders[:0]
	pp.fields = pp.fields[:0]
}

func (pp *PushPromise) CopyTo(o *PushPromise) {
	o.padded = pp.padded
	o.padLength = pp.padLength
	o.reserved = pp.reserved
	o.promisedStreamID = pp.promisedStreamID
	o.endHeaders = pp.endHeaders
	o.rawHeaders = append(o.rawHeaders[:0], pp.rawHeaders...)
	o.fields = append(o.fields[:0], pp.fields...)
}

// Headers returns the raw header block fragment bytes.
func (pp *PushPromise) Headers() []byte {
	return pp.rawHeaders
}

// SetHeaders sets the raw header block fragment.
func (pp *PushPromise) SetHeaders(b []byte) {
	pp.rawHeaders = append(pp.rawHeaders[:0], b...)
}

// HeaderFields returns the fields HPACK decoded from the raw fragment.
func (pp *PushPromise) HeaderFields() []*HeaderField {
	return pp.fields
}

// SetHeaderFields stores fields decoded (or to be encoded) for this frame.
func (pp *PushPromise) SetHeaderFields(fields []*HeaderField) {
	pp.fields = fields
}

// EndHeaders reports the END_HEADERS flag.
func (pp *PushPromise) EndHeaders() bool {
	return pp.endHeaders
}

// SetEndHeaders sets the END_HEADERS flag.
func (pp *PushPromise) SetEndHeaders(value bool) {
	pp.endHeaders = value
}

// PromisedStreamID returns the stream id promised by this frame.
func (pp *PushPromise) PromisedStreamID() uint32 {
	return pp.promisedStreamID
}

// SetPromisedStreamID sets the stream id promised by this frame. It must be
// even (server-initiated) and non-zero.
func (pp *PushPromise) SetPromisedStreamID(id uint32) {
	pp.promisedStreamID = id & (1<<31 - 1)
}

// Padded reports whether the frame carries (or will carry) padding.
func (pp *PushPromise) Padded() bool {
	return pp.padded
}

// SetPadLength enables padding on send with the given pad length.
func (pp *PushPromise) SetPadLength(n uint8) {
	pp.padded = true
	pp.padLength = n
}

func (pp *PushPromise) Deserialize(fr *FrameHeader) error {
	if fr.Stream() == 0 {
		return newFrameError(KindProtocol, fr, errZeroStream)
	}

	payload := fr.payload

	pp.padded = fr.Flags().Has(FlagPadded)
	if pp.padded {
		if len(payload) == 0 {
			return newFrameError(KindMalformedPadding, fr, http2utils.ErrPadding)
		}
		pp.padLength = payload[0]

		cut, err := http2utils.CutPadding(payload)
		if err != nil {
			return newFrameError(KindMalformedPadding, fr, err)
		}
		payload = cut
	}

	if len(payload) < 4 {
		return newFrameError(KindFrameSize, fr, ErrMissingBytes)
	}

	raw := http2utils.BytesToUint32(payload)
	pp.reserved = raw&0x80000000 != 0
	pp.promisedStreamID = raw & (1<<31 - 1)

	if pp.promisedStreamID == 0 || pp.promisedStreamID&1 != 0 {
		return newFrameError(KindProtocol, fr, errPushPromiseStream)
	}

	pp.endHeaders = fr.Flags().Has(FlagEndHeaders)
	pp.rawHeaders = append(pp.rawHeaders[:0], payload[4:]...)

	return nil
}

func (pp *PushPromise) Serialize(fr *FrameHeader) {
	fr.payload = fr.payload[:0]

	if pp.padded {
		fr.payload = append(fr.payload, pp.padLength)
	}

	raw := pp.promisedStreamID & (1<<31 - 1)
	if pp.reserved {
		raw |= 0x80000000
	}
	fr.payload = http2utils.AppendUint32Bytes(fr.payload, raw)
	fr.payload = append(fr.payload, pp.rawHeaders...)

	if pp.padded {
		fr.payload = append(fr.payload, make([]byte, pp.padLength)...)
	}

	if pp.endHeaders {
		fr.SetFlags(fr.Flags().Add(FlagEndHeaders))
	}
	if pp.padded {
		fr.SetFlags(fr.Flags().Add(FlagPadded))
	}
}

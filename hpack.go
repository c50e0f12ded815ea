package http2

import (
	"sync"

	"golang.org/x/net/http2/hpack"

	"github.com/domsolutions/h2codec/http2utils"
	"github.com/valyala/bytebufferpool"
)

// DefaultHeaderTableSize is the dynamic table size a fresh HPACK instance
// starts with, matching SETTINGS_HEADER_TABLE_SIZE's RFC 7540 default.
const DefaultHeaderTableSize = 4096

// HPACK wraps golang.org/x/net/http2/hpack's encoder and decoder as the
// codec's header compression engine. It owns one dynamic table per
// direction: encoding and decoding against the same HPACK instance from
// both goroutines at once is not supported, matching the codec's
// single-threaded, cooperative concurrency model.
//
// Use AcquireHPACK/ReleaseHPACK instead of constructing an HPACK directly.
type HPACK struct {
	enc    *hpack.Encoder
	encBuf *bytebufferpool.ByteBuffer

	dec    *hpack.Decoder
	fields []*HeaderField
}

var hpackPool = sync.Pool{
	New: func() interface{} {
		h := &HPACK{}
		h.encBuf = http2utils.AcquireByteBuffer()
		h.enc = hpack.NewEncoder(h.encBuf)
		h.dec = hpack.NewDecoder(DefaultHeaderTableSize, h.onField)
		return h
	},
}

// AcquireHPACK gets an HPACK instance from the pool, with the dynamic table
// reset to its default capacity.
func AcquireHPACK() *HPACK {
	h := hpackPool.Get().(*HPACK)
	h.Reset()
	h.enc = hpack.NewEncoder(h.encBuf)
	h.dec = hpack.NewDecoder(DefaultHeaderTableSize, h.onField)
	return h
}

// ReleaseHPACK resets h and returns it to the pool.
func ReleaseHPACK(h *HPACK) {
	h.Reset()
	hpackPool.Put(h)
}

// Reset clears buffered encode/decode state, but keeps the dynamic table
// capacity as last set via SetMaxDynamicTableSize. It does not release
// previously decoded fields: ownership of those passes to whoever called
// DecodeFields, so only they know when it's safe to return them to the
// HeaderField pool.
func (h *HPACK) Reset() {
	h.encBuf.Reset()
	h.fields = h.fields[:0]
}

func (h *HPACK) onField(f hpack.HeaderField) {
	hf := AcquireHeaderField()
	hf.SetKey(f.Name)
	hf.SetValue(f.Value)
	hf.sensible = f.Sensitive
	h.fields = append(h.fields, hf)
}

// SetMaxDynamicTableSize adjusts the capacity of both the encoder's and the
// decoder's dynamic table (set_capacity).
func (h *HPACK) SetMaxDynamicTableSize(n uint32) {
	h.enc.SetMaxDynamicTableSize(n)
	h.dec.SetMaxDynamicTableSize(n)
}

// AppendHeaderField HPACK-encodes hf onto dst and returns the extended
// slice. store requests incremental indexing (the field is added to the
// dynamic table so later, identical fields can reference it); when false
// the field is encoded as never-indexed instead, the closest
// representation the wrapped encoder exposes for "do not add to the
// table".
func (h *HPACK) AppendHeaderField(dst []byte, hf *HeaderField, store bool) []byte {
	h.encBuf.Reset()

	_ = h.enc.WriteField(hpack.HeaderField{
		Name:      hf.Key(),
		Value:     hf.Value(),
		Sensitive: hf.sensible || !store,
	})

	return append(dst, h.encBuf.B...)
}

// EncodeFields HPACK-encodes an entire header list into a single header
// block (encode(list) -> bytes).
func (h *HPACK) EncodeFields(fields []*HeaderField) []byte {
	var dst []byte
	for _, hf := range fields {
		dst = h.AppendHeaderField(dst, hf, !hf.sensible)
	}
	return dst
}

// DecodeFields decodes a header block fragment against the running dynamic
// table (decode(bytes) -> list). Fragments from a HEADERS frame and any
// CONTINUATION frames that follow it MUST be passed in wire order: the
// decoder carries partial multi-byte state between calls, which is what
// lets a header block span several frames without the caller having to
// reassemble it first.
//
// h reuses one internal slice across calls as decode scratch space, so the
// slice returned here is always freshly allocated and owned by the caller:
// it stays valid past the next DecodeFields or Reset call. Callers still
// release the individual *HeaderField values with ReleaseHeaderField once
// the frame carrying them is released.
func (h *HPACK) DecodeFields(fragment []byte) ([]*HeaderField, error) {
	h.fields = h.fields[:0]

	if _, err := h.dec.Write(fragment); err != nil {
		return nil, err
	}

	out := make([]*HeaderField, len(h.fields))
	copy(out, h.fields)

	return out, nil
}

package http2

const FrameContinuation FrameType = 0x9

var (
	_ Frame            = &Continuation{}
	_ FrameWithHeaders = &Continuation{}
)

// Continuation carries the remainder of a header block fragment that
// didn't fit in the preceding HEADERS or PUSH_PROMISE frame.
//
// https://tools.ietf.org/html/rfc7540#section-6.10
type Continuation struct {
	endHeaders bool
	rawHeaders []byte
	fields     []*HeaderField
}

func (c *Continuation) Type() FrameType {
	return FrameContinuation
}

func (c *Continuation) Reset() {
	c.endHeaders = false
	c.rawHeaders = c.rawHeaders[:0]
	c.fields = c.fields[:0]
}

func (c *Continuation) CopyTo(cc *Continuation) {
	cc.endHeaders = c.endHeaders
	cc.rawHeaders = append(cc.rawHeaders[:0], c.rawHeaders...)
	cc.fields = append(cc.fields[:0], c.fields...)
}

// Headers returns the raw header block fragment bytes.
func (c *Continuation) Headers() []byte {
	return c.rawHeaders
}

// SetHeaders sets the raw header block fragment.
func (c *Continuation) SetHeaders(b []byte) {
	c.rawHeaders = append(c.rawHeaders[:0], b...)
}

// HeaderFields returns the fields HPACK decoded from the raw fragment.
func (c *Continuation) HeaderFields() []*HeaderField {
	return c.fields
}

// SetHeaderFields stores fields decoded (or to be encoded) for this frame.
func (c *Continuation) SetHeaderFields(fields []*HeaderField) {
	c.fields = fields
}

// EndHeaders reports the END_HEADERS flag.
func (c *Continuation) EndHeaders() bool {
	return c.endHeaders
}

// SetEndHeaders sets the END_HEADERS flag.
func (c *Continuation) SetEndHeaders(value bool) {
	c.endHeaders = value
}

func (c *Continuation) Deserialize(fr *FrameHeader) error {
	if fr.Stream() == 0 {
		return newFrameError(KindProtocol, fr, errZeroStream)
	}

	c.endHeaders = fr.Flags().Has(FlagEndHeaders)
	c.rawHeaders = append(c.rawHeaders[:0], fr.payload...)

	return nil
}

func (c *Continuation) Serialize(fr *FrameHeader) {
	if c.endHeaders {
		fr.SetFlags(fr.Flags().Add(FlagEndHeaders))
	}

	fr.setPayload(c.rawHeaders)
}

package http2

const FramePing FrameType = 0x6

var _ Frame = &Ping{}

// Ping measures round-trip time and checks that a connection is still
// usable.
//
// https://tools.ietf.org/html/rfc7540#section-6.7
type Ping struct {
	ack  bool
	data [8]byte
}

func (ping *Ping) Type() FrameType {
	return FramePing
}

// Reset resets ping.
func (ping *Ping) Reset() {
	ping.ack = false
	ping.data = [8]byte{}
}

// CopyTo copies ping to p.
func (ping *Ping) CopyTo(p *Ping) {
	p.ack = ping.ack
	p.data = ping.data
}

// Ack reports the ACK flag.
func (ping *Ping) Ack() bool {
	return ping.ack
}

// SetAck sets the ACK flag.
func (ping *Ping) SetAck(v bool) {
	ping.ack = v
}

// Write copies b into the opaque ping data.
func (ping *Ping) Write(b []byte) (n int, err error) {
	copy(ping.data[:], b)
	return len(b), nil
}

// SetData sets the 8 octets of opaque data carried by the frame.
func (ping *Ping) SetData(b []byte) {
	copy(ping.data[:], b)
}

// Data returns the 8 octets of opaque data carried by the frame.
func (ping *Ping) Data() []byte {
	return ping.data[:]
}

func (ping *Ping) Deserialize(frh *FrameHeader) error {
	if frh.Stream() != 0 {
		return newFrameError(KindProtocol, frh, errNonZeroStream)
	}

	if len(frh.payload) != 8 {
		return newFrameError(KindFrameSize, frh, ErrMissingBytes)
	}

	ping.ack = frh.Flags().Has(FlagAck)
	ping.SetData(frh.payload)

	return nil
}

func (ping *Ping) Serialize(fr *FrameHeader) {
	if ping.ack {
		fr.SetFlags(fr.Flags().Add(FlagAck))
	}

	fr.setPayload(ping.data[:])
}

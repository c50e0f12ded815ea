package http2

import (
	"github.com/domsolutions/h2codec/http2utils"
)

const FramePriority FrameType = 0x2

var _ Frame = &Priority{}

// Priority represents the PRIORITY frame: a client-suggested place for a
// stream in the dependency tree.
//
// https://tools.ietf.org/html/rfc7540#section-6.3
type Priority struct {
	exclusive bool
	stream    uint32
	weight    byte
}

func (pry *Priority) Type() FrameType {
	return FramePriority
}

// Reset resets priority fields.
func (pry *Priority) Reset() {
	pry.exclusive = false
	pry.stream = 0
	pry.weight = 0
}

func (pry *Priority) CopyTo(p *Priority) {
	p.exclusive = pry.exclusive
	p.stream = pry.stream
	p.weight = pry.weight
}

// Exclusive returns the exclusive bit of the stream dependency.
func (pry *Priority) Exclusive() bool {
	return pry.exclusive
}

// SetExclusive sets the exclusive bit of the stream dependency.
func (pry *Priority) SetExclusive(v bool) {
	pry.exclusive = v
}

// Stream returns the stream dependency id (31 bits, exclusive bit not
// included).
func (pry *Priority) Stream() uint32 {
	return pry.stream
}

// SetStream sets the stream dependency id.
func (pry *Priority) SetStream(stream uint32) {
	pry.stream = stream & (1<<31 - 1)
}

// Weight returns the PRIORITY frame weight.
func (pry *Priority) Weight() byte {
	return pry.weight
}

// SetWeight sets the PRIORITY frame weight.
func (pry *Priority) SetWeight(w byte) {
	pry.weight = w
}

func (pry *Priority) Deserialize(fr *FrameHeader) error {
	if fr.Stream() == 0 {
		return newFrameError(KindProtocol, fr, errZeroStream)
	}

	if len(fr.payload) != 5 {
		return newFrameError(KindFrameSize, fr, ErrMissingBytes)
	}

	raw := http2utils.BytesToUint32(fr.payload)
	pry.exclusive = raw&0x80000000 != 0
	pry.stream = raw & (1<<31 - 1)
	pry.weight = fr.payload[4]

	return nil
}

func (pry *Priority) Serialize(fr *FrameHeader) {
	raw := pry.stream & (1<<31 - 1)
	if pry.exclusive {
		raw |= 0x80000000
	}

	fr.payload = http2utils.AppendUint32Bytes(fr.payload[:0], raw)
	fr.payload = append(fr.payload, pry.weight)
}

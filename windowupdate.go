package http2

import (
	"github.com/domsolutions/h2codec/http2utils"
)

const FrameWindowUpdate FrameType = 0x8

var _ Frame = &WindowUpdate{}

// WindowUpdate adjusts the flow-control window, either for the whole
// connection (stream 0) or for a single stream.
//
// https://tools.ietf.org/html/rfc7540#section-6.9
type WindowUpdate struct {
	increment uint32
}

func (wu *WindowUpdate) Type() FrameType {
	return FrameWindowUpdate
}

// Reset resets wu.
func (wu *WindowUpdate) Reset() {
	wu.increment = 0
}

// CopyTo copies wu to w.
func (wu *WindowUpdate) CopyTo(w *WindowUpdate) {
	w.increment = wu.increment
}

// Increment returns the window size increment.
func (wu *WindowUpdate) Increment() uint32 {
	return wu.increment
}

// SetIncrement sets the window size increment.
func (wu *WindowUpdate) SetIncrement(increment uint32) {
	wu.increment = increment & (1<<31 - 1)
}

func (wu *WindowUpdate) Deserialize(fr *FrameHeader) error {
	if len(fr.payload) != 4 {
		return newFrameError(KindFrameSize, fr, ErrMissingBytes)
	}

	increment := http2utils.BytesToUint32(fr.payload) & (1<<31 - 1)
	if increment == 0 {
		return newFrameError(KindProtocol, fr, errWindowUpdateZero)
	}

	wu.increment = increment

	return nil
}

func (wu *WindowUpdate) Serialize(fr *FrameHeader) {
	fr.payload = http2utils.AppendUint32Bytes(fr.payload[:0], wu.increment&(1<<31-1))
}

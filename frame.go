package http2

import (
	"fmt"
	"sync"
)

// FrameType identifies a frame's payload kind.
//
// https://tools.ietf.org/html/rfc7540#section-6
type FrameType uint8

// FrameFlags are the single-octet flags carried on a frame header. Their
// meaning is scoped to the owning frame's Type: the same bit means ACK on
// SETTINGS/PING and END_STREAM on DATA/HEADERS.
type FrameFlags uint8

// Has reports whether f carries every bit set in v.
func (f FrameFlags) Has(v FrameFlags) bool {
	return f&v == v
}

// Add returns f with v set.
func (f FrameFlags) Add(v FrameFlags) FrameFlags {
	return f | v
}

// Del returns f with v cleared.
func (f FrameFlags) Del(v FrameFlags) FrameFlags {
	return f &^ v
}

const maxFrameType = FrameContinuation

func (t FrameType) String() string {
	switch t {
	case FrameData:
		return "Data"
	case FrameHeaders:
		return "Headers"
	case FramePriority:
		return "Priority"
	case FrameResetStream:
		return "RstStream"
	case FrameSettings:
		return "Settings"
	case FramePushPromise:
		return "PushPromise"
	case FramePing:
		return "Ping"
	case FrameGoAway:
		return "GoAway"
	case FrameWindowUpdate:
		return "WindowUpdate"
	case FrameContinuation:
		return "Continuation"
	default:
		return fmt.Sprintf("Unknown(0x%x)", uint8(t))
	}
}

// Frame is implemented by every frame payload type the codec understands.
// A Frame only knows how to encode/decode its own payload; the 9-octet
// header it travels under is owned by FrameHeader.
//
// Deserialize and Serialize never see the HPACK table: frames that carry a
// header block fragment (HEADERS, PUSH_PROMISE, CONTINUATION) only move raw
// bytes here. Binding those bytes to the table happens one layer up, in
// RecvFrame/SendFrame, so the table stays a connection-direction-scoped
// collaborator instead of living inside a frame type.
type Frame interface {
	Type() FrameType
	Reset()
	Deserialize(fr *FrameHeader) error
	Serialize(fr *FrameHeader)
}

var (
	dataPool         = sync.Pool{New: func() interface{} { return &Data{} }}
	headersPool      = sync.Pool{New: func() interface{} { return &Headers{} }}
	priorityPool     = sync.Pool{New: func() interface{} { return &Priority{} }}
	rstStreamPool    = sync.Pool{New: func() interface{} { return &RstStream{} }}
	settingsPool     = sync.Pool{New: func() interface{} { return &Settings{} }}
	pushPromisePool  = sync.Pool{New: func() interface{} { return &PushPromise{} }}
	pingPool         = sync.Pool{New: func() interface{} { return &Ping{} }}
	goAwayPool       = sync.Pool{New: func() interface{} { return &GoAway{} }}
	windowUpdatePool = sync.Pool{New: func() interface{} { return &WindowUpdate{} }}
	continuationPool = sync.Pool{New: func() interface{} { return &Continuation{} }}
)

// AcquireFrame returns a pooled Frame implementation for t, or nil if t
// isn't one of the ten known frame types. Callers that hit a nil here are
// looking at UnknownType: RFC 7540 Section 4.1 requires unknown types to be
// ignored rather than rejected.
func AcquireFrame(t FrameType) Frame {
	switch t {
	case FrameData:
		return dataPool.Get().(*Data)
	case FrameHeaders:
		return headersPool.Get().(*Headers)
	case FramePriority:
		return priorityPool.Get().(*Priority)
	case FrameResetStream:
		return rstStreamPool.Get().(*RstStream)
	case FrameSettings:
		return settingsPool.Get().(*Settings)
	case FramePushPromise:
		return pushPromisePool.Get().(*PushPromise)
	case FramePing:
		return pingPool.Get().(*Ping)
	case FrameGoAway:
		return goAwayPool.Get().(*GoAway)
	case FrameWindowUpdate:
		return windowUpdatePool.Get().(*WindowUpdate)
	case FrameContinuation:
		return continuationPool.Get().(*Continuation)
	default:
		return nil
	}
}

// ReleaseFrame resets fr and returns it to its type's pool.
func ReleaseFrame(fr Frame) {
	if fr == nil {
		return
	}

	fr.Reset()

	switch fr.Type() {
	case FrameData:
		dataPool.Put(fr)
	case FrameHeaders:
		headersPool.Put(fr)
	case FramePriority:
		priorityPool.Put(fr)
	case FrameResetStream:
		rstStreamPool.Put(fr)
	case FrameSettings:
		settingsPool.Put(fr)
	case FramePushPromise:
		pushPromisePool.Put(fr)
	case FramePing:
		pingPool.Put(fr)
	case FrameGoAway:
		goAwayPool.Put(fr)
	case FrameWindowUpdate:
		windowUpdatePool.Put(fr)
	case FrameContinuation:
		continuationPool.Put(fr)
	}
}

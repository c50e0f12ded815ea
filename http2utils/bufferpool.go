package http2utils

import (
	"github.com/valyala/bytebufferpool"
)

var bufPool bytebufferpool.Pool

// AcquireByteBuffer returns a pooled growable byte buffer, the Byte Buffer
// collaborator the frame codec builds its encode-side scratch space on top
// of (see spec's "Byte Buffer (B)" component).
//
// There is no matching ReleaseByteBuffer: the buffer this hands out is
// meant to be kept for the entire lifetime of its owner (HPACK acquires
// one and keeps it for as long as that HPACK instance itself is pooled),
// the same way FrameHeader keeps its header array for its own lifetime
// rather than returning it to a sub-pool on every release.
func AcquireByteBuffer() *bytebufferpool.ByteBuffer {
	return bufPool.Get()
}

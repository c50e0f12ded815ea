package http2

import (
	"bufio"
)

// RecvFrame reads exactly one frame from br and, for HEADERS, PUSH_PROMISE
// and CONTINUATION, decodes its header block fragment against hp so the
// returned frame's HeaderFields are already populated.
//
// Frames on a single connection direction always arrive and are processed
// in the order they were read (Section 5): callers must not decode two
// frames from the same br concurrently, and must feed fragments to hp in
// wire order when a header block spans HEADERS/PUSH_PROMISE plus one or
// more CONTINUATION frames.
//
// maxFrameSize bounds the payload length this call will accept; pass 0 to
// accept any length up to the wire format's 24-bit maximum.
func RecvFrame(br *bufio.Reader, hp *HPACK, maxFrameSize uint32) (*FrameHeader, error) {
	frh := AcquireFrameHeader()
	frh.SetMaxLen(maxFrameSize)

	_, err := frh.ReadFrom(br)
	if err != nil {
		ReleaseFrameHeader(frh)
		return nil, err
	}

	if fh, ok := frh.Body().(FrameWithHeaders); ok {
		fields, derr := hp.DecodeFields(fh.Headers())
		if derr != nil {
			ReleaseFrameHeader(frh)
			return nil, newFrameError(KindHpack, frh, derr)
		}
		fh.SetHeaderFields(fields)
	}

	return frh, nil
}

// SendFrame HPACK-encodes frh's header fields (if any), serializes its body
// and writes header+payload to bw. Callers must Flush bw themselves; this
// lets several frames be coalesced into one write.
func SendFrame(bw *bufio.Writer, frh *FrameHeader, hp *HPACK) (int64, error) {
	if fh, ok := frh.Body().(FrameWithHeaders); ok {
		if fields := fh.HeaderFields(); len(fields) > 0 {
			fh.SetHeaders(hp.EncodeFields(fields))
		}
	}

	return frh.WriteTo(bw)
}

package http2

import (
	"github.com/domsolutions/h2codec/http2utils"
)

const FrameData FrameType = 0x0

var _ Frame = &Data{}

// Data carries the body of a stream.
//
// Data frames can have the following flags:
// END_STREAM
// PADDED
//
// https://tools.ietf.org/html/rfc7540#section-6.1
type Data struct {
	endStream bool
	padded    bool
	padLength uint8
	b         []byte // data bytes
}

func (data *Data) Type() FrameType {
	return FrameData
}

func (data *Data) Reset() {
	data.endStream = false
	data.padded = false
	data.padLength = 0
	data.b = data.b[:0]
}

// CopyTo copies data to d.
func (data *Data) CopyTo(d *Data) {
	d.padded = data.padded
	d.padLength = data.padLength
	d.endStream = data.endStream
	d.b = append(d.b[:0], data.b...)
}

func (data *Data) SetEndStream(value bool) {
	data.endStream = value
}

func (data *Data) EndStream() bool {
	return data.endStream
}

// Data returns the byte slice of the data read/to be sent.
func (data *Data) Data() []byte {
	return data.b
}

// SetData resets the data byte slice and sets b.
func (data *Data) SetData(b []byte) {
	data.b = append(data.b[:0], b...)
}

// Padded returns true if the frame carries (or will carry) padding.
func (data *Data) Padded() bool {
	return data.padded
}

// SetPadding enables or disables padding on send. The pad length is not set
// by the caller: http2utils.AddPadding picks it at random.
func (data *Data) SetPadding(value bool) {
	data.padded = value
}

// PadLength returns the pad_length octet as seen on the wire.
func (data *Data) PadLength() uint8 {
	return data.padLength
}

// Append appends b to data.
func (data *Data) Append(b []byte) {
	data.b = append(data.b, b...)
}

func (data *Data) Len() int {
	return len(data.b)
}

// Write writes b to data.
func (data *Data) Write(b []byte) (int, error) {
	n := len(b)
	data.Append(b)

	return n, nil
}

func (data *Data) Deserialize(fr *FrameHeader) error {
	if fr.Stream() == 0 {
		return newFrameError(KindProtocol, fr, errZeroStream)
	}

	payload := fr.payload

	data.padded = fr.Flags().Has(FlagPadded)
	if data.padded {
		if len(payload) == 0 {
			return newFrameError(KindMalformedPadding, fr, http2utils.ErrPadding)
		}
		data.padLength = payload[0]

		cut, err := http2utils.CutPadding(payload)
		if err != nil {
			return newFrameError(KindMalformedPadding, fr, err)
		}
		payload = cut
	}

	data.endStream = fr.Flags().Has(FlagEndStream)
	data.b = append(data.b[:0], payload...)

	return nil
}

func (data *Data) Serialize(fr *FrameHeader) {
	fr.payload = fr.payload[:0]

	if data.padded {
		fr.payload = http2utils.AddPadding(append(fr.payload, data.b...))
	} else {
		fr.payload = append(fr.payload, data.b...)
	}

	if data.endStream {
		fr.SetFlags(fr.Flags().Add(FlagEndStream))
	}

	if data.padded {
		fr.SetFlags(fr.Flags().Add(FlagPadded))
	}
}

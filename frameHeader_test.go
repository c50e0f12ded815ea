package http2

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domsolutions/h2codec/http2utils"
)

const testStr = "make fasthttp great again"

func TestFrameWrite(t *testing.T) {
	fr := AcquireFrameHeader()
	defer ReleaseFrameHeader(fr)

	data := AcquireFrame(FrameData).(*Data)
	data.SetData([]byte(testStr))

	fr.SetBody(data)
	fr.SetStream(1)

	var bf bytes.Buffer
	bw := bufio.NewWriter(&bf)

	_, err := fr.WriteTo(bw)
	assert.NoError(t, err)
	assert.NoError(t, bw.Flush())

	b := bf.Bytes()
	assert.Equal(t, testStr, string(b[9:]))
}

func TestFrameRead(t *testing.T) {
	var h [9]byte
	var bf bytes.Buffer

	http2utils.Uint24ToBytes(h[:3], uint32(len(testStr)))
	h[3] = byte(FrameData)
	http2utils.Uint32ToBytes(h[5:], 1)

	_, err := bf.Write(h[:9])
	assert.NoError(t, err)

	_, err = io.WriteString(&bf, testStr)
	assert.NoError(t, err)

	br := bufio.NewReader(&bf)

	fr := AcquireFrameHeader()
	defer ReleaseFrameHeader(fr)

	nn, err := fr.ReadFrom(br)
	assert.NoError(t, err)
	assert.EqualValues(t, len(testStr)+9, nn)
	assert.Equal(t, FrameData, fr.Type())
	assert.EqualValues(t, 1, fr.Stream())

	data := fr.Body().(*Data)
	assert.Equal(t, testStr, string(data.Data()))
}

// writeFrame is a test helper encoding a raw frame header + payload.
func writeFrame(kind FrameType, flags FrameFlags, stream uint32, payload []byte) []byte {
	var h [9]byte
	http2utils.Uint24ToBytes(h[:3], uint32(len(payload)))
	h[3] = byte(kind)
	h[4] = byte(flags)
	http2utils.Uint32ToBytes(h[5:], stream&(1<<31-1))

	return append(h[:], payload...)
}

func readOne(t *testing.T, raw []byte) (*FrameHeader, error) {
	t.Helper()
	br := bufio.NewReader(bytes.NewReader(raw))
	return ReadFrameFrom(br)
}

func TestRecvSettingsAck(t *testing.T) {
	raw := writeFrame(FrameSettings, FlagAck, 0, nil)

	frh, err := readOne(t, raw)
	assert.NoError(t, err)
	defer ReleaseFrameHeader(frh)

	s := frh.Body().(*Settings)
	assert.True(t, s.IsAck())
	assert.Empty(t, s.Params())
}

func TestRecvPing(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	raw := writeFrame(FramePing, 0, 0, payload)

	frh, err := readOne(t, raw)
	assert.NoError(t, err)
	defer ReleaseFrameHeader(frh)

	p := frh.Body().(*Ping)
	assert.False(t, p.Ack())
	assert.Equal(t, payload, p.Data())
}

func TestRecvRstStream(t *testing.T) {
	var payload [4]byte
	http2utils.Uint32ToBytes(payload[:], uint32(CancelError))
	raw := writeFrame(FrameResetStream, 0, 3, payload[:])

	frh, err := readOne(t, raw)
	assert.NoError(t, err)
	defer ReleaseFrameHeader(frh)

	assert.EqualValues(t, 3, frh.Stream())
	rst := frh.Body().(*RstStream)
	assert.Equal(t, CancelError, rst.Code())
}

func TestRecvWindowUpdateInvalidZero(t *testing.T) {
	var payload [4]byte
	http2utils.Uint32ToBytes(payload[:], 0)
	raw := writeFrame(FrameWindowUpdate, 0, 1, payload[:])

	_, err := readOne(t, raw)
	assert.Error(t, err)

	var fe *FrameError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, KindProtocol, fe.Kind)
}

func TestRecvDataPadded(t *testing.T) {
	// pad_length=2, data="hi", 2 zero padding bytes.
	payload := []byte{2, 'h', 'i', 0, 0}
	raw := writeFrame(FrameData, FlagPadded|FlagEndStream, 1, payload)

	frh, err := readOne(t, raw)
	assert.NoError(t, err)
	defer ReleaseFrameHeader(frh)

	d := frh.Body().(*Data)
	assert.True(t, d.EndStream())
	assert.True(t, d.Padded())
	assert.Equal(t, "hi", string(d.Data()))
}

func TestRecvHeadersWithPriorityAndPadding(t *testing.T) {
	// pad_length=1, priority block (exclusive=true, dep=5, weight=10), "ab" fragment, 1 pad byte.
	payload := make([]byte, 0, 1+5+2+1)
	payload = append(payload, 1)
	var dep [4]byte
	http2utils.Uint32ToBytes(dep[:], 5|0x80000000)
	payload = append(payload, dep[:]...)
	payload = append(payload, 10)
	payload = append(payload, 'a', 'b')
	payload = append(payload, 0)

	raw := writeFrame(FrameHeaders, FlagPadded|FlagPriority|FlagEndHeaders, 1, payload)

	frh, err := readOne(t, raw)
	assert.NoError(t, err)
	defer ReleaseFrameHeader(frh)

	h := frh.Body().(*Headers)
	assert.True(t, h.HasPriority())
	assert.True(t, h.Exclusive())
	assert.EqualValues(t, 5, h.StreamDependency())
	assert.EqualValues(t, 10, h.Weight())
	assert.True(t, h.EndHeaders())
	assert.Equal(t, "ab", string(h.Headers()))
}

func TestMaxFrameSizeBoundary(t *testing.T) {
	payload := make([]byte, DefaultMaxFrameSize)
	raw := writeFrame(FrameData, 0, 1, payload)

	frh, err := readOne(t, raw)
	assert.NoError(t, err)
	ReleaseFrameHeader(frh)

	payload = make([]byte, DefaultMaxFrameSize+1)
	raw = writeFrame(FrameData, 0, 1, payload)

	_, err = readOne(t, raw)
	assert.Error(t, err)

	var fe *FrameError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, KindFrameSize, fe.Kind)
}

func TestSettingsLengthNotMultipleOfSixRejected(t *testing.T) {
	raw := writeFrame(FrameSettings, 0, 0, make([]byte, 5))

	_, err := readOne(t, raw)
	assert.Error(t, err)

	var fe *FrameError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, KindFrameSize, fe.Kind)
}

func TestGoAwayExactlyEightOctets(t *testing.T) {
	var payload [8]byte
	http2utils.Uint32ToBytes(payload[:4], 7)
	http2utils.Uint32ToBytes(payload[4:], uint32(NoError))
	raw := writeFrame(FrameGoAway, 0, 0, payload[:])

	frh, err := readOne(t, raw)
	assert.NoError(t, err)
	defer ReleaseFrameHeader(frh)

	ga := frh.Body().(*GoAway)
	assert.EqualValues(t, 7, ga.Stream())
	assert.Equal(t, NoError, ga.Code())
	assert.Empty(t, ga.Data())
}

func TestUnknownTypeIsNonFatal(t *testing.T) {
	raw := writeFrame(FrameType(0x20), 0, 1, []byte{1, 2, 3})
	// append a well-formed PING right after, to prove the reader stays aligned.
	raw = append(raw, writeFrame(FramePing, 0, 0, make([]byte, 8))...)

	br := bufio.NewReader(bytes.NewReader(raw))

	_, err := ReadFrameFrom(br)
	assert.Error(t, err)

	var fe *FrameError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, KindUnknownType, fe.Kind)
	assert.False(t, fe.Fatal())

	frh, err := ReadFrameFrom(br)
	assert.NoError(t, err)
	defer ReleaseFrameHeader(frh)
	assert.Equal(t, FramePing, frh.Type())
}

func TestCleanCloseAtFrameBoundary(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader(nil))

	_, err := ReadFrameFrom(br)
	assert.ErrorIs(t, err, io.EOF)
}

package http2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoAwaySerializeDeserializeRoundTrip(t *testing.T) {
	ga := AcquireFrame(FrameGoAway).(*GoAway)
	defer ReleaseFrame(ga)

	ga.SetStream(99)
	ga.SetCode(ProtocolError)
	ga.SetData([]byte("bye"))

	frh := AcquireFrameHeader()
	defer ReleaseFrameHeader(frh)

	ga.Serialize(frh)

	got := AcquireFrame(FrameGoAway).(*GoAway)
	defer ReleaseFrame(got)

	frh2 := AcquireFrameHeader()
	defer ReleaseFrameHeader(frh2)
	frh2.payload = frh.payload

	err := got.Deserialize(frh2)
	assert.NoError(t, err)

	// A prior revision never set stream and read code from overlapping
	// offsets; both must now round-trip correctly.
	assert.EqualValues(t, 99, got.Stream())
	assert.Equal(t, ProtocolError, got.Code())
	assert.Equal(t, "bye", string(got.Data()))
}

func TestGoAwayRejectsTooShort(t *testing.T) {
	frh := AcquireFrameHeader()
	defer ReleaseFrameHeader(frh)
	frh.payload = make([]byte, 7)

	ga := AcquireFrame(FrameGoAway).(*GoAway)
	defer ReleaseFrame(ga)

	err := ga.Deserialize(frh)
	assert.Error(t, err)

	var fe *FrameError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, KindFrameSize, fe.Kind)
}

package http2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsWireIdentifiers(t *testing.T) {
	// Wire values start at 1, never at 0: a prior revision of this codec
	// derived them from a 0-based enum and silently shifted every
	// identifier by one on the wire.
	assert.EqualValues(t, 1, SettingHeaderTableSize)
	assert.EqualValues(t, 2, SettingEnablePush)
	assert.EqualValues(t, 3, SettingMaxConcurrentStreams)
	assert.EqualValues(t, 4, SettingInitialWindowSize)
	assert.EqualValues(t, 5, SettingMaxFrameSize)
	assert.EqualValues(t, 6, SettingMaxHeaderListSize)
}

func TestSettingsSerializeDeserializeRoundTrip(t *testing.T) {
	s := AcquireFrame(FrameSettings).(*Settings)
	defer ReleaseFrame(s)

	s.Add(SettingHeaderTableSize, 4096)
	s.Add(SettingMaxFrameSize, 16384)
	s.Add(SettingMaxFrameSize, 32768) // duplicate: last wins on Get

	frh := AcquireFrameHeader()
	defer ReleaseFrameHeader(frh)
	frh.SetBody(s)

	s.Serialize(frh)

	got := AcquireFrame(FrameSettings).(*Settings)
	defer ReleaseFrame(got)

	frh2 := AcquireFrameHeader()
	defer ReleaseFrameHeader(frh2)
	frh2.payload = frh.payload

	err := got.Deserialize(frh2)
	assert.NoError(t, err)
	assert.Len(t, got.Params(), 3)

	v, ok := got.MaxFrameSize()
	assert.True(t, ok)
	assert.EqualValues(t, 32768, v)
}

func TestSettingsUnknownIdentifierPreserved(t *testing.T) {
	s := AcquireFrame(FrameSettings).(*Settings)
	defer ReleaseFrame(s)

	s.Add(0xbeef, 123)

	v, ok := s.Get(0xbeef)
	assert.True(t, ok)
	assert.EqualValues(t, 123, v)
}

func TestSettingsAckMustBeEmpty(t *testing.T) {
	frh := AcquireFrameHeader()
	defer ReleaseFrameHeader(frh)

	frh.SetFlags(FlagAck)
	frh.payload = []byte{0, 0, 0, 0, 0, 0}

	s := AcquireFrame(FrameSettings).(*Settings)
	defer ReleaseFrame(s)

	err := s.Deserialize(frh)
	assert.Error(t, err)

	var fe *FrameError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, KindFrameSize, fe.Kind)
}

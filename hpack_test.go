package http2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHPACKRoundTrip(t *testing.T) {
	enc := AcquireHPACK()
	defer ReleaseHPACK(enc)

	fields := []*HeaderField{}
	add := func(k, v string) {
		hf := AcquireHeaderField()
		hf.Set(k, v)
		fields = append(fields, hf)
	}
	defer func() {
		for _, hf := range fields {
			ReleaseHeaderField(hf)
		}
	}()

	add(":status", "302")
	add("cache-control", "private")
	add("date", "Mon, 21 Oct 2013 20:13:21 GMT")
	add("location", "https://www.example.com")

	block := enc.EncodeFields(fields)
	assert.NotEmpty(t, block)

	dec := AcquireHPACK()
	defer ReleaseHPACK(dec)

	got, err := dec.DecodeFields(block)
	assert.NoError(t, err)
	assert.Len(t, got, len(fields))

	for i, hf := range fields {
		assert.Equal(t, hf.Key(), got[i].Key())
		assert.Equal(t, hf.Value(), got[i].Value())
	}
}

// TestHPACKDynamicTableReusesEntries exercises the behavior the dynamic
// table exists for: encoding the same field twice in a row should produce a
// second block no larger than the first, since after the first occurrence
// it can be referenced from the table instead of spelled out literally.
func TestHPACKDynamicTableReusesEntries(t *testing.T) {
	enc := AcquireHPACK()
	defer ReleaseHPACK(enc)

	hf := AcquireHeaderField()
	defer ReleaseHeaderField(hf)
	hf.Set("cache-control", "private")

	first := enc.EncodeFields([]*HeaderField{hf})
	second := enc.EncodeFields([]*HeaderField{hf})

	assert.LessOrEqual(t, len(second), len(first))
}

// TestHPACKFragmentedAcrossWrites exercises decoding a header block spread
// over several DecodeFields calls, the shape a HEADERS frame followed by
// CONTINUATION frames produces.
func TestHPACKFragmentedAcrossWrites(t *testing.T) {
	enc := AcquireHPACK()
	defer ReleaseHPACK(enc)

	hf := AcquireHeaderField()
	defer ReleaseHeaderField(hf)
	hf.Set("x-custom", "some-value-that-is-reasonably-long")

	block := enc.EncodeFields([]*HeaderField{hf})
	assert.True(t, len(block) > 1)

	mid := len(block) / 2

	dec := AcquireHPACK()
	defer ReleaseHPACK(dec)

	first, err := dec.DecodeFields(block[:mid])
	assert.NoError(t, err)
	assert.Empty(t, first)

	second, err := dec.DecodeFields(block[mid:])
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, "x-custom", second[0].Key())
	assert.Equal(t, "some-value-that-is-reasonably-long", second[0].Value())
}

// TestHPACKDecodeFieldsOwnershipSurvivesNextCall guards against aliasing
// the internal decode scratch slice across calls: a HEADERS frame's fields
// must still read back correctly after decoding a following CONTINUATION
// frame against the same HPACK instance.
func TestHPACKDecodeFieldsOwnershipSurvivesNextCall(t *testing.T) {
	enc := AcquireHPACK()
	defer ReleaseHPACK(enc)

	first := AcquireHeaderField()
	defer ReleaseHeaderField(first)
	first.Set(":path", "/one")

	second := AcquireHeaderField()
	defer ReleaseHeaderField(second)
	second.Set(":path", "/two")

	blockA := enc.EncodeFields([]*HeaderField{first})
	blockB := enc.EncodeFields([]*HeaderField{second})

	dec := AcquireHPACK()
	defer ReleaseHPACK(dec)

	gotA, err := dec.DecodeFields(blockA)
	assert.NoError(t, err)
	assert.Len(t, gotA, 1)

	gotB, err := dec.DecodeFields(blockB)
	assert.NoError(t, err)
	assert.Len(t, gotB, 1)

	// gotA must still report its own value: it must not alias dec's
	// internal scratch slice, which was overwritten decoding blockB.
	assert.Equal(t, "/one", gotA[0].Value())
	assert.Equal(t, "/two", gotB[0].Value())
}

func TestHPACKSetMaxDynamicTableSize(t *testing.T) {
	h := AcquireHPACK()
	defer ReleaseHPACK(h)

	h.SetMaxDynamicTableSize(0)

	hf := AcquireHeaderField()
	defer ReleaseHeaderField(hf)
	hf.Set("cache-control", "private")

	block := h.EncodeFields([]*HeaderField{hf})

	dec := AcquireHPACK()
	defer ReleaseHPACK(dec)
	dec.SetMaxDynamicTableSize(0)

	got, err := dec.DecodeFields(block)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "private", got[0].Value())
}

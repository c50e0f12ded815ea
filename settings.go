package http2

import (
	"github.com/domsolutions/h2codec/http2utils"
)

const FrameSettings FrameType = 0x4

var _ Frame = &Settings{}

// SETTINGS parameter identifiers. These are the values that travel on the
// wire (RFC 7540 Section 6.5.2): they start at 1, not 0, so they must never
// be derived from a 0-based Go iota.
const (
	SettingHeaderTableSize      uint16 = 0x1
	SettingEnablePush           uint16 = 0x2
	SettingMaxConcurrentStreams uint16 = 0x3
	SettingInitialWindowSize    uint16 = 0x4
	SettingMaxFrameSize         uint16 = 0x5
	SettingMaxHeaderListSize    uint16 = 0x6
)

// Parameter is a single SETTINGS identifier/value pair exactly as it
// appears on the wire.
type Parameter struct {
	ID    uint16
	Value uint32
}

// Settings carries zero or more Parameter entries, or acknowledges a
// previously sent Settings frame.
//
// Parameters are kept as an ordered, duplicate-preserving list rather than
// a fixed struct of named fields: a duplicate identifier is not an error
// (the last occurrence wins on application) and an identifier the codec
// doesn't recognize is preserved and handed to the caller rather than
// silently dropped.
//
// https://tools.ietf.org/html/rfc7540#section-6.5
type Settings struct {
	ack    bool
	params []Parameter
}

func (s *Settings) Type() FrameType {
	return FrameSettings
}

// Reset resets s.
func (s *Settings) Reset() {
	s.ack = false
	s.params = s.params[:0]
}

// CopyTo copies s to o.
func (s *Settings) CopyTo(o *Settings) {
	o.ack = s.ack
	o.params = append(o.params[:0], s.params...)
}

// IsAck reports the ACK flag.
func (s *Settings) IsAck() bool {
	return s.ack
}

// SetAck sets the ACK flag. An acknowledgement always carries an empty
// payload; any parameters previously added are discarded.
func (s *Settings) SetAck(v bool) {
	s.ack = v
	if v {
		s.params = s.params[:0]
	}
}

// Params returns the parameters in wire order, duplicates included.
func (s *Settings) Params() []Parameter {
	return s.params
}

// Add appends a parameter. Adding the same id more than once is valid: the
// last occurrence is the one that applies.
func (s *Settings) Add(id uint16, value uint32) {
	s.params = append(s.params, Parameter{ID: id, Value: value})
}

// Get returns the value of the last occurrence of id, since later entries
// override earlier ones on application.
func (s *Settings) Get(id uint16) (uint32, bool) {
	for i := len(s.params) - 1; i >= 0; i-- {
		if s.params[i].ID == id {
			return s.params[i].Value, true
		}
	}
	return 0, false
}

// HeaderTableSize returns the HEADER_TABLE_SIZE parameter, if present.
func (s *Settings) HeaderTableSize() (uint32, bool) {
	return s.Get(SettingHeaderTableSize)
}

// MaxFrameSize returns the MAX_FRAME_SIZE parameter, if present.
func (s *Settings) MaxFrameSize() (uint32, bool) {
	return s.Get(SettingMaxFrameSize)
}

// InitialWindowSize returns the INITIAL_WINDOW_SIZE parameter, if present.
func (s *Settings) InitialWindowSize() (uint32, bool) {
	return s.Get(SettingInitialWindowSize)
}

func (s *Settings) Deserialize(fr *FrameHeader) error {
	if fr.Stream() != 0 {
		return newFrameError(KindProtocol, fr, errNonZeroStream)
	}

	if fr.Flags().Has(FlagAck) {
		if len(fr.payload) != 0 {
			return newFrameError(KindFrameSize, fr, errSettingsAckLength)
		}
		s.ack = true
		s.params = s.params[:0]
		return nil
	}

	if len(fr.payload)%6 != 0 {
		return newFrameError(KindFrameSize, fr, errSettingsLength)
	}

	s.ack = false
	s.params = s.params[:0]

	for b := fr.payload; len(b) > 0; b = b[6:] {
		id := uint16(b[0])<<8 | uint16(b[1])
		value := http2utils.BytesToUint32(b[2:6])
		s.params = append(s.params, Parameter{ID: id, Value: value})
	}

	return nil
}

func (s *Settings) Serialize(fr *FrameHeader) {
	fr.payload = fr.payload[:0]

	if s.ack {
		fr.SetFlags(fr.Flags().Add(FlagAck))
		return
	}

	for _, p := range s.params {
		fr.payload = append(fr.payload, byte(p.ID>>8), byte(p.ID))
		fr.payload = http2utils.AppendUint32Bytes(fr.payload, p.Value)
	}
}

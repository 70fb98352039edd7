package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Type: TypeSpawn, Flags: FlagHasFD, Length: 42, ObjectID: 7}
	buf := make([]byte, HeaderSize)
	h.Encode(buf)

	got, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestDecodeHeaderShortFrame(t *testing.T) {
	_, err := DecodeHeader([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSpawnRoundTripAndFrameLength(t *testing.T) {
	m := Spawn{PrototypeID: 7, EnvironmentID: 3, X: 100, Y: 200, Behavior: "Fall"}
	frame, err := m.Encode(0)
	require.NoError(t, err)

	h, err := DecodeHeader(frame)
	require.NoError(t, err)
	assert.Equal(t, int(h.Length), len(frame))
	assert.Equal(t, byte(TypeSpawn), h.Type)

	d := newDecoder(frame)
	protoID, err := d.u32()
	require.NoError(t, err)
	envID, err := d.u32()
	require.NoError(t, err)
	x, err := d.u32()
	require.NoError(t, err)
	y, err := d.u32()
	require.NoError(t, err)
	behavior, err := d.str()
	require.NoError(t, err)

	assert.Equal(t, m.PrototypeID, protoID)
	assert.Equal(t, m.EnvironmentID, envID)
	assert.Equal(t, m.X, x)
	assert.Equal(t, m.Y, y)
	assert.Equal(t, m.Behavior, behavior)
}

func TestClientHelloRoundTrip(t *testing.T) {
	frame, err := ClientHello{Version: 1}.Encode(0)
	require.NoError(t, err)

	h, decoded, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, byte(TypeClientHello), h.Type)
	hello, ok := decoded.(ClientHello)
	require.True(t, ok)
	assert.Equal(t, uint64(1), hello.Version)
}

func TestEnvironmentAnnouncementRoundTrip(t *testing.T) {
	m := EnvironmentAnnouncement{NewID: 1, Name: "desk", Desc: "primary display", X: 0, Y: 0, W: 1920, H: 1080, Scale: 1.5}
	frame, err := m.Encode(0)
	require.NoError(t, err)

	_, decoded, err := Decode(frame)
	require.NoError(t, err)
	got, ok := decoded.(EnvironmentAnnouncement)
	require.True(t, ok)
	assert.Equal(t, m, got)
}

func TestMascotInfoRoundTrip(t *testing.T) {
	m := MascotInfo{
		PrototypeID:   1,
		EnvironmentID: 2,
		State:         3,
		ActionName:    "Stand",
		ActionIndex:   4,
		BehaviorName:  "StandBehavior",
		AffordanceName: "Poke",
		ActionPool:    []ActionPoolEntry{{Name: "Stand", Index: 0}, {Name: "Walk", Index: 1}},
		BehaviorPool:  []BehaviorPoolEntry{{Name: "StandBehavior", Frequency: 100}},
		Variables: []MascotVariable{
			{Kind: VariableInt, IntValue: 5, Used: true, EvaluateOnce: true, ScriptID: 9},
			{Kind: VariableFloat, FloatValue: 3.5, Used: false, EvaluateOnce: false, ScriptID: 10},
		},
	}
	frame, err := m.Encode(42)
	require.NoError(t, err)

	h, decoded, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), h.ObjectID)
	got, ok := decoded.(MascotInfo)
	require.True(t, ok)
	assert.Equal(t, m, got)
}

func TestDecodeUnknownTypeIsIgnorable(t *testing.T) {
	buf := make([]byte, HeaderSize)
	Header{Type: 0xFE, Length: HeaderSize}.Encode(buf)

	_, _, err := Decode(buf)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestStringLongerThan255IsRejected(t *testing.T) {
	longName := make([]byte, 256)
	for i := range longName {
		longName[i] = 'a'
	}
	_, err := PrototypeName{Name: string(longName)}.Encode(0)
	assert.Error(t, err)
}

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/coincollector-go/internal/model"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b, err := Encode(KindSnapshot, Snapshot{
		Tick:       42,
		ServerTime: 1700000000123,
		Phase:      model.MatchPhasePlaying,
		Players: []PlayerSnapshot{
			{ID: model.PlayerOne, X: 100.5, Y: 200.25, Score: 3, Color: "blue"},
		},
		Coins:    []CoinSnapshot{{ID: 7, X: 400, Y: 300}},
		GameTime: 12.5,
	})
	require.NoError(t, err)

	env, err := DecodeEnvelope(b)
	require.NoError(t, err)
	require.Equal(t, KindSnapshot, env.T)

	snap, err := DecodePayload[Snapshot](env)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), snap.Tick)
	assert.Equal(t, model.PlayerOne, snap.Players[0].ID)
	assert.Equal(t, model.CoinID(7), snap.Coins[0].ID)
}

func TestDecodeEnvelopeRejectsUnknownKind(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"t":"teleport","p":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown message kind")
}

func TestDecodeEnvelopeRejectsEmptyFrame(t *testing.T) {
	_, err := DecodeEnvelope(nil)
	require.Error(t, err)
}

func TestDecodeEnvelopeRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"t":"input"`))
	require.Error(t, err)
}

func TestEncodeRejectsUnknownKind(t *testing.T) {
	_, err := Encode(Kind("bogus"), struct{}{})
	require.Error(t, err)
}

func TestDecodePayloadRejectsEmptyPayload(t *testing.T) {
	_, err := DecodePayload[Input](Envelope{T: KindInput})
	require.Error(t, err)
}

func TestInputValid(t *testing.T) {
	assert.True(t, Input{DX: -1, DY: 1}.Valid())
	assert.True(t, Input{}.Valid())
	assert.False(t, Input{DX: 2, DY: 0}.Valid())
	assert.False(t, Input{DX: 0, DY: -5}.Valid())
}

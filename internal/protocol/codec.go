package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the outer wire frame: a kind tag plus raw payload bytes
type Envelope struct {
	T Kind            `json:"t"`
	P json.RawMessage `json:"p"`
}

// knownKinds is the closed set accepted at the decode boundary
var knownKinds = map[Kind]struct{}{
	KindInput:         {},
	KindAssign:        {},
	KindWaiting:       {},
	KindMatchStart:    {},
	KindSnapshot:      {},
	KindCoinCollected: {},
	KindPeerLeft:      {},
	KindMatchEnd:      {},
	KindFull:          {},
}

// Encode wraps a payload in an envelope and marshals the whole frame
func Encode(kind Kind, payload any) ([]byte, error) {
	if _, ok := knownKinds[kind]; !ok {
		return nil, fmt.Errorf("encoding unknown message kind %q", kind)
	}
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return json.Marshal(Envelope{T: kind, P: p})
}

// DecodeEnvelope parses the outer frame and rejects unknown kinds
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("empty message frame")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if _, ok := knownKinds[e.T]; !ok {
		return Envelope{}, fmt.Errorf("unknown message kind %q", e.T)
	}
	return e, nil
}

// DecodePayload unmarshals an envelope's payload as T
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for kind %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("unmarshal %s payload: %w", env.T, err)
	}
	return out, nil
}

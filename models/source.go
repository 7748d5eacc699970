package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SourceKind is the discriminator written next to every encoded Source.
type SourceKind string

const (
	SourceKindSlot          SourceKind = "slot"
	SourceKindGroupPosition SourceKind = "group_position"
	SourceKindPreviousMatch SourceKind = "previous_match"
	SourceKindPlaceholder   SourceKind = "placeholder"
)

// MatchOutcome selects which side of a referenced match advances.
type MatchOutcome string

const (
	OutcomeWinner MatchOutcome = "winner"
	OutcomeLoser  MatchOutcome = "loser"
)

var (
	ErrUnknownSourceKind = errors.New("unknown source kind")
	ErrMissingSource     = errors.New("source is missing")
)

// Source describes where a match participant comes from. The set of
// implementations is closed: SlotSource, GroupPositionSource,
// PreviousMatchSource and PlaceholderSource.
type Source interface {
	Kind() SourceKind
	isSource()
}

type SlotSource struct {
	Slot  int    `json:"slot"`
	Group string `json:"group,omitempty"`
}

type GroupPositionSource struct {
	Group    string `json:"group"`
	Position int    `json:"position"`
}

type PreviousMatchSource struct {
	Code   string       `json:"code"`
	Result MatchOutcome `json:"result"`
}

type PlaceholderSource struct {
	Label string `json:"label"`
}

func (SlotSource) Kind() SourceKind          { return SourceKindSlot }
func (GroupPositionSource) Kind() SourceKind { return SourceKindGroupPosition }
func (PreviousMatchSource) Kind() SourceKind { return SourceKindPreviousMatch }
func (PlaceholderSource) Kind() SourceKind   { return SourceKindPlaceholder }

func (SlotSource) isSource()          {}
func (GroupPositionSource) isSource() {}
func (PreviousMatchSource) isSource() {}
func (PlaceholderSource) isSource()   {}

// Winner and Loser build PreviousMatch sources for a match code.
func Winner(code string) PreviousMatchSource {
	return PreviousMatchSource{Code: code, Result: OutcomeWinner}
}

func Loser(code string) PreviousMatchSource {
	return PreviousMatchSource{Code: code, Result: OutcomeLoser}
}

type sourceEnvelope struct {
	Kind    SourceKind      `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalSource encodes a Source as {"kind": ..., "payload": {...}}.
func MarshalSource(s Source) ([]byte, error) {
	if s == nil {
		return nil, ErrMissingSource
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s source payload: %w", s.Kind(), err)
	}
	return json.Marshal(sourceEnvelope{Kind: s.Kind(), Payload: payload})
}

// UnmarshalSource decodes the envelope written by MarshalSource.
func UnmarshalSource(data []byte) (Source, error) {
	var env sourceEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode source envelope: %w", err)
	}
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload for kind %q", ErrMissingSource, env.Kind)
	}

	var (
		src Source
		err error
	)
	switch env.Kind {
	case SourceKindSlot:
		var s SlotSource
		err = json.Unmarshal(env.Payload, &s)
		src = s
	case SourceKindGroupPosition:
		var s GroupPositionSource
		err = json.Unmarshal(env.Payload, &s)
		src = s
	case SourceKindPreviousMatch:
		var s PreviousMatchSource
		err = json.Unmarshal(env.Payload, &s)
		src = s
	case SourceKindPlaceholder:
		var s PlaceholderSource
		err = json.Unmarshal(env.Payload, &s)
		src = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceKind, env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s source payload: %w", env.Kind, err)
	}
	return src, nil
}

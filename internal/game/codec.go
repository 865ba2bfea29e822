package game

import (
	"encoding/json"
	"fmt"
)

// EncodeAction returns the wire kind and JSON payload for a.
func EncodeAction(a Action) (string, json.RawMessage, error) {
	if a == nil {
		return "", nil, ErrUnknownAction
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", a.Kind(), err)
	}
	return a.Kind(), payload, nil
}

// DecodeAction builds an Action from its wire kind and JSON payload. An
// empty payload is accepted for actions that carry no fields.
func DecodeAction(kind string, payload json.RawMessage) (Action, error) {
	var a Action
	switch kind {
	case KindChoosePair:
		var v ChoosePair
		if err := decode(payload, &v); err != nil {
			return nil, err
		}
		a = v
	case KindChooseCustomPair:
		var v ChooseCustomPair
		if err := decode(payload, &v); err != nil {
			return nil, err
		}
		a = v
	case KindRotateTile:
		a = RotateTile{}
	case KindPlaceTile:
		var v PlaceTile
		if err := decode(payload, &v); err != nil {
			return nil, err
		}
		a = v
	case KindPlaceToken:
		var v PlaceToken
		if err := decode(payload, &v); err != nil {
			return nil, err
		}
		a = v
	case KindDiscardToken:
		a = DiscardToken{}
	case KindReplaceTokens:
		var v ReplaceTokens
		if err := decode(payload, &v); err != nil {
			return nil, err
		}
		a = v
	case KindEndTurn:
		a = EndTurn{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	return a, nil
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

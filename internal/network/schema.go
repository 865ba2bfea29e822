package network

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gravitas-games/habitats/internal/game"
)

//go:embed action.schema.json
var actionSchemaJSON []byte

const actionSchemaURL = "action.schema.json"

var (
	actionSchemaOnce sync.Once
	actionSchema     *jsonschema.Schema
	actionSchemaErr  error
)

func compiledActionSchema() (*jsonschema.Schema, error) {
	actionSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(actionSchemaURL, bytes.NewReader(actionSchemaJSON)); err != nil {
			actionSchemaErr = err
			return
		}
		actionSchema, actionSchemaErr = c.Compile(actionSchemaURL)
	})
	return actionSchema, actionSchemaErr
}

// DecodeAction validates an action message payload against the action
// schema and builds the game action it describes. Schema violations are
// reported as game.ErrInvalidArgument.
func DecodeAction(raw json.RawMessage) (game.Action, error) {
	schema, err := compiledActionSchema()
	if err != nil {
		return nil, fmt.Errorf("compile action schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrInvalidArgument, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrInvalidArgument, err)
	}
	var p ActionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrInvalidArgument, err)
	}
	return game.DecodeAction(p.Kind, p.Params)
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a game.Action) (json.RawMessage, error) {
	kind, params, err := game.EncodeAction(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ActionPayload{Kind: kind, Params: params})
}

package utilityapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

// endpoint implements the calls shared by every resource collection: get,
// list, modify and modify requirements.
type endpoint[ID ~string, T any, O any] struct {
	conn *Connection
	base string
}

func (e endpoint[ID, T, O]) Get(ctx context.Context, uid ID) (T, error) {
	var out T
	if err := e.conn.getJSON(ctx, e.base+".get", resourcePath(e.base, string(uid)), nil, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (e endpoint[ID, T, O]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := e.conn.getJSON(ctx, e.base+".list", e.base, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (e endpoint[ID, T, O]) ModifyRequirements(ctx context.Context, uid ID) (domain.ModifyRequirements, error) {
	var out domain.ModifyRequirements
	if err := e.conn.getJSON(ctx, e.base+".modify_requirements", resourcePath(e.base, string(uid), "modify"), nil, &out); err != nil {
		return domain.ModifyRequirements{}, err
	}
	return out, nil
}

// Modify applies options and returns the record the server sends back. A
// response object with a single key carries the record under that key.
func (e endpoint[ID, T, O]) Modify(ctx context.Context, uid ID, options O) (T, error) {
	operation := e.base + ".modify"

	var raw json.RawMessage
	if err := e.conn.postJSON(ctx, operation, resourcePath(e.base, string(uid), "modify"), options, &raw); err != nil {
		var zero T
		return zero, err
	}

	var out T
	if err := json.Unmarshal(unwrapSingleKey(raw), &out); err != nil {
		return out, fmt.Errorf("decode %s response: %w", operation, err)
	}
	return out, nil
}

func unwrapSingleKey(raw json.RawMessage) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) != 1 {
		return raw
	}
	for _, value := range fields {
		return value
	}
	return raw
}

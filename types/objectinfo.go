package types

import "encoding/json"

// ObjectInfo is the host's node-type metadata map as served by the
// /object_info endpoint: node type name to schema.
type ObjectInfo map[string]NodeSchema

// NodeSchema is the subset of a node-type schema this bridge reads.
// The host serves far more; unknown fields are ignored on decode.
type NodeSchema struct {
	Input NodeInput `json:"input"`
}

// NodeInput holds a node type's input declarations.
type NodeInput struct {
	Required map[string]json.RawMessage `json:"required"`
}

// ImageCandidates extracts the selectable image candidate list for the named
// node type. The host encodes a combo input as a two-element array whose
// first element is the list of values; anything else yields nil, never an
// error, because the schema shape is a version-fragile host contract.
func (o ObjectInfo) ImageCandidates(nodeType string) []string {
	schema, ok := o[nodeType]
	if !ok {
		return nil
	}
	raw, ok := schema.Input.Required["image"]
	if !ok {
		return nil
	}

	var spec []json.RawMessage
	if err := json.Unmarshal(raw, &spec); err != nil || len(spec) == 0 {
		return nil
	}

	var values []string
	if err := json.Unmarshal(spec[0], &values); err != nil {
		return nil
	}
	return values
}

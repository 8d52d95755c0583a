// Package document holds the structured-value side of the index: parsing and
// serialising JSON documents and flattening their configured fields into the
// searchable text the tokenizer consumes.
package document

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// IDField is the member that carries a document's external identifier.
const IDField = "_id"

// Document is a parsed JSON object. Values are the usual encoding/json
// shapes: string, float64, bool, nil, []any, map[string]any.
type Document map[string]any

// Parse decodes a serialised document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Encode serialises the document back to JSON.
func (d Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// ID returns the external identifier, or false when the member is absent or
// not a string.
func (d Document) ID() (string, bool) {
	id, ok := d[IDField].(string)
	return id, ok
}

// Package domain models the server-side cart line item.
package domain

import "encoding/json"

// Item is one cart line. The server appends whatever product-shaped payload
// the client sent, verbatim; only the uuid key is ever inspected, for
// removal by identifier. Duplicate uuids are possible.
type Item struct {
	Fields map[string]any
}

// NewItem wraps a decoded payload.
func NewItem(fields map[string]any) Item {
	if fields == nil {
		fields = map[string]any{}
	}
	return Item{Fields: fields}
}

// UUID returns the item's uuid field, or "" when absent or not a string.
func (i Item) UUID() string {
	s, _ := i.Fields["uuid"].(string)
	return s
}

// Clone returns a shallow copy of the field map.
func (i Item) Clone() Item {
	fields := make(map[string]any, len(i.Fields))
	for k, v := range i.Fields {
		fields[k] = v
	}
	return Item{Fields: fields}
}

// MarshalJSON writes the fields exactly as received.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(i.Fields)
}

// UnmarshalJSON keeps the payload as an open field map.
func (i *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	i.Fields = fields
	return nil
}

// Package domain models the product catalog aggregate.
package domain

import (
	"encoding/json"
	"errors"
)

var (
	ErrMissingTitle = errors.New("title is required")
	ErrMissingPrice = errors.New("pricePerUnit is required")
)

// Reserved JSON keys carried by the typed fields below. Everything else a
// record carries lives in Attrs.
const (
	KeyUUID         = "uuid"
	KeyTitle        = "title"
	KeyPricePerUnit = "pricePerUnit"
	KeyCategory     = "category"
	KeyStock        = "stock"
)

// Product is a catalog record: a fixed set of required fields plus
// additional properties of unspecified shape.
type Product struct {
	UUID         string
	Title        string
	PricePerUnit float64
	Category     string
	Stock        *float64
	Attrs        map[string]any
}

// Validate enforces the creation invariants. Matches the wire contract, where
// an empty title or a zero price both count as missing.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrMissingTitle
	}
	if p.PricePerUnit == 0 {
		return ErrMissingPrice
	}
	return nil
}

// Clone returns a deep copy.
func (p *Product) Clone() *Product {
	clone := *p
	if p.Stock != nil {
		stock := *p.Stock
		clone.Stock = &stock
	}
	if p.Attrs != nil {
		clone.Attrs = make(map[string]any, len(p.Attrs))
		for k, v := range p.Attrs {
			clone.Attrs[k] = v
		}
	}
	return &clone
}

// Redacted returns a copy with the visibility-restricted stock field removed.
func (p *Product) Redacted() *Product {
	clone := p.Clone()
	clone.Stock = nil
	return clone
}

// FieldKeys returns the set of JSON keys present on this record. The set is
// derived per record, not from a fixed schema.
func (p *Product) FieldKeys() map[string]struct{} {
	keys := map[string]struct{}{
		KeyUUID:         {},
		KeyTitle:        {},
		KeyPricePerUnit: {},
	}
	if p.Category != "" {
		keys[KeyCategory] = struct{}{}
	}
	if p.Stock != nil {
		keys[KeyStock] = struct{}{}
	}
	for k := range p.Attrs {
		keys[k] = struct{}{}
	}
	return keys
}

// DisallowedKeys returns the keys in partial that the current record does not
// carry, in the order they appear iterating the payload's decoded key list.
func (p *Product) DisallowedKeys(partial map[string]any) []string {
	allowed := p.FieldKeys()
	var invalid []string
	for k := range partial {
		if _, ok := allowed[k]; !ok {
			invalid = append(invalid, k)
		}
	}
	return invalid
}

// Merge shallow-merges partial over the record. Callers must have verified
// the keys with DisallowedKeys first; unknown keys are applied to Attrs.
func (p *Product) Merge(partial map[string]any) {
	for k, v := range partial {
		switch k {
		case KeyUUID:
			if s, ok := v.(string); ok {
				p.UUID = s
			}
		case KeyTitle:
			if s, ok := v.(string); ok {
				p.Title = s
			}
		case KeyPricePerUnit:
			if f, ok := v.(float64); ok {
				p.PricePerUnit = f
			}
		case KeyCategory:
			if s, ok := v.(string); ok {
				p.Category = s
			}
		case KeyStock:
			if f, ok := v.(float64); ok {
				stock := f
				p.Stock = &stock
			}
		default:
			if p.Attrs == nil {
				p.Attrs = map[string]any{}
			}
			p.Attrs[k] = v
		}
	}
}

// MarshalJSON flattens the open attributes beside the fixed keys. Category is
// omitted when blank and stock when absent, so a redacted record carries no
// stock key at all.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attrs)+5)
	for k, v := range p.Attrs {
		out[k] = v
	}
	out[KeyUUID] = p.UUID
	out[KeyTitle] = p.Title
	out[KeyPricePerUnit] = p.PricePerUnit
	if p.Category != "" {
		out[KeyCategory] = p.Category
	}
	if p.Stock != nil {
		out[KeyStock] = *p.Stock
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits the payload into fixed fields and open attributes.
// Values of unexpected type for a fixed key fall through to Attrs so nothing
// a record carries is dropped.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Product{}
	for k, v := range raw {
		switch k {
		case KeyUUID:
			if s, ok := v.(string); ok {
				p.UUID = s
				continue
			}
		case KeyTitle:
			if s, ok := v.(string); ok {
				p.Title = s
				continue
			}
		case KeyPricePerUnit:
			if f, ok := v.(float64); ok {
				p.PricePerUnit = f
				continue
			}
		case KeyCategory:
			if s, ok := v.(string); ok {
				p.Category = s
				continue
			}
		case KeyStock:
			if f, ok := v.(float64); ok {
				stock := f
				p.Stock = &stock
				continue
			}
		default:
		}
		if p.Attrs == nil {
			p.Attrs = map[string]any{}
		}
		p.Attrs[k] = v
	}
	return nil
}

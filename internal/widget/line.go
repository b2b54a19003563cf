package widget

import "encoding/json"

// Line is one widget cart row: a product snapshot plus a quantity. The
// quantity exists only on this side; the server cart never tracks it.
type Line struct {
	Fields   map[string]any
	Quantity int
}

// NewLine snapshots the product fields under the given quantity. A quantity
// key inside the product payload is superseded by the explicit value.
func NewLine(product map[string]any, quantity int) Line {
	fields := make(map[string]any, len(product))
	for k, v := range product {
		if k == "quantity" {
			continue
		}
		fields[k] = v
	}
	return Line{Fields: fields, Quantity: quantity}
}

// UUID returns the product uuid, or "" when absent.
func (l Line) UUID() string {
	s, _ := l.Fields["uuid"].(string)
	return s
}

// Title returns the product title, or "" when absent.
func (l Line) Title() string {
	s, _ := l.Fields["title"].(string)
	return s
}

// PricePerUnit returns the unit price, or 0 when absent.
func (l Line) PricePerUnit() float64 {
	f, _ := l.Fields["pricePerUnit"].(float64)
	return f
}

// Clone returns a copy with an independent field map.
func (l Line) Clone() Line {
	fields := make(map[string]any, len(l.Fields))
	for k, v := range l.Fields {
		fields[k] = v
	}
	return Line{Fields: fields, Quantity: l.Quantity}
}

// MarshalJSON flattens the product snapshot beside the quantity.
func (l Line) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Fields)+1)
	for k, v := range l.Fields {
		out[k] = v
	}
	out["quantity"] = l.Quantity
	return json.Marshal(out)
}

// UnmarshalJSON splits the stored row back into fields and quantity.
func (l *Line) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Fields = make(map[string]any, len(raw))
	l.Quantity = 1
	for k, v := range raw {
		if k == "quantity" {
			if f, ok := v.(float64); ok && int(f) >= 1 {
				l.Quantity = int(f)
			}
			continue
		}
		l.Fields[k] = v
	}
	return nil
}

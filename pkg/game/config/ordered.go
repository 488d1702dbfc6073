package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeOrdered walks a JSON object calling fn for each member in document order.
// A JSON null is treated as an empty object.
func decodeOrdered(data []byte, fn func(key string, raw json.RawMessage) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		if seen[key] {
			return fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = true
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// RoomTypes is the room_types object, keeping declaration order.
type RoomTypes struct {
	order []string
	byID  map[string]*RoomType
}

// UnmarshalJSON decodes the object preserving member order
func (r *RoomTypes) UnmarshalJSON(data []byte) error {
	r.order = nil
	r.byID = make(map[string]*RoomType)
	return decodeOrdered(data, func(key string, raw json.RawMessage) error {
		rt := &RoomType{}
		if err := json.Unmarshal(raw, rt); err != nil {
			return fmt.Errorf("room %q: %w", key, err)
		}
		rt.ID = key
		r.order = append(r.order, key)
		r.byID[key] = rt
		return nil
	})
}

// Get returns the room type with the given id
func (r RoomTypes) Get(id string) (*RoomType, bool) {
	rt, ok := r.byID[id]
	return rt, ok
}

// IDs returns room type ids in declaration order
func (r RoomTypes) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns room types in declaration order
func (r RoomTypes) All() []*RoomType {
	out := make([]*RoomType, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of room types
func (r RoomTypes) Len() int {
	return len(r.order)
}

// DecorationSpecs is a decorations object, keeping declaration order.
type DecorationSpecs []DecorationSpec

// UnmarshalJSON decodes the object preserving member order
func (d *DecorationSpecs) UnmarshalJSON(data []byte) error {
	*d = nil
	return decodeOrdered(data, func(key string, raw json.RawMessage) error {
		var spec DecorationSpec
		if err := json.Unmarshal(raw, &spec); err != nil {
			return fmt.Errorf("decoration %q: %w", key, err)
		}
		spec.Name = key
		spec.Order = len(*d)
		*d = append(*d, spec)
		return nil
	})
}

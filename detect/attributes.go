package detect

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pair is a single key/value entry of an Attributes map
type Pair struct {
	Key   string
	Value any
}

// Attributes is a string keyed map of JSON scalar values that preserves the
// key order of the document it was decoded from.  The upstream analysis
// task defines the keys, so callers must tolerate arbitrary or missing
// entries.  Numeric values are kept as json.Number so they stringify
// exactly as written in the document.
type Attributes struct {
	pairs []Pair
}

// NewAttributes creates an Attributes map from the given pairs in order.
// It is intended for constructing fixtures and documents in code, decoded
// documents preserve their own order.
func NewAttributes(pairs ...Pair) Attributes {
	return Attributes{pairs: pairs}
}

// Len returns the number of entries
func (a Attributes) Len() int {
	return len(a.pairs)
}

// Get returns the value for the given key and whether it was present
func (a Attributes) Get(key string) (any, bool) {
	for _, p := range a.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}

	return nil, false
}

// Pairs returns the entries in insertion order.  The returned slice is
// shared, callers must not modify it.
func (a Attributes) Pairs() []Pair {
	return a.pairs
}

// UnmarshalJSON decodes a JSON object preserving its key order
func (a *Attributes) UnmarshalJSON(data []byte) error {

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()

	if err != nil {
		return err
	}

	// a null value decodes to an empty map
	if tok == nil {
		a.pairs = nil
		return nil
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes: expected JSON object, got %v", tok)
	}

	a.pairs = nil

	for dec.More() {
		keyTok, err := dec.Token()

		if err != nil {
			return err
		}

		key, ok := keyTok.(string)

		if !ok {
			return fmt.Errorf("attributes: expected object key, got %v", keyTok)
		}

		var val any

		if err := dec.Decode(&val); err != nil {
			return err
		}

		a.pairs = append(a.pairs, Pair{Key: key, Value: val})
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// MarshalJSON encodes the map as a JSON object in insertion order
func (a Attributes) MarshalJSON() ([]byte, error) {

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, p := range a.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(p.Key)

		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(p.Value)

		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

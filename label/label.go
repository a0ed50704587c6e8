// Package label derives display strings from an entity's open ended
// analysis attributes, keeping the renderer agnostic to whatever schema
// the upstream analysis task produced.
package label

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vidmark/go-vidmark/detect"
)

// Unknown is returned when no usable attribute exists
const Unknown = "Unknown"

// fallbackKeys are tried in order when no preferred key yields a value
var fallbackKeys = []string{"emotion", "action", "pose", "expression"}

// Resolve derives a human readable label from the analysis attributes.
// The preferred key wins when present with a non empty, non zero value,
// then the fixed fallback keys, then the first string valued attribute in
// insertion order whose key is not a confidence or intensity score.  When
// nothing usable exists it returns Unknown.
func Resolve(attrs detect.Attributes, preferredKey string) string {

	if preferredKey != "" {
		if v, ok := attrs.Get(preferredKey); ok && truthy(v) {
			return display(v)
		}
	}

	for _, key := range fallbackKeys {
		if v, ok := attrs.Get(key); ok && truthy(v) {
			return display(v)
		}
	}

	for _, p := range attrs.Pairs() {

		if p.Key == "confidence" || p.Key == "intensity" {
			continue
		}

		if s, ok := p.Value.(string); ok {
			return display(s)
		}
	}

	return Unknown
}

// truthy reports whether a value counts as present for label selection
func truthy(v any) bool {

	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// display formats a value for rendering, strings are title cased and
// numbers stringify as written
func display(v any) string {

	switch t := v.(type) {
	case string:
		return cases.Title(language.English).String(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Released under an MIT license. See LICENSE.

package commands

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func encodingMethods() []Method {
	return []Method{
		method("from_json", signature.Of("s", value.String), fromJSON),
		method("to_json", signature.Of("x", signature.Any), toJSON),
	}
}

func fromJSON(c *Call) (value.T, error) {
	var h any

	if err := json.Unmarshal([]byte(c.Str("s")), &h); err != nil {
		return value.Nil, fault.Newf(fault.ParseError, "malformed JSON: %v", err)
	}

	return value.Of(h)
}

func toJSON(c *Call) (value.T, error) {
	h, err := value.Host(c.Arg("x"))
	if err != nil {
		return value.Nil, err
	}

	b, err := json.Marshal(encodable(h))
	if err != nil {
		return value.Nil, fault.Newf(fault.TypeMismatch, "cannot encode: %v", err)
	}

	return value.Str(string(b)), nil
}

// Handles have no JSON form so they are encoded as their descriptions.
func encodable(h any) any {
	switch h := h.(type) {
	case nil, bool, float64, string:
		return h
	case []any:
		for i, e := range h {
			h[i] = encodable(e)
		}

		return h
	case map[string]any:
		for k, e := range h {
			h[k] = encodable(e)
		}

		return h
	case fmt.Stringer:
		return h.String()
	}

	return fmt.Sprintf("%v", h)
}

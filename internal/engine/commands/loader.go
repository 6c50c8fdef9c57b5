// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/lambda"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func loaderMethods() []Method {
	return []Method{
		method("__get_attr", signature.Of("l", value.Lambda, "k", value.String), lambdaAttr),
		method("__get_lexical_scopes", signature.Of(), func(c *Call) (value.T, error) {
			return value.Handle(value.Scopes, c.Task.Scopes()), nil
		}),
		method("__register_method", signature.Of(
			"lambda", value.Lambda, "name", value.String, "global", value.Bool,
		), registerMethod),
		method("compile", signature.Of("s", value.String), func(c *Call) (value.T, error) {
			u, err := c.Compile(c.Str("s"))
			if err != nil {
				return value.Nil, fault.Wrap(fault.CompileError, err)
			}

			return value.Handle(value.Code, u), nil
		}),
		method("globals", signature.Of(), func(c *Call) (value.T, error) {
			return value.FromMap(c.Task.Scopes().Globals()), nil
		}),
		// A native call has no frame of its own, so the loaded closure
		// captures the caller's whole chain and its top-level assignments
		// land in the caller's innermost scope.
		method("load", signature.Of("c", value.Code), func(c *Call) (value.T, error) {
			entry := c.LoadCode(c.Unit("c"))

			return lambda.Loaded("loaded_code", c.Task.Scopes(), entry).Value(), nil
		}),
		method("locals", signature.Of("l", value.Lambda, "h", value.Hash), func(c *Call) (value.T, error) {
			return c.Lambda("l").WithLocals(c.Hash("h")).Value(), nil
		}),
	}
}

func lambdaAttr(c *Call) (value.T, error) {
	l := c.Lambda("l")

	switch k := c.Str("k"); k {
	case "name":
		return value.Str(l.Name()), nil
	case "params":
		ps := l.Params().Params()
		items := make([]value.T, len(ps))

		for i, p := range ps {
			items[i] = value.FromMap(value.Map{
				"kind": value.Str(p.Kind.String()),
				"name": value.Str(p.Name),
				"type": value.Str(p.Constraint.String()),
			})
		}

		return value.NewArray(items...), nil
	default:
		return value.Nil, fault.Newf(fault.MissingAttribute, "Lambda has no attribute %s", k)
	}
}

// Methods defined by language code either join the global overload set or
// shadow the name in the caller's innermost scope.
func registerMethod(c *Call) (value.T, error) {
	v := c.Arg("lambda")
	name := c.Str("name")

	if c.Bool("global") {
		c.RegisterMethod(name, c.Lambda("lambda"))
	} else {
		c.Task.Scopes().Innermost()[name] = v
	}

	return v, nil
}

// Released under an MIT license. See LICENSE.

package commands

import (
	"regexp"
	"strings"

	"github.com/michaelmacinnis/adapted"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func stringMethods() []Method {
	s := signature.Of("s", value.String)
	ss := signature.Of("s", value.String, "t", value.String)

	return []Method{
		method("String", signature.Of("x", signature.Any), func(c *Call) (value.T, error) {
			return value.Str(c.Arg("x").String()), nil
		}),
		method("String", s, func(c *Call) (value.T, error) {
			return c.Arg("s"), nil
		}),
		method("__get_item", signature.Of("s", value.String, "i", value.Number), stringItem),
		method("__match", signature.Of("s", value.String, "regex", value.String), match),
		method("globmatch", signature.Of("pattern", value.String, "name", value.String), globmatch),
		method("join", signature.Of("sep", value.String, "a", value.Array), join),
		method("len", s, func(c *Call) (value.T, error) {
			return value.Int(len([]rune(c.Str("s")))), nil
		}),
		method("lines", s, lines),
		method("lower", s, func(c *Call) (value.T, error) {
			return value.Str(strings.ToLower(c.Str("s"))), nil
		}),
		method("replace", signature.Of("s", value.String, "old", value.String, "new", value.String), replace),
		method("split", ss, func(c *Call) (value.T, error) {
			return value.Of(strings.Split(c.Str("s"), c.Str("t")))
		}),
		method("trim_prefix", ss, func(c *Call) (value.T, error) {
			return value.Str(strings.TrimPrefix(c.Str("s"), c.Str("t"))), nil
		}),
		method("trim_suffix", ss, func(c *Call) (value.T, error) {
			return value.Str(strings.TrimSuffix(c.Str("s"), c.Str("t"))), nil
		}),
		method("upper", s, func(c *Call) (value.T, error) {
			return value.Str(strings.ToUpper(c.Str("s"))), nil
		}),
	}
}

func globmatch(c *Call) (value.T, error) {
	ok, err := adapted.Match(c.Str("pattern"), c.Str("name"))
	if err != nil {
		return value.Nil, fault.Newf(fault.ParseError, "bad pattern %q: %v", c.Str("pattern"), err)
	}

	return value.Boolean(ok), nil
}

func join(c *Call) (value.T, error) {
	items := c.List("a").Items
	parts := make([]string, len(items))

	for i, v := range items {
		if s, err := v.AsStr(); err == nil {
			parts[i] = s
		} else {
			parts[i] = v.String()
		}
	}

	return value.Str(strings.Join(parts, c.Str("sep"))), nil
}

func lines(c *Call) (value.T, error) {
	return value.Of(strings.Split(c.Str("s"), "\n"))
}

func match(c *Call) (value.T, error) {
	re, err := regexp.Compile(c.Str("regex"))
	if err != nil {
		return value.Nil, fault.Newf(fault.ParseError, "bad regular expression: %v", err)
	}

	m := re.FindStringSubmatch(c.Str("s"))
	if m == nil {
		return value.Nil, nil
	}

	return value.Of(m)
}

func replace(c *Call) (value.T, error) {
	return value.Str(strings.ReplaceAll(c.Str("s"), c.Str("old"), c.Str("new"))), nil
}

func stringItem(c *Call) (value.T, error) {
	rs := []rune(c.Str("s"))

	i := c.Int("i")
	if i < 0 || i >= len(rs) {
		return value.Nil, fault.Newf(fault.OutOfBounds, "index %d out of range [0, %d)", i, len(rs))
	}

	return value.Str(string(rs[i])), nil
}

// Released under an MIT license. See LICENSE.

// Package value provides quill's tagged runtime value type.
//
// A value is a closed sum: one tag per concrete kind of data plus a family
// of opaque handle tags for host objects (processes, threads, closures,
// compiled code, streams, line sessions and scope chains). Accessors check
// the tag and report a TypeMismatch fault rather than assume a shape.
package value

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/quill/internal/type/fault"
)

// Tag identifies the kind of data held by a value.
type Tag uint8

// Value tags. Handle tags follow Hash.
const (
	Null Tag = iota
	Bool
	Number
	String
	Array
	Hash

	Process
	Thread
	Lambda
	Code
	Stream
	Readline
	Scopes

	tags
)

var names = [tags]string{
	Null:     "Null",
	Bool:     "Bool",
	Number:   "Number",
	String:   "String",
	Array:    "Array",
	Hash:     "Hash",
	Process:  "Process",
	Thread:   "Thread",
	Lambda:   "Lambda",
	Code:     "Code",
	Stream:   "Stream",
	Readline: "Readline",
	Scopes:   "Scopes",
}

// Handle returns true if the tag t identifies an opaque host object.
func (t Tag) Handle() bool {
	return t >= Process && t < tags
}

// String returns the language-level name of the tag t.
func (t Tag) String() string {
	if t < tags {
		return names[t]
	}

	return "Tag(" + strconv.Itoa(int(t)) + ")"
}

// Lookup returns the tag with the language-level name s.
func Lookup(s string) (Tag, bool) {
	for t, n := range names {
		if n == s {
			return Tag(t), true
		}
	}

	return Null, false
}

// T (value) is a tagged runtime datum.
type T struct {
	tag  Tag
	data any
}

type value = T

// List is the payload of an Array value. It is shared, so changes made
// through one Array value are visible through every copy of that value.
type List struct {
	Items []T
}

// Map is the payload of a Hash value. Like List it is shared.
type Map map[string]T

// Nil is the absence value.
var Nil = value{tag: Null} //nolint:gochecknoglobals

// New wraps payload with the tag t. The payload must have the shape
// required by t or New returns a TypeMismatch fault.
func New(t Tag, payload any) (T, error) {
	ok := false

	switch t {
	case Null:
		ok = payload == nil
	case Bool:
		_, ok = payload.(bool)
	case Number:
		_, ok = payload.(float64)
	case String:
		_, ok = payload.(string)
	case Array:
		_, ok = payload.(*List)
	case Hash:
		_, ok = payload.(Map)
	default:
		ok = t.Handle() && payload != nil
	}

	if !ok {
		return Nil, fault.Newf(fault.TypeMismatch, "cannot wrap %T as %s", payload, t)
	}

	return value{tag: t, data: payload}, nil
}

// Boolean creates a Bool value.
func Boolean(b bool) T {
	return value{tag: Bool, data: b}
}

// Num creates a Number value.
func Num(f float64) T {
	return value{tag: Number, data: f}
}

// Int creates a Number value from the integer i.
func Int(i int) T {
	return Num(float64(i))
}

// Str creates a String value.
func Str(s string) T {
	return value{tag: String, data: s}
}

// NewArray creates an Array value holding items.
func NewArray(items ...T) T {
	l := &List{Items: make([]T, 0, len(items))}
	l.Items = append(l.Items, items...)

	return value{tag: Array, data: l}
}

// NewHash creates an empty Hash value.
func NewHash() T {
	return value{tag: Hash, data: Map{}}
}

// FromMap creates a Hash value sharing the map m.
func FromMap(m Map) T {
	if m == nil {
		m = Map{}
	}

	return value{tag: Hash, data: m}
}

// Handle wraps the host object o with the handle tag t.
func Handle(t Tag, o any) T {
	if !t.Handle() {
		panic("value.Handle: " + t.String() + " is not a handle tag")
	}

	return value{tag: t, data: o}
}

// Tag returns the tag of the value v.
func (v value) Tag() Tag {
	return v.tag
}

// Payload returns the untyped payload of the value v.
func (v value) Payload() any {
	return v.data
}

// AsBool returns the payload of a Bool value.
func (v value) AsBool() (bool, error) {
	b, ok := v.data.(bool)
	if v.tag != Bool || !ok {
		return false, mismatch(Bool, v)
	}

	return b, nil
}

// AsNum returns the payload of a Number value.
func (v value) AsNum() (float64, error) {
	f, ok := v.data.(float64)
	if v.tag != Number || !ok {
		return 0, mismatch(Number, v)
	}

	return f, nil
}

// AsInt returns the payload of a Number value that holds an integer.
func (v value) AsInt() (int, error) {
	f, err := v.AsNum()
	if err != nil {
		return 0, err
	}

	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fault.Newf(fault.OutOfBounds, "%v is not an integer", f)
	}

	return int(f), nil
}

// AsStr returns the payload of a String value.
func (v value) AsStr() (string, error) {
	s, ok := v.data.(string)
	if v.tag != String || !ok {
		return "", mismatch(String, v)
	}

	return s, nil
}

// AsList returns the payload of an Array value.
func (v value) AsList() (*List, error) {
	l, ok := v.data.(*List)
	if v.tag != Array || !ok {
		return nil, mismatch(Array, v)
	}

	return l, nil
}

// AsHash returns the payload of a Hash value.
func (v value) AsHash() (Map, error) {
	m, ok := v.data.(Map)
	if v.tag != Hash || !ok {
		return nil, mismatch(Hash, v)
	}

	return m, nil
}

// AsHandle returns the host object held by a handle value tagged t.
func (v value) AsHandle(t Tag) (any, error) {
	if v.tag != t || !t.Handle() {
		return nil, mismatch(t, v)
	}

	return v.data, nil
}

// Equal returns true if v and w have the same tag and structurally equal
// payloads. Handles are equal only if they refer to the same host object.
// Containers that reach themselves compare equal when their shapes match.
func Equal(v, w T) bool {
	return equal(v, w, map[[2]uintptr]struct{}{})
}

func equal(v, w T, seen map[[2]uintptr]struct{}) bool {
	if v.tag != w.tag {
		return false
	}

	switch v.tag {
	case Null:
		return true
	case Array, Hash:
		pair := [2]uintptr{identity(v), identity(w)}
		if pair[0] == pair[1] {
			return true
		}

		if _, ok := seen[pair]; ok {
			return true
		}

		seen[pair] = struct{}{}

		if v.tag == Hash {
			return equalMaps(v.data.(Map), w.data.(Map), seen)
		}

		a, b := v.data.(*List), w.data.(*List)
		if len(a.Items) != len(b.Items) {
			return false
		}

		for i := range a.Items {
			if !equal(a.Items[i], b.Items[i], seen) {
				return false
			}
		}

		return true
	default:
		return v.data == w.data
	}
}

func equalMaps(a, b Map, seen map[[2]uintptr]struct{}) bool {
	if len(a) != len(b) {
		return false
	}

	for k, x := range a {
		y, ok := b[k]
		if !ok || !equal(x, y, seen) {
			return false
		}
	}

	return true
}

// Host converts the value tree rooted at v into plain host data.
// Handles are returned as the host objects they refer to. A container
// that contains itself has no host form and is reported as a TypeMismatch.
func Host(v T) (any, error) {
	return host(v, map[uintptr]struct{}{})
}

func host(v T, path map[uintptr]struct{}) (any, error) {
	if v.tag != Array && v.tag != Hash {
		if v.tag == Null {
			return nil, nil
		}

		return v.data, nil
	}

	id := identity(v)
	if _, ok := path[id]; ok {
		return nil, fault.Newf(fault.TypeMismatch, "cyclic value: %s contains itself", v.tag)
	}

	path[id] = struct{}{}
	defer delete(path, id)

	if v.tag == Hash {
		m := v.data.(Map)
		h := make(map[string]any, len(m))

		for k, e := range m {
			x, err := host(e, path)
			if err != nil {
				return nil, err
			}

			h[k] = x
		}

		return h, nil
	}

	l := v.data.(*List)
	a := make([]any, len(l.Items))

	for i, e := range l.Items {
		x, err := host(e, path)
		if err != nil {
			return nil, err
		}

		a[i] = x
	}

	return a, nil
}

// identity returns the address of a container's shared payload.
func identity(v T) uintptr {
	return reflect.ValueOf(v.data).Pointer()
}

// Of converts plain host data into a value tree. It accepts what a JSON
// decoder produces along with the common Go integer types, string slices
// and values.
func Of(h any) (T, error) {
	switch h := h.(type) {
	case nil:
		return Nil, nil
	case T:
		return h, nil
	case bool:
		return Boolean(h), nil
	case float64:
		return Num(h), nil
	case int:
		return Int(h), nil
	case int64:
		return Num(float64(h)), nil
	case *int:
		if h == nil {
			return Nil, nil
		}

		return Int(*h), nil
	case string:
		return Str(h), nil
	case []string:
		l := &List{Items: make([]T, len(h))}
		for i, s := range h {
			l.Items[i] = Str(s)
		}

		return value{tag: Array, data: l}, nil
	case []any:
		l := &List{Items: make([]T, len(h))}

		for i, e := range h {
			v, err := Of(e)
			if err != nil {
				return Nil, err
			}

			l.Items[i] = v
		}

		return value{tag: Array, data: l}, nil
	case map[string]any:
		m := make(Map, len(h))

		for k, e := range h {
			v, err := Of(e)
			if err != nil {
				return Nil, err
			}

			m[k] = v
		}

		return value{tag: Hash, data: m}, nil
	case error:
		return Str(h.Error()), nil
	}

	return Nil, fault.Newf(fault.TypeMismatch, "no value form for %T", h)
}

// String returns a short literal rendering of v, for diagnostics.
func (v value) String() string {
	var b strings.Builder

	write(&b, v, 0)

	return b.String()
}

// Truth returns the boolean interpretation of v: Null, false, zero, and
// empty strings, arrays and hashes are false; everything else is true.
func Truth(v T) bool {
	switch v.tag {
	case Null:
		return false
	case Bool:
		return v.data.(bool)
	case Number:
		return v.data.(float64) != 0
	case String:
		return v.data.(string) != ""
	case Array:
		return len(v.data.(*List).Items) != 0
	case Hash:
		return len(v.data.(Map)) != 0
	default:
		return true
	}
}

// Keys returns the keys of m in sorted order.
func (m Map) Keys() []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}

	sort.Strings(ks)

	return ks
}

// Len returns the number of items in the list l.
func (l *List) Len() int {
	return len(l.Items)
}

// Append adds v to the end of the list l.
func (l *List) Append(v T) {
	l.Items = append(l.Items, v)
}

const depth = 8

func mismatch(expected Tag, v T) error {
	return fault.Newf(fault.TypeMismatch, "expected %s, got %s", expected, v.tag)
}

func write(b *strings.Builder, v T, level int) {
	if level > depth {
		b.WriteString("...")

		return
	}

	switch v.tag {
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(strconv.FormatBool(v.data.(bool)))
	case Number:
		b.WriteString(FormatNum(v.data.(float64)))
	case String:
		b.WriteString(strconv.Quote(v.data.(string)))
	case Array:
		b.WriteByte('[')

		for i, e := range v.data.(*List).Items {
			if i > 0 {
				b.WriteString(", ")
			}

			write(b, e, level+1)
		}

		b.WriteByte(']')
	case Hash:
		m := v.data.(Map)

		b.WriteString("Hash{")

		for i, k := range m.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			write(b, m[k], level+1)
		}

		b.WriteByte('}')
	default:
		if s, ok := v.data.(fmt.Stringer); ok {
			b.WriteString(s.String())
		} else {
			fmt.Fprintf(b, "<%s>", v.tag)
		}
	}
}

// FormatNum renders f without a trailing fraction when it is integral.
func FormatNum(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

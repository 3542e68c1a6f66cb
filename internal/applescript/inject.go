package applescript

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value. The set is closed: anything a
// caller wants to pass into a script must be expressed as one of these.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindList
	KindObject
)

// Value is a typed parameter destined for injection into script source.
// Construct one with the Null/String/Bool/Int/Float/List/Object helpers or
// with FromAny at the call boundary.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int64
	f    float64
	list []Value
	obj  any
}

func Null() Value            { return Value{kind: KindNull} }
func String(s string) Value  { return Value{kind: KindString, str: s} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Int(n int64) Value      { return Value{kind: KindInt, i: n} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Object wraps an arbitrary JSON-encodable composite. It is injected as a
// quoted JSON string; the receiving script re-parses it.
func Object(v any) Value { return Value{kind: KindObject, obj: v} }

// FromAny converts a dynamically typed value (as decoded from tool-call JSON
// arguments) into a Value. Unsupported kinds are rejected.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t)), nil
		}
		return Float(t), nil
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			iv, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, iv)
		}
		return List(items...), nil
	case map[string]any:
		return Object(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported parameter type %T", v)
	}
}

// escapeString makes s safe inside an AppleScript double-quoted literal.
// Backslashes first, then quotes, then control characters the script source
// must not contain verbatim.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	return strings.ReplaceAll(s, "\t", `\t`)
}

// encode renders the Value as AppleScript literal text.
func (v Value) encode() (string, error) {
	switch v.kind {
	case KindNull:
		return "missing value", nil
	case KindString:
		return `"` + escapeString(v.str) + `"`, nil
	case KindBool:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64), nil
	case KindList:
		items := make([]string, 0, len(v.list))
		for _, item := range v.list {
			switch item.kind {
			case KindList, KindObject:
				// Nested composites fall back to the JSON-string rule.
				enc, err := Object(item.toAny()).encode()
				if err != nil {
					return "", err
				}
				items = append(items, enc)
			default:
				enc, err := item.encode()
				if err != nil {
					return "", err
				}
				items = append(items, enc)
			}
		}
		return "{" + strings.Join(items, ", ") + "}", nil
	case KindObject:
		data, err := json.Marshal(v.obj)
		if err != nil {
			return "", fmt.Errorf("marshal composite parameter: %w", err)
		}
		return `"` + escapeString(string(data)) + `"`, nil
	default:
		return "", fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// toAny converts a Value back to a plain Go value for JSON encoding.
func (v Value) toAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindList:
		out := make([]any, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.toAny())
		}
		return out
	default:
		return v.obj
	}
}

// Inject substitutes every $name placeholder in code with the encoded literal
// for params[name]. Names are substituted longest first so a parameter whose
// name is a prefix of another's cannot clobber it. A name with no matching
// placeholder is left alone; the script will fail downstream and be reported
// as a ProcessError.
func Inject(code string, params map[string]Value) (string, error) {
	if len(params) == 0 {
		return code, nil
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		literal, err := params[name].encode()
		if err != nil {
			return "", &InjectionError{Name: name, Reason: err.Error()}
		}
		code = strings.ReplaceAll(code, "$"+name, literal)
	}
	return code, nil
}

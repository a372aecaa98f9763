package style

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Value is a style value as produced by the stylesheet compiler. It is one of
// Literal, RuntimeCall, Nested or Record.
type Value interface {
	isValue()
}

// Literal is a static string or number.
type Literal struct {
	Value any
}

// RuntimeCall is a value computed at resolution time by a named function,
// e.g. var(--color) or pixelRatio({1: "16", 2: "32"}).
type RuntimeCall struct {
	Name      string
	Arguments []Value
}

// Nested is an ordered list of values (transforms, shadows, ...).
type Nested []Value

// Record is a keyed argument map. It only appears as a runtime call argument.
type Record map[string]Value

func (Literal) isValue()     {}
func (RuntimeCall) isValue() {}
func (Nested) isValue()      {}
func (Record) isValue()      {}

func String(s string) Literal     { return Literal{Value: s} }
func Number(n float64) Literal    { return Literal{Value: n} }
func Var(name string) RuntimeCall { return RuntimeCall{Name: "var", Arguments: []Value{String(name)}} }

// Runtime builds a RuntimeCall.
func Runtime(name string, args ...Value) RuntimeCall {
	return RuntimeCall{Name: name, Arguments: args}
}

// IsDynamic reports whether v needs a runtime function to be resolved.
func IsDynamic(v Value) bool {
	switch v := v.(type) {
	case RuntimeCall:
		return true
	case Nested:
		for _, item := range v {
			if IsDynamic(item) {
				return true
			}
		}
	case Record:
		for _, item := range v {
			if IsDynamic(item) {
				return true
			}
		}
	}

	return false
}

// DecodeValue converts loosely typed compiler output (YAML, JSON, Go literals)
// into a Value. Maps with `type: runtime` become RuntimeCalls, other maps
// become Records, sequences become Nested.
func DecodeValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("style value is empty")
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Literal{Value: v}, nil
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	case []any:
		nested := make(Nested, 0, len(v))
		for i, item := range v {
			value, err := DecodeValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			nested = append(nested, value)
		}
		return nested, nil
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, item := range v {
			m[fmt.Sprint(key)] = item
		}
		return DecodeValue(m)
	case map[string]any:
		if v["type"] == "runtime" {
			return decodeRuntimeCall(v)
		}

		record := make(Record, len(v))
		for _, key := range sortedKeys(v) {
			value, err := DecodeValue(v[key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			record[key] = value
		}
		return record, nil
	}

	return nil, fmt.Errorf("unsupported style value of type %T", raw)
}

func decodeRuntimeCall(m map[string]any) (Value, error) {
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("runtime value without a name")
	}

	call := RuntimeCall{Name: name}

	switch args := m["arguments"].(type) {
	case nil:
	case []any:
		for i, arg := range args {
			value, err := DecodeValue(arg)
			if err != nil {
				return nil, fmt.Errorf("%s argument %d: %w", name, i, err)
			}
			call.Arguments = append(call.Arguments, value)
		}
	default:
		return nil, fmt.Errorf("%s arguments must be a list, got %T", name, args)
	}

	for key := range m {
		if key != "type" && key != "name" && key != "arguments" {
			return nil, fmt.Errorf("runtime value %s has unknown key %q", name, key)
		}
	}

	return call, nil
}

var valueType = reflect.TypeOf((*Value)(nil)).Elem()

// ValueHook is a mapstructure decode hook turning raw values into Values.
func ValueHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != valueType {
			return data, nil
		}

		return DecodeValue(data)
	}
}

// Format renders a value the way it would appear in compiler output, for diagnostics.
func Format(v Value) string {
	switch v := v.(type) {
	case Literal:
		if f, ok := v.Value.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return fmt.Sprint(v.Value)
	case RuntimeCall:
		s := v.Name + "("
		for i, arg := range v.Arguments {
			if i > 0 {
				s += ", "
			}
			s += Format(arg)
		}
		return s + ")"
	case Nested:
		s := "["
		for i, item := range v {
			if i > 0 {
				s += ", "
			}
			s += Format(item)
		}
		return s + "]"
	case Record:
		s := "{"
		for i, key := range sortedKeys(v) {
			if i > 0 {
				s += ", "
			}
			s += key + ": " + Format(v[key])
		}
		return s + "}"
	}

	return "<nil>"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

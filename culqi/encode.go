package culqi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Object is an ordered mapping used to build query strings and request
// payloads with a deterministic field order. Go maps randomize iteration,
// so filters are modeled as field lists instead.
type Object []Field

// Field is one member of an Object.
type Field struct {
	Name  string
	Value any
}

func (o Object) add(name string, value any) Object {
	return append(o, Field{Name: name, Value: value})
}

func (o Object) addString(name, value string) Object {
	if value == "" {
		return o
	}
	return o.add(name, value)
}

func (o Object) addInt(name string, value int64) Object {
	if value == 0 {
		return o
	}
	return o.add(name, value)
}

func (o Object) addBool(name string, value *bool) Object {
	if value == nil {
		return o
	}
	return o.add(name, *value)
}

// MarshalJSON emits the object members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Pair is one flattened query parameter.
type Pair struct {
	Path  string
	Value string
}

// Encode flattens an arbitrarily nested value into ordered query pairs.
// Array elements append "[i]" to the path, object members append ".name"
// (bare at the root). Nil values emit nothing; root-level names listed in
// ignore are dropped without being traversed.
func Encode(value any, ignore []string) []Pair {
	e := encoder{ignore: ignore}
	e.walk(value, "")
	return e.pairs
}

// EncodeQuery renders the flattened pairs as a URL query string,
// preserving traversal order.
func EncodeQuery(value any, ignore []string) string {
	var buf bytes.Buffer
	for i, p := range Encode(value, ignore) {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(p.Path))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(p.Value))
	}
	return buf.String()
}

type encoder struct {
	ignore []string
	pairs  []Pair
}

func (e *encoder) ignored(root string) bool {
	for _, name := range e.ignore {
		if name == root {
			return true
		}
	}
	return false
}

func (e *encoder) walk(value any, root string) {
	if e.ignored(root) {
		return
	}

	switch v := value.(type) {
	case nil:
		return
	case Object:
		for _, f := range v {
			if root == "" {
				e.walk(f.Value, f.Name)
			} else {
				e.walk(f.Value, root+"."+f.Name)
			}
		}
	case []any:
		for i, item := range v {
			e.walk(item, root+"["+strconv.Itoa(i)+"]")
		}
	default:
		e.pairs = append(e.pairs, Pair{Path: root, Value: scalarString(v)})
	}
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

var _ json.Marshaler = Object{}

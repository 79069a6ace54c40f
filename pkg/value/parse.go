package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

// MaxDepth is the deepest container level Parse keeps. Deeper arrays and
// objects are replaced by null.
const MaxDepth = 256

// Parse decodes raw JSON into a Value. Object member order follows the
// source document; for duplicate keys the last occurrence wins. Documents
// nested beyond what fastjson accepts are still parsed, with subtrees past
// MaxDepth replaced by null.
func Parse(data []byte) (Value, error) {
	var p fastjson.Parser
	fv, err := p.ParseBytes(data)
	if err == nil {
		return fromFast(fv), nil
	}
	if !json.Valid(data) {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	v, err := parseStream(data)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return v, nil
}

func parseStream(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeToken(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("trailing data after document")
	}
	return v, nil
}

func decodeToken(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth >= MaxDepth {
			return Null(), skipContainer(dec)
		}
		if t == '[' {
			items := make([]Value, 0)
			for dec.More() {
				item, err := decodeToken(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, items: items}, nil
		}
		b := newObjectBuilder(0)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return Value{}, err
			}
			key, _ := kt.(string)
			v, err := decodeToken(dec, depth+1)
			if err != nil {
				return Value{}, err
			}
			b.set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return Value{}, err
		}
		return b.value(), nil
	case string:
		return String(t), nil
	case json.Number:
		// Out of range numbers saturate to ±Inf like fastjson does.
		f, _ := strconv.ParseFloat(string(t), 64)
		return Number(f), nil
	case bool:
		return Bool(t), nil
	default:
		return Null(), nil
	}
}

// skipContainer consumes the rest of a container whose opening delimiter
// was already read.
func skipContainer(dec *json.Decoder) error {
	for open := 1; open > 0; {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				open++
			default:
				open--
			}
		}
	}
	return nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and static fixtures.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

func fromFast(fv *fastjson.Value) Value {
	switch fv.Type() {
	case fastjson.TypeTrue:
		return Bool(true)
	case fastjson.TypeFalse:
		return Bool(false)
	case fastjson.TypeNumber:
		return Number(fv.GetFloat64())
	case fastjson.TypeString:
		return String(string(fv.GetStringBytes()))
	case fastjson.TypeArray:
		arr := fv.GetArray()
		items := make([]Value, len(arr))
		for i, item := range arr {
			items[i] = fromFast(item)
		}
		return Value{kind: KindArray, items: items}
	case fastjson.TypeObject:
		obj := fv.GetObject()
		b := newObjectBuilder(obj.Len())
		obj.Visit(func(key []byte, v *fastjson.Value) {
			b.set(string(key), fromFast(v))
		})
		return b.value()
	default:
		return Null()
	}
}

// FromAny converts values produced by encoding/json (or built by hand) into
// a Value. Map keys are sorted because Go maps carry no order. Structs and
// other unsupported types are round-tripped through encoding/json.
func FromAny(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
		}
		return Number(f), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindArray, items: items}, nil
	case []string:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = String(item)
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b := newObjectBuilder(len(keys))
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			b.set(k, v)
		}
		return b.value(), nil
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b := newObjectBuilder(len(keys))
		for _, k := range keys {
			b.set(k, String(t[k]))
		}
		return b.value(), nil
	}

	rv := reflect.ValueOf(in)
	if rv.Kind() == reflect.Func || rv.Kind() == reflect.Chan {
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, in)
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	return Parse(raw)
}

// MarshalJSON encodes v with object members in their stored order.
func (v Value) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	if err := v.encode(&sb); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func (v Value) encode(sb *strings.Builder) error {
	switch v.kind {
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := item.encode(sb); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
		return nil
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			sb.Write(key)
			sb.WriteByte(':')
			if err := m.Value.encode(sb); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
		return nil
	default:
		raw, err := json.Marshal(v.Any())
		if err != nil {
			return err
		}
		sb.Write(raw)
		return nil
	}
}

// UnmarshalJSON lets Value be used directly as a decoding target.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type objectBuilder struct {
	members []Member
	index   map[string]int
}

func newObjectBuilder(size int) *objectBuilder {
	return &objectBuilder{
		members: make([]Member, 0, size),
		index:   make(map[string]int, size),
	}
}

func (b *objectBuilder) set(key string, v Value) {
	if i, ok := b.index[key]; ok {
		b.members[i].Value = v
		return
	}
	b.index[key] = len(b.members)
	b.members = append(b.members, Member{Key: key, Value: v})
}

func (b *objectBuilder) value() Value {
	return Value{kind: KindObject, members: b.members}
}

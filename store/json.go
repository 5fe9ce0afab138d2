package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/varint"
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// FromJSON parses a JSON object into a Store, mapping each member by dynamic
// numeric range per §4.6: a number is decoded as a signed Integer when it
// fits int64 (covering every negative value), an unsigned Integer when it
// only fits uint64, and a Float otherwise.
func FromJSON(data []byte) (*Store, error) {
	dec := jsonAPI.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrSerdeJSON, err)
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, errs.ErrNotAMapOrArray
	}

	pairs := make(map[string]souris.Value, len(top))
	for k, v := range top {
		val, err := jsonToValue(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		pairs[k] = val
	}

	return &Store{pairs: pairs}, nil
}

func jsonToValue(raw any) (souris.Value, error) {
	switch t := raw.(type) {
	case nil:
		return souris.NewNull(), nil
	case bool:
		return souris.NewBool(t), nil
	case json.Number:
		return jsonNumberToValue(t)
	case string:
		return souris.NewString(t), nil
	case []any:
		arr := make([]souris.Value, len(t))
		for i, elem := range t {
			v, err := jsonToValue(elem)
			if err != nil {
				return souris.Value{}, err
			}
			arr[i] = v
		}
		return souris.NewArray(arr), nil
	case map[string]any:
		m := make(map[string]souris.Value, len(t))
		for k, elem := range t {
			v, err := jsonToValue(elem)
			if err != nil {
				return souris.Value{}, err
			}
			m[k] = v
		}
		return souris.NewMap(m), nil
	default:
		return souris.Value{}, fmt.Errorf("%w: unsupported json value of type %T", errs.ErrSerdeJSON, raw)
	}
}

func jsonNumberToValue(n json.Number) (souris.Value, error) {
	if i, err := n.Int64(); err == nil {
		return souris.NewInteger(varint.FromInt64(i)), nil
	}
	if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return souris.NewInteger(varint.FromUint64(u)), nil
	}

	f, err := n.Float64()
	if err != nil {
		return souris.Value{}, fmt.Errorf("%w: %w", errs.ErrSerdeJSON, err)
	}

	return souris.NewFloat(f), nil
}

// ToJSON renders s as a JSON object. Binary, Timestamp, and Imaginary values
// have no JSON analogue: when addSourisTypes is false their presence makes
// the whole conversion lossy and ToJSON reports false; when true they are
// wrapped as {"souris_type": <tag>, "payload": …} instead, per §4.6.
func (s *Store) ToJSON(addSourisTypes bool) ([]byte, bool) {
	out := make(map[string]any, len(s.pairs))
	for k, v := range s.pairs {
		j, ok := valueToJSON(v, addSourisTypes)
		if !ok {
			return nil, false
		}
		out[k] = j
	}

	b, err := jsonAPI.Marshal(out)
	if err != nil {
		return nil, false
	}

	return b, true
}

func valueToJSON(v souris.Value, addSourisTypes bool) (any, bool) {
	switch v.Kind() {
	case souris.KindNull:
		return nil, true
	case souris.KindBoolean:
		b, _ := v.AsBool()
		return b, true
	case souris.KindInteger:
		i, _ := v.AsInteger()
		return integerToJSON(i), true
	case souris.KindFloat:
		f, _ := v.AsFloat()
		return f, true
	case souris.KindString:
		str, _ := v.AsString()
		return str, true
	case souris.KindCharacter:
		r, _ := v.AsCharacter()
		return string(r), true
	case souris.KindJSON:
		j, _ := v.AsJSON()
		return j, true
	case souris.KindArray:
		arr, _ := v.AsArray()
		out := make([]any, len(arr))
		for i, elem := range arr {
			j, ok := valueToJSON(elem, addSourisTypes)
			if !ok {
				return nil, false
			}
			out[i] = j
		}
		return out, true
	case souris.KindMap:
		m, _ := v.AsMap()
		out := make(map[string]any, len(m))
		for k, elem := range m {
			j, ok := valueToJSON(elem, addSourisTypes)
			if !ok {
				return nil, false
			}
			out[k] = j
		}
		return out, true
	case souris.KindBinary, souris.KindTimestamp, souris.KindImaginary:
		if !addSourisTypes {
			return nil, false
		}
		return map[string]any{
			"souris_type": int(v.Kind()),
			"payload":     lossyPayload(v),
		}, true
	default:
		return nil, false
	}
}

func integerToJSON(i varint.Integer) any {
	if v, err := i.Int64(); err == nil {
		return v
	}
	v, _ := i.Uint64()
	return v
}

func lossyPayload(v souris.Value) any {
	switch v.Kind() {
	case souris.KindBinary:
		b, _ := v.AsBinary()
		out := make([]any, len(b))
		for i, by := range b {
			out[i] = int(by)
		}
		return out
	case souris.KindTimestamp:
		ts, _ := v.AsTimestamp()
		return map[string]any{
			"year":       ts.Year,
			"month":      ts.Month,
			"day":        ts.Day,
			"hour":       ts.Hour,
			"minute":     ts.Minute,
			"second":     ts.Second,
			"nanosecond": ts.Nanosecond,
		}
	case souris.KindImaginary:
		re, im, _ := v.AsImaginary()
		return []any{integerToJSON(re), integerToJSON(im)}
	default:
		return nil
	}
}

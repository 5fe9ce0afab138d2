package main

import (
	"fmt"
	"strconv"

	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/varint"
)

// parseValue builds a souris.Value from a CLI string argument, interpreting
// it according to typ ("string", "int", "float", "bool", "null").
func parseValue(typ, raw string) (souris.Value, error) {
	switch typ {
	case "", "string":
		return souris.NewString(raw), nil
	case "int":
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return souris.Value{}, fmt.Errorf("%w: %w", errs.ErrParseError, err)
		}
		return souris.NewInteger(varint.FromInt64(i)), nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return souris.Value{}, fmt.Errorf("%w: %w", errs.ErrParseError, err)
		}
		return souris.NewFloat(f), nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return souris.Value{}, fmt.Errorf("%w: %w", errs.ErrParseError, err)
		}
		return souris.NewBool(b), nil
	case "null":
		return souris.NewNull(), nil
	default:
		return souris.Value{}, fmt.Errorf("unrecognised --type %q", typ)
	}
}

// valueToDisplayString renders v for terminal output.
func valueToDisplayString(v souris.Value) string {
	switch v.Kind() {
	case souris.KindString:
		s, _ := v.AsString()
		return s
	case souris.KindInteger:
		i, _ := v.AsInteger()
		return i.String()
	case souris.KindFloat:
		f, _ := v.AsFloat()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case souris.KindBoolean:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case souris.KindNull:
		return "null"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

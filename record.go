package chartsense

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Accessor reads one value from a data record. It is either a Key (a map key,
// or a gjson path for JSON records) or a Func. A zero Accessor is invalid and
// resolves to nothing.
type Accessor struct {
	Key  string
	Func func(record any) any
}

// ByKey returns an Accessor that looks up key in each record.
func ByKey(key string) Accessor { return Accessor{Key: key} }

// ByFunc returns an Accessor that calls fn for each record.
func ByFunc(fn func(record any) any) Accessor { return Accessor{Func: fn} }

// Valid reports whether the accessor can resolve anything.
func (a Accessor) Valid() bool {
	return a.Func != nil || a.Key != ""
}

// Value resolves the accessor against record. The second result is false when
// the record has no such value.
func (a Accessor) Value(record any) (any, bool) {
	if a.Func != nil {
		v := a.Func(record)
		return v, v != nil
	}
	if a.Key == "" || record == nil {
		return nil, false
	}
	switch r := record.(type) {
	case map[string]any:
		v, ok := r[a.Key]
		return v, ok && v != nil
	case map[string]float64:
		v, ok := r[a.Key]
		return v, ok
	case map[string]string:
		v, ok := r[a.Key]
		return v, ok
	case gjson.Result:
		return jsonValue(r.Get(a.Key))
	case *gjson.Result:
		return jsonValue(r.Get(a.Key))
	case json.RawMessage:
		return jsonValue(gjson.GetBytes(r, a.Key))
	case []byte:
		return jsonValue(gjson.GetBytes(r, a.Key))
	}
	return nil, false
}

// Number resolves the accessor and converts the result to float64.
func (a Accessor) Number(record any) (float64, bool) {
	v, ok := a.Value(record)
	if !ok {
		return math.NaN(), false
	}
	return toFloat(v)
}

func jsonValue(r gjson.Result) (any, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		return r.Str, true
	case gjson.True, gjson.False:
		return r.Bool(), true
	case gjson.Null:
		return nil, false
	}
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// toFloat converts numeric values (and numeric strings from loose sources
// such as spreadsheets) to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	}
	return math.NaN(), false
}

// isNumeric reports whether v is a Go numeric type. Numeric strings are not
// numeric here: they decide categorical vs continuous domains.
func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	}
	return false
}

// category formats a domain value as a categorical key.
func category(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'g', -1, 64)
	case int:
		return strconv.Itoa(c)
	case bool:
		return strconv.FormatBool(c)
	case nil:
		return ""
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return ""
}

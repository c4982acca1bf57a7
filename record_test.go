package chartsense

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/tidwall/gjson"
)

func TestAccessorValue(t *testing.T) {
	raw := json.RawMessage(`{"t": 3, "label": "mar", "nested": {"v": 7.5}, "none": null}`)

	tests := []struct {
		name   string
		acc    Accessor
		record any
		want   any
		ok     bool
	}{
		{"map any", ByKey("x"), map[string]any{"x": 4.0}, 4.0, true},
		{"map any nil value", ByKey("x"), map[string]any{"x": nil}, nil, false},
		{"map any missing", ByKey("y"), map[string]any{"x": 4.0}, nil, false},
		{"map float", ByKey("x"), map[string]float64{"x": 2}, 2.0, true},
		{"map string", ByKey("x"), map[string]string{"x": "jan"}, "jan", true},
		{"raw json number", ByKey("t"), raw, 3.0, true},
		{"raw json string", ByKey("label"), raw, "mar", true},
		{"raw json path", ByKey("nested.v"), raw, 7.5, true},
		{"raw json null", ByKey("none"), raw, nil, false},
		{"raw json missing", ByKey("zzz"), raw, nil, false},
		{"bytes", ByKey("t"), []byte(raw), 3.0, true},
		{"gjson result", ByKey("t"), gjson.ParseBytes(raw), 3.0, true},
		{"func", ByFunc(func(r any) any { return r.([]float64)[1] }), []float64{1, 9}, 9.0, true},
		{"func nil", ByFunc(func(any) any { return nil }), 1, nil, false},
		{"zero accessor", Accessor{}, map[string]any{"x": 1.0}, nil, false},
		{"nil record", ByKey("x"), nil, nil, false},
		{"unsupported record", ByKey("x"), 12, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.acc.Value(tt.record)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Value = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAccessorNumber(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
		want float64
		ok   bool
	}{
		{"float", map[string]any{"v": 1.5}, 1.5, true},
		{"int", map[string]any{"v": 7}, 7, true},
		{"uint8", map[string]any{"v": uint8(3)}, 3, true},
		{"json number", map[string]any{"v": json.Number("2.25")}, 2.25, true},
		{"numeric string", map[string]any{"v": "42"}, 42, true},
		{"text", map[string]any{"v": "abc"}, 0, false},
		{"bool", map[string]any{"v": true}, 0, false},
		{"missing", map[string]any{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ByKey("v").Number(tt.rec)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Number = %v, want %v", got, tt.want)
			}
			if !ok && !math.IsNaN(got) {
				t.Errorf("failed Number = %v, want NaN", got)
			}
		})
	}
}

func TestIsNumericAndCategory(t *testing.T) {
	if isNumeric("5") {
		t.Error("numeric strings must stay categorical")
	}
	if !isNumeric(int64(5)) || !isNumeric(json.Number("1")) {
		t.Error("integer and json.Number values are numeric")
	}
	tests := []struct {
		v    any
		want string
	}{
		{"q1", "q1"},
		{2.5, "2.5"},
		{3, "3"},
		{true, "true"},
		{nil, ""},
		{int64(9), "9"},
	}
	for _, tt := range tests {
		if got := category(tt.v); got != tt.want {
			t.Errorf("category(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestBuildScalesFromJSONRecords(t *testing.T) {
	data := []any{
		json.RawMessage(`{"t": 0, "v": 1}`),
		json.RawMessage(`{"t": 10, "v": 4}`),
	}
	sc := BuildScales(ScaleInput{Data: data, Width: 100, Height: 100, X: ByKey("t"), Y: ByKey("v")})
	if sc == nil {
		t.Fatal("BuildScales returned nil for JSON records")
	}
	if _, ok := sc.X.(*LinearScale); !ok {
		t.Errorf("X = %T, want *LinearScale", sc.X)
	}
}

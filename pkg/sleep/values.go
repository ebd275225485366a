package sleep

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// normalizeValue converts numbers to exact decimal text (json.Number) and
// passes everything else through. Nested maps and lists are walked.
func normalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		if _, err := strconv.ParseFloat(val.String(), 64); err != nil {
			return nil, fmt.Errorf("not a number: %q", val.String())
		}
		return val, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("not a finite number")
		}
		return json.Number(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("not a finite number")
		}
		return json.Number(strconv.FormatFloat(f, 'f', -1, 32)), nil
	case int:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(val, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(val, 10)), nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			nv, err := normalizeValue(inner)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(val))
		for _, inner := range val {
			nv, err := normalizeValue(inner)
			if err != nil {
				return nil, err
			}
			out = append(out, nv)
		}
		return out, nil
	default:
		return v, nil
	}
}

// coerceInt accepts integers, numbers with a fraction (truncated) and
// integer strings.
func coerceInt(v any) (int64, error) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return 0, err
		}
		return truncate(f)
	case float64:
		return truncate(val)
	case float32:
		return truncate(float64(val))
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func truncate(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= 0x1p63 || f < -0x1p63 {
		return 0, fmt.Errorf("out of range: %v", f)
	}
	return int64(f), nil
}

func coerceString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	default:
		return true
	}
}

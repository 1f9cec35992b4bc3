package cars

import (
	"errors"
	"math"
	"strconv"
)

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func isMissing(v interface{}) bool {
	return v == nil || asString(v) == ""
}

// asNumber coerces a JSON value to a float64. Numeric strings are accepted,
// matching form-driven clients that send prices as strings.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

var errNotANumber = errors.New("not a number")

// optionalNumber reads a nullable numeric field. null and "" clear the value;
// a present non-numeric value is an error.
func optionalNumber(body map[string]interface{}, key string) (*float64, bool, error) {
	v, present := body[key]
	if !present {
		return nil, false, nil
	}
	if v == nil || v == "" {
		return nil, true, nil
	}
	f, ok := asNumber(v)
	if !ok {
		return nil, true, errNotANumber
	}
	return &f, true, nil
}

func optionalInt(body map[string]interface{}, key string) (*int, bool, error) {
	f, present, err := optionalNumber(body, key)
	if err != nil || f == nil {
		return nil, present, err
	}
	i := int(math.Trunc(*f))
	return &i, true, nil
}

// optionalString returns a pointer to the string value, or nil for an
// absent, null, or empty field.
func optionalString(body map[string]interface{}, key string) *string {
	s := asString(body[key])
	if s == "" {
		return nil
	}
	return &s
}

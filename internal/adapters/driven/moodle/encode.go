package moodle

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// encodeParams flattens nested parameters into the bracketed form fields
// Moodle's REST server expects: {"intro": {"text": "x"}} becomes
// intro[text]=x and {"ids": [1, 2]} becomes ids[0]=1&ids[1]=2.
// Nil values are omitted.
func encodeParams(values url.Values, params map[string]any) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := encodeValue(values, k, params[k]); err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo // One case per supported parameter type
func encodeValue(values url.Values, key string, v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		values.Set(key, t)
	case bool:
		if t {
			values.Set(key, "1")
		} else {
			values.Set(key, "0")
		}
	case int:
		values.Set(key, strconv.Itoa(t))
	case int64:
		values.Set(key, strconv.FormatInt(t, 10))
	case float64:
		values.Set(key, strconv.FormatFloat(t, 'f', -1, 64))
	case *int:
		if t != nil {
			values.Set(key, strconv.Itoa(*t))
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := encodeValue(values, key+"["+k+"]", t[k]); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range t {
			if err := encodeValue(values, key+"["+strconv.Itoa(i)+"]", item); err != nil {
				return err
			}
		}
	default:
		// Typed slices such as []string or []map[string]any
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return fmt.Errorf("moodle: cannot encode parameter %s of type %T", key, v)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(values, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

package userapi

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Criteria keys understood by the MyBatis advanced search. Other keys are
// forwarded too.
const (
	CriteriaUsername = "username"
	CriteriaEmail    = "email"
	CriteriaFullName = "fullName"
	CriteriaIsActive = "isActive"
)

// SearchCriteria maps field names to filter values for AdvancedSearch.
//
// Scalar values (strings, byte slices, booleans, numbers, fmt.Stringer)
// become one key=value pair. Slices and arrays of scalars repeat the key
// once per element. Nil values are dropped. Maps, structs and nested slices are
// rejected with ErrUnsupportedCriteria before anything is sent.
type SearchCriteria map[string]any

// Values encodes the criteria as query parameters.
func (c SearchCriteria) Values() (url.Values, error) {
	values := make(url.Values, len(c))
	for key, v := range c {
		if v == nil {
			continue
		}
		if s, ok := scalarString(v); ok {
			values.Add(key, s)
			continue
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("%w: %q has type %T", ErrUnsupportedCriteria, key, v)
		}
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if elem == nil {
				continue
			}
			s, ok := scalarString(elem)
			if !ok {
				return nil, fmt.Errorf("%w: %q contains %T", ErrUnsupportedCriteria, key, elem)
			}
			values.Add(key, s)
		}
	}
	return values, nil
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		return strconv.FormatBool(x), true
	case fmt.Stringer:
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return "", false
}

package i18n

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
)

// Dictionary maps flattened translation keys ("details.device") to strings
// for one language.
type Dictionary map[string]string

// Lookup returns the translation for key.
func (d Dictionary) Lookup(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

// T returns the translation for key, or the key itself when missing.
// Named parameters in the form %{name} are substituted from args given as
// name, value pairs:
//
//	// "greeting": "Hello, %{name}!"
//	d.T("greeting", "name", "John") // "Hello, John!"
func (d Dictionary) T(key string, args ...string) string {
	tmpl, ok := d[key]
	if !ok {
		tmpl = key
	}
	if len(args) < 2 {
		return tmpl
	}
	return namedSprintf(tmpl, buildParams(args))
}

// Merge copies other into d, overriding existing keys.
func (d Dictionary) Merge(other Dictionary) {
	maps.Copy(d, other)
}

// Keys returns the sorted keys.
func (d Dictionary) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// buildParams converts name, value pairs into a map. An odd trailing
// argument is ignored.
func buildParams(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// namedSprintf replaces %{key} placeholders; unknown ones are left as is.
func namedSprintf(tmpl string, params map[string]string) string {
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// flatten turns nested maps into dot separated keys. Scalars are
// stringified, lists are addressed by index, nulls are skipped.
func flatten(prefix string, v any, out Dictionary) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			flatten(join(k), child, out)
		}
	case map[any]any:
		for k, child := range val {
			flatten(join(fmt.Sprint(k)), child, out)
		}
	case []any:
		for i, child := range val {
			flatten(join(strconv.Itoa(i)), child, out)
		}
	case nil:
	case string:
		out[prefix] = val
	case float64:
		out[prefix] = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		out[prefix] = fmt.Sprint(val)
	}
}

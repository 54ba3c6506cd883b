package runner

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// variableExpr matches $name references with optional dotted selectors;
// a dot only belongs to the reference when an identifier follows, so a
// trailing "$who." keeps its period.
var variableExpr = regexp.MustCompile(`\$[a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*`)

// expand substitutes $variable references in text against the run scope.
// A text that is exactly one reference yields the typed scope value, so
// numbers stay numbers; references embedded in longer text interpolate
// their string form. Unresolved references keep the original token.
func expand(text string, scope map[string]interface{}) interface{} {
	if !strings.Contains(text, "$") {
		return text
	}
	if match := variableExpr.FindString(text); match == text {
		if resolved, ok := resolvePath(scope, text[1:]); ok {
			return resolved
		}
		return text
	}
	return variableExpr.ReplaceAllStringFunc(text, func(match string) string {
		resolved, ok := resolvePath(scope, match[1:])
		if !ok {
			return match
		}
		switch reflect.ValueOf(resolved).Kind() {
		case reflect.Slice, reflect.Map:
			return match
		}
		return stringify(resolved)
	})
}

// resolvePath navigates a dotted path through maps and exported struct
// fields, i.e. exec.stdout or run.Summary. Map lookups fall back to a
// case-insensitive scan so that keys produced by JSON decoding still
// resolve.
func resolvePath(scope map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	current, ok := scope[parts[0]]
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		if current == nil {
			return nil, false
		}
		switch actual := current.(type) {
		case map[string]interface{}:
			if current, ok = actual[part]; ok {
				continue
			}
			for key, item := range actual {
				if strings.EqualFold(key, part) {
					current, ok = item, true
					break
				}
			}
			if !ok {
				return nil, false
			}
		case map[string]string:
			if current, ok = actual[part]; !ok {
				return nil, false
			}
		default:
			if current, ok = fieldValue(actual, part); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// fieldValue reads an exported struct field by name, matching
// case-insensitively and dereferencing pointers
func fieldValue(target interface{}, name string) (interface{}, bool) {
	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() || !strings.EqualFold(field.Name, name) {
			continue
		}
		return rv.Field(i).Interface(), true
	}
	return nil, false
}

// stringify renders a scope value for text interpolation
func stringify(val interface{}) string {
	if val == nil {
		return ""
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Package shape declares expected document structures and validates parsed
// JSON against them.
//
// Shapes are reflected from Go struct types using github.com/invopop/jsonschema
// so that field presence and primitive types live in one place (the struct
// definition with its json tags). Validation walks the parsed document against
// the reflected schema and reports every mismatch with its field path.
package shape

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"

	gderrors "github.com/mizushima/gdforge/internal/errors"
)

// Shape describes the expected structure of a parsed JSON document.
type Shape struct {
	schema *jsonschema.Schema

	// nullableItems permits null elements in a top-level array document.
	// Record-array documents use null as the sentinel for slot 0 and for
	// deleted records.
	nullableItems bool
}

// For reflects a shape from the struct type T. Fields without omitempty are
// required; fields not declared on T are allowed and ignored.
func For[T any]() *Shape {
	return &Shape{schema: reflectType(reflect.TypeFor[T]())}
}

// ArrayOf describes a top-level JSON array whose non-null elements match the
// struct type T. Null elements are allowed (sentinel slots).
func ArrayOf[T any]() *Shape {
	return &Shape{
		schema: &jsonschema.Schema{
			Type:  "array",
			Items: reflectType(reflect.TypeFor[T]()),
		},
		nullableItems: true,
	}
}

func reflectType(t reflect.Type) *jsonschema.Schema {
	r := jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	return r.ReflectFromType(t)
}

// Validate checks doc against the shape. The returned error carries every
// mismatch as "path: expected X, got Y"; nil means the document conforms.
func (s *Shape) Validate(doc any) *gderrors.Error {
	var problems []string
	if s.nullableItems && s.schema.Type == "array" {
		arr, ok := doc.([]any)
		if !ok {
			problems = append(problems, fmt.Sprintf("$: expected array, got %s", typeName(doc)))
		} else {
			for i, el := range arr {
				if el == nil {
					continue
				}
				validateNode(fmt.Sprintf("$[%d]", i), s.schema.Items, el, &problems)
			}
		}
	} else {
		validateNode("$", s.schema, doc, &problems)
	}

	if len(problems) == 0 {
		return nil
	}
	msg := fmt.Sprintf("document does not match expected shape: %s", strings.Join(problems, "; "))
	return gderrors.Validation(msg, "").WithDetail("problems", problems)
}

func validateNode(path string, sch *jsonschema.Schema, v any, problems *[]string) {
	if sch == nil || sch.Type == "" {
		return
	}

	switch sch.Type {
	case "object":
		m, ok := v.(map[string]any)
		if !ok {
			*problems = append(*problems, fmt.Sprintf("%s: expected object, got %s", path, typeName(v)))
			return
		}
		for _, name := range sch.Required {
			if _, present := m[name]; !present {
				*problems = append(*problems, fmt.Sprintf("%s.%s: required field missing", path, name))
			}
		}
		if sch.Properties == nil {
			return
		}
		for pair := sch.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if val, present := m[pair.Key]; present {
				validateNode(path+"."+pair.Key, pair.Value, val, problems)
			}
		}
	case "array":
		arr, ok := v.([]any)
		if !ok {
			*problems = append(*problems, fmt.Sprintf("%s: expected array, got %s", path, typeName(v)))
			return
		}
		for i, el := range arr {
			validateNode(fmt.Sprintf("%s[%d]", path, i), sch.Items, el, problems)
		}
	case "string":
		if _, ok := v.(string); !ok {
			*problems = append(*problems, fmt.Sprintf("%s: expected string, got %s", path, typeName(v)))
		}
	case "integer":
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			*problems = append(*problems, fmt.Sprintf("%s: expected integer, got %s", path, typeName(v)))
		}
	case "number":
		if _, ok := v.(float64); !ok {
			*problems = append(*problems, fmt.Sprintf("%s: expected number, got %s", path, typeName(v)))
		}
	case "boolean":
		if _, ok := v.(bool); !ok {
			*problems = append(*problems, fmt.Sprintf("%s: expected boolean, got %s", path, typeName(v)))
		}
	}
}

// typeName names the JSON type of a decoded value for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

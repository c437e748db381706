package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

// Violation identifies one offending path and the constraint it broke.
type Violation struct {
	Path       string `json:"path"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// ValidationError is returned when output parses as JSON but does not fit its shape.
type ValidationError struct {
	Shape      string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Path, v.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Shape, strings.Join(parts, "; "))
}

// ParseError is returned when output is not syntactically valid JSON.
type ParseError struct {
	Shape string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s is not valid JSON: %v", e.Shape, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks an already-decoded value against its constraints without modifying it.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := &ValidationError{Shape: shapeName(v)}
	for _, fe := range fieldErrs {
		ve.Violations = append(ve.Violations, Violation{
			Path:       trimRoot(fe.Namespace()),
			Constraint: constraint(fe),
			Message:    message(fe),
		})
	}
	return ve
}

func DecodeRecommendations(raw string) (*RecommendationResponse, error) {
	return decode[RecommendationResponse](raw)
}

func DecodeWeeklyPlan(raw string) (*WeeklyPlanResponse, error) {
	return decode[WeeklyPlanResponse](raw)
}

func DecodePlanDay(raw string) (*PlanDayRecipe, error) {
	return decode[PlanDayRecipe](raw)
}

func DecodeShoppingList(raw string) (*ShoppingList, error) {
	return decode[ShoppingList](raw)
}

// strictJSON matches object keys exactly; encoding/json folds case.
var strictJSON = jsoniter.Config{
	CaseSensitive:          true,
	ValidateJsonRawMessage: true,
}.Froze()

func decode[T any](raw string) (*T, error) {
	var out T
	shape := reflect.TypeOf(out).Name()

	var tree any
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return nil, &ParseError{Shape: shape, Err: err}
	}

	var violations []Violation
	checkShape(reflect.TypeOf(out), tree, "", &violations)
	if len(violations) > 0 {
		return nil, &ValidationError{Shape: shape, Violations: violations}
	}

	if err := strictJSON.UnmarshalFromString(raw, &out); err != nil {
		return nil, &ParseError{Shape: shape, Err: err}
	}

	if err := Validate(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// checkShape walks the generic JSON tree against t. It reports keys that are
// missing or null and values of the wrong JSON type. No value is coerced.
func checkShape(t reflect.Type, v any, path string, out *[]Violation) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			*out = append(*out, typeViolation(path, "object", v))
			return
		}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			name, opts, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				continue
			}
			fieldPath := joinPath(path, name)
			value, present := obj[name]
			if !present || value == nil {
				if !strings.Contains(opts, "omitempty") {
					*out = append(*out, Violation{Path: fieldPath, Constraint: "required", Message: "is required"})
				}
				continue
			}
			checkShape(field.Type, value, fieldPath, out)
		}
	case reflect.Slice:
		items, ok := v.([]any)
		if !ok {
			*out = append(*out, typeViolation(path, "array", v))
			return
		}
		for i, item := range items {
			checkShape(t.Elem(), item, fmt.Sprintf("%s[%d]", jsonPath(path), i), out)
		}
	case reflect.String:
		if _, ok := v.(string); !ok {
			*out = append(*out, typeViolation(path, "string", v))
		}
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		if _, ok := v.(float64); !ok {
			*out = append(*out, typeViolation(path, "number", v))
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			*out = append(*out, typeViolation(path, "boolean", v))
		}
	}
}

func typeViolation(path, want string, got any) Violation {
	return Violation{
		Path:       jsonPath(path),
		Constraint: "type",
		Message:    fmt.Sprintf("expected %s, got %s", want, jsonKind(got)),
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func shapeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// trimRoot drops the leading struct name from a validator namespace.
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func jsonPath(field string) string {
	if field == "" {
		return "$"
	}
	return field
}

func constraint(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		got := reflect.ValueOf(fe.Value())
		if got.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain exactly %s items, got %d", fe.Param(), got.Len())
		}
		return fmt.Sprintf("must have length %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s", constraint(fe))
	}
}

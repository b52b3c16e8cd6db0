// Package validation turns write payloads into ordered, human-readable
// field messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"talentflow/pkg/utils"
)

// Problem is one rejected field. Field is the top-level JSON name.
type Problem struct {
	Field   string
	Message string
}

// Validator checks records against their validate and msg struct tags.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	RegisterRecordValidators(v)
	return &Validator{validate: v}
}

// Check validates obj and merges the result with problems found while
// decoding. It returns nil or a *utils.CustomError listing every message in
// struct field order.
func (v *Validator) Check(obj any, decoded ...Problem) error {
	problems := append([]Problem(nil), decoded...)

	if err := v.validate.Struct(obj); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}

		root := indirectType(reflect.TypeOf(obj))
		for _, fe := range fieldErrs {
			problems = append(problems, Problem{
				Field:   topLevel(relative(root, fe.Namespace())),
				Message: messageFor(root, fe),
			})
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return utils.NewValidationError(Messages(reflect.TypeOf(obj), problems)...)
}

// Messages orders problems by the position of their field in t, keeping
// the original order for fields at the same position, and drops repeats.
func Messages(t reflect.Type, problems []Problem) []string {
	order := fieldOrder(indirectType(t))
	sort.SliceStable(problems, func(i, j int) bool {
		return rank(order, problems[i].Field) < rank(order, problems[j].Field)
	})

	seen := make(map[string]bool, len(problems))
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		if seen[p.Message] {
			continue
		}
		seen[p.Message] = true
		out = append(out, p.Message)
	}
	return out
}

// DecodeJSON decodes r into dst. Values of the wrong JSON type are reported
// as problems instead of failing the decode; malformed JSON is an error.
// An empty body leaves dst untouched.
func DecodeJSON(r io.Reader, dst any) ([]Problem, error) {
	err := json.NewDecoder(r).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		path := strings.Split(typeErr.Field, ".")
		return []Problem{{
			Field:   path[0],
			Message: fmt.Sprintf("%s must be a %s", label(path[len(path)-1]), jsonKind(typeErr.Type)),
		}}, nil
	}

	return nil, utils.NewBadRequestError("Invalid JSON body")
}

// messageFor prefers the msg tag of the failing field and falls back to a
// message derived from the validation tag.
func messageFor(root reflect.Type, fe validator.FieldError) string {
	if f, ok := lookupField(root, relative(root, fe.StructNamespace())); ok {
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}

	name := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return label(name) + " is required"
	case "enum", "contains", "email":
		return "Valid " + words(name) + " is required"
	case "date", "timestamp":
		return label(name) + " must be a valid date"
	case "min", "max", "gte", "lte", "gt", "lt":
		return label(name) + " is out of range"
	default:
		return label(name) + " is invalid"
	}
}

// relative strips the root type name from a validator namespace. Generic
// type names contain dots, so the prefix is trimmed rather than split off.
func relative(root reflect.Type, namespace string) string {
	return strings.TrimPrefix(namespace, root.Name()+".")
}

// lookupField resolves a struct path such as "Feedback.Rating" against root.
func lookupField(root reflect.Type, path string) (reflect.StructField, bool) {
	t := root
	var field reflect.StructField
	for _, part := range strings.Split(path, ".") {
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		t = indirectType(t)
		if t.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		f, ok := t.FieldByName(part)
		if !ok {
			return reflect.StructField{}, false
		}
		field = f
		t = f.Type
		if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
	}
	return field, true
}

func fieldOrder(t reflect.Type) map[string]int {
	order := make(map[string]int)
	if t.Kind() != reflect.Struct {
		return order
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = f.Name
		}
		order[name] = i
	}
	return order
}

func rank(order map[string]int, field string) int {
	if i, ok := order[field]; ok {
		return i
	}
	return len(order)
}

func topLevel(path string) string {
	name := strings.SplitN(path, ".", 2)[0]
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func jsonKind(t reflect.Type) string {
	t = indirectType(t)
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// words splits a camelCase JSON name: "candidateName" -> "candidate name".
func words(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// label is words with the first letter capitalized: "aiScore" -> "Ai score".
func label(name string) string {
	w := words(name)
	if w == "" {
		return w
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

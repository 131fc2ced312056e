package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError names one invalid field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the itemised result of validating a write payload.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field has at least one error.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// productFields fixes the order in which errors are reported.
var productFields = []string{"name", "description", "supplier", "sales", "price", "quantity"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("validate")
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseInsertProduct decodes and validates a create payload.
// A nil FieldErrors means the returned value is safe to persist.
func ParseInsertProduct(body []byte) (InsertProduct, FieldErrors) {
	var in InsertProduct

	p, errs := readPayload(body)
	if errs != nil {
		return in, errs
	}

	if s := p.text("name", true, &errs); s != nil {
		in.Name = *s
	}
	if s := p.text("description", true, &errs); s != nil {
		in.Description = *s
	}
	if s := p.text("supplier", true, &errs); s != nil {
		in.Supplier = *s
	}
	// sales defaults to 0 when absent.
	if n := p.integer("sales", false, &errs); n != nil {
		in.Sales = *n
	}
	if pr := p.price("price", true, &errs); pr != nil {
		in.Price = *pr
	}
	if n := p.integer("quantity", true, &errs); n != nil {
		in.Quantity = *n
	}

	errs = append(errs, structErrors(in, errs)...)
	return in, finish(errs)
}

// ParseUpdateProduct decodes and validates a partial update payload.
func ParseUpdateProduct(body []byte) (UpdateProduct, FieldErrors) {
	var up UpdateProduct

	p, errs := readPayload(body)
	if errs != nil {
		return up, errs
	}

	up.Name = p.text("name", false, &errs)
	up.Description = p.text("description", false, &errs)
	up.Supplier = p.text("supplier", false, &errs)
	up.Sales = p.integer("sales", false, &errs)
	up.Price = p.price("price", false, &errs)
	up.Quantity = p.integer("quantity", false, &errs)

	errs = append(errs, structErrors(up, errs)...)
	return up, finish(errs)
}

// payload holds the raw top-level members of a JSON object.
type payload map[string]json.RawMessage

func readPayload(body []byte) (payload, FieldErrors) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && !json.Valid(trimmed) {
		return nil, FieldErrors{{Field: "", Message: "Malformed JSON body"}}
	}
	var p payload
	if err := json.Unmarshal(trimmed, &p); err != nil || p == nil {
		return nil, FieldErrors{{Field: "", Message: "Expected object, received " + jsonKind(trimmed)}}
	}
	return p, nil
}

// lookup returns the raw member, or nil when it is absent.
func (p payload) lookup(name string) json.RawMessage {
	raw, ok := p[name]
	if !ok {
		return nil
	}
	return bytes.TrimSpace(raw)
}

func (p payload) text(name string, required bool, errs *FieldErrors) *string {
	raw := p.lookup(name)
	if raw == nil {
		if required {
			*errs = append(*errs, FieldError{Field: name, Message: "Required"})
		}
		return nil
	}
	var s string
	if jsonKind(raw) != "string" || json.Unmarshal(raw, &s) != nil {
		*errs = append(*errs, typeError(name, "string", raw))
		return nil
	}
	return &s
}

func (p payload) integer(name string, required bool, errs *FieldErrors) *int {
	raw := p.lookup(name)
	if raw == nil {
		if required {
			*errs = append(*errs, FieldError{Field: name, Message: "Required"})
		}
		return nil
	}
	if jsonKind(raw) != "number" {
		*errs = append(*errs, typeError(name, "number", raw))
		return nil
	}
	n, ok := integral(raw)
	if !ok {
		*errs = append(*errs, FieldError{Field: name, Message: "Expected integer, received float"})
		return nil
	}
	v := int(n)
	return &v
}

// intClamp bounds decoded integers just outside the INT column so the
// lte/gte tags report them instead of an overflowed value.
var intClamp = decimal.NewFromInt(1 << 31)

// integral decodes a JSON number that holds a whole value, in any
// notation JSON allows ("100", "1e2", "100.0").
func integral(raw json.RawMessage) (int64, bool) {
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return 0, false
	}
	switch e := d.Exponent(); {
	case d.IsZero():
		return 0, true
	case e > 9:
		// At least 10^10 in magnitude, already past the column range.
		if d.IsNegative() {
			return -(1 << 31), true
		}
		return 1 << 31, true
	case e < minDecimalExp:
		return 0, false
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	switch {
	case d.GreaterThan(intClamp):
		return 1 << 31, true
	case d.LessThan(intClamp.Neg()):
		return -(1 << 31), true
	}
	return d.IntPart(), true
}

func (p payload) price(name string, required bool, errs *FieldErrors) *Price {
	raw := p.lookup(name)
	if raw == nil {
		if required {
			*errs = append(*errs, FieldError{Field: name, Message: "Required"})
		}
		return nil
	}

	var text string
	switch jsonKind(raw) {
	case "string":
		if err := json.Unmarshal(raw, &text); err != nil {
			*errs = append(*errs, typeError(name, "string", raw))
			return nil
		}
	case "number":
		text = string(raw)
	default:
		*errs = append(*errs, typeError(name, "string", raw))
		return nil
	}

	d, err := parseDecimal(strings.TrimSpace(text))
	if err != nil {
		*errs = append(*errs, FieldError{Field: name, Message: "Invalid decimal"})
		return nil
	}
	switch {
	case d.IsNegative():
		*errs = append(*errs, FieldError{Field: name, Message: "Price must be greater than or equal to 0"})
		return nil
	case !d.Equal(d.Round(2)):
		*errs = append(*errs, FieldError{Field: name, Message: "Price must have at most 2 decimal places"})
		return nil
	case d.GreaterThanOrEqual(maxPrice):
		*errs = append(*errs, FieldError{Field: name, Message: "Price must be less than " + maxPrice.String()})
		return nil
	}
	return &Price{d.Round(2)}
}

// structErrors runs the declarative constraints, skipping fields that
// already failed decoding.
func structErrors(v interface{}, decoded FieldErrors) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "", Message: err.Error()}}
	}

	var out FieldErrors
	for _, fe := range verrs {
		if decoded.Has(fe.Field()) {
			continue
		}
		out = append(out, FieldError{Field: fe.Field(), Message: constraintMessage(fe)})
	}
	return out
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "Must not be empty"
	case "gte":
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	default:
		return "Invalid value"
	}
}

func finish(errs FieldErrors) FieldErrors {
	if len(errs) == 0 {
		return nil
	}
	rank := func(field string) int {
		for i, f := range productFields {
			if f == field {
				return i
			}
		}
		return len(productFields)
	}
	sort.SliceStable(errs, func(i, j int) bool {
		return rank(errs[i].Field) < rank(errs[j].Field)
	})
	return errs
}

func typeError(field, want string, raw json.RawMessage) FieldError {
	return FieldError{
		Field:   field,
		Message: fmt.Sprintf("Expected %s, received %s", want, jsonKind(raw)),
	}
}

func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "undefined"
	}
	switch raw[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// Package validate implements declarative form validation.
//
// A Schema is a rule table: one entry per field, each carrying a coercion,
// a predicate and a fixed user-facing message. Parse evaluates the table
// generically against raw form values and returns either the typed values
// or a field→messages mapping — never both. Keeping the rules as data (and
// not as hand-written per-field conditionals) keeps the invoice and
// portfolio shapes consistent and makes adding a field a one-line change.
package validate

import (
	"net/url"
	"strconv"
)

// FieldErrors maps a field name to its ordered list of error messages.
type FieldErrors map[string][]string

// Values holds the coerced, validated field values of a successful Parse.
type Values map[string]any

// String returns the named field as a string ("" if absent or not a string).
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Number returns the named field as a float64 (0 if absent or not a number).
func (v Values) Number(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Rule validates a single form field. Coerce turns the raw string into a
// typed value; Check accepts or rejects the coerced value. A failure at
// either stage records Message against Field.
type Rule struct {
	Field   string
	Message string
	Coerce  func(raw string) (any, bool)
	Check   func(v any) bool
}

// Schema is an ordered rule table for one form shape.
type Schema struct {
	rules []Rule
}

// NewSchema builds a schema from its rule table.
func NewSchema(rules ...Rule) Schema {
	return Schema{rules: rules}
}

// Parse evaluates every rule against the submitted form. On success it
// returns the typed values and a nil error map; on failure it returns nil
// values and all collected field errors. Rules are evaluated in table
// order, so messages within a field keep a stable order.
//
// A missing field and an empty string are treated the same: HTML form
// submissions cannot distinguish them reliably, and an empty required
// field is an error either way.
func (s Schema) Parse(form url.Values) (Values, FieldErrors) {
	values := make(Values, len(s.rules))
	errs := make(FieldErrors)

	for _, r := range s.rules {
		raw := form.Get(r.Field)

		v, ok := r.Coerce(raw)
		if ok && r.Check != nil {
			ok = r.Check(v)
		}
		if !ok {
			errs[r.Field] = append(errs[r.Field], r.Message)
			continue
		}
		values[r.Field] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// String declares a required, non-empty string field.
func String(field, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Coerce:  func(raw string) (any, bool) { return raw, true },
		Check:   func(v any) bool { return v.(string) != "" },
	}
}

// Number declares a numeric field coerced from its string form,
// which must be strictly greater than gt.
func Number(field string, gt float64, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Coerce: func(raw string) (any, bool) {
			f, err := strconv.ParseFloat(raw, 64)
			return f, err == nil
		},
		Check: func(v any) bool { return v.(float64) > gt },
	}
}

// Enum declares a string field that must equal one of the allowed values.
func Enum(field string, allowed []string, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Coerce:  func(raw string) (any, bool) { return raw, true },
		Check: func(v any) bool {
			for _, a := range allowed {
				if v.(string) == a {
					return true
				}
			}
			return false
		},
	}
}

package validator

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// RuleContext carries everything a rule needs to judge one field of a raw
// request payload. Present distinguishes an absent key from an explicit
// null or zero value.
type RuleContext struct {
	Field   string
	Value   any
	Present bool
	Payload map[string]any
}

// Violation is a single broken rule, keyed by the field it belongs to.
// Element rules report under an indexed key such as "images.2".
type Violation struct {
	Field   string
	Message string
}

// Rule inspects one field and returns zero or more violations.
type Rule func(rc RuleContext) []Violation

func fail(rc RuleContext, format string, args ...any) []Violation {
	return []Violation{{Field: rc.Field, Message: fmt.Sprintf(format, args...)}}
}

type fieldRules struct {
	name  string
	rules []Rule
}

// RuleSet is an ordered collection of per-field rules. Apply runs every
// rule of every field against a raw payload and collects all violations,
// never stopping at the first failure.
type RuleSet struct {
	fields []fieldRules
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Field registers rules for a payload key. Calling it twice for the same
// key appends to the existing rules.
func (rs *RuleSet) Field(name string, rules ...Rule) *RuleSet {
	for i := range rs.fields {
		if rs.fields[i].name == name {
			rs.fields[i].rules = append(rs.fields[i].rules, rules...)
			return rs
		}
	}
	rs.fields = append(rs.fields, fieldRules{name: name, rules: rules})
	return rs
}

// Apply evaluates the full rule set against a raw payload. Every rule runs;
// a field failing one rule still gets checked against the rest so the
// caller sees the complete picture in one pass. Returns nil when the
// payload is clean.
func (rs *RuleSet) Apply(payload map[string]any) *ValidationErrors {
	return rs.apply(payload, false)
}

// ApplyPresent evaluates only the rules for fields present in the payload,
// which is the patch-request contract: absent keys mean "leave unchanged"
// and must not trip Required.
func (rs *RuleSet) ApplyPresent(payload map[string]any) *ValidationErrors {
	return rs.apply(payload, true)
}

func (rs *RuleSet) apply(payload map[string]any, presentOnly bool) *ValidationErrors {
	verrs := &ValidationErrors{}
	for _, fr := range rs.fields {
		value, present := payload[fr.name]
		if presentOnly && !present {
			continue
		}
		rc := RuleContext{
			Field:   fr.name,
			Value:   value,
			Present: present,
			Payload: payload,
		}
		for _, rule := range fr.rules {
			for _, v := range rule(rc) {
				verrs.Append(v.Field, "", v.Message)
			}
		}
	}
	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

// blank reports whether a rule other than Required should skip the value.
// Optional fields only get format checks when they carry something.
func blank(rc RuleContext) bool {
	if !rc.Present || rc.Value == nil {
		return true
	}
	if s, ok := rc.Value.(string); ok && s == "" {
		return true
	}
	return false
}

// Required fails when the key is absent, null, or an empty string.
func Required() Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return fail(rc, "The %s field is required.", rc.Field)
		}
		return nil
	}
}

// MaxLen caps the character length of a string field.
func MaxLen(n int) Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		s, ok := rc.Value.(string)
		if !ok {
			return fail(rc, "The %s field must be a string.", rc.Field)
		}
		if utf8.RuneCountInString(s) > n {
			return fail(rc, "The %s field must not be greater than %d characters.", rc.Field, n)
		}
		return nil
	}
}

// MinLen enforces a minimum character length on a string field.
func MinLen(n int) Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		s, ok := rc.Value.(string)
		if !ok {
			return fail(rc, "The %s field must be a string.", rc.Field)
		}
		if utf8.RuneCountInString(s) < n {
			return fail(rc, "The %s field must be at least %d characters.", rc.Field, n)
		}
		return nil
	}
}

// OneOf restricts a string field to a fixed vocabulary. Unlike the optional
// format rules it does not tolerate a supplied blank: enum fields default
// when absent and are never empty or null, so a present "" or null must not
// slip through a patch into storage.
func OneOf(allowed ...string) Rule {
	return func(rc RuleContext) []Violation {
		if !rc.Present {
			return nil
		}
		s, ok := rc.Value.(string)
		if !ok || s == "" {
			return fail(rc, "The selected %s is invalid.", rc.Field)
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fail(rc, "The selected %s is invalid.", rc.Field)
	}
}

// Bool requires the value to be coercible to a boolean.
func Bool() Rule {
	return func(rc RuleContext) []Violation {
		if !rc.Present || rc.Value == nil {
			return nil
		}
		if _, err := CoerceBool(rc.Value); err != nil {
			return fail(rc, "The %s field must be true or false.", rc.Field)
		}
		return nil
	}
}

// Integer requires the value to be coercible to an integer.
func Integer() Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		if _, err := CoerceInt(rc.Value); err != nil {
			return fail(rc, "The %s field must be an integer.", rc.Field)
		}
		return nil
	}
}

// IntBetween bounds an integer field inclusively.
func IntBetween(lo, hi int) Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		n, err := CoerceInt(rc.Value)
		if err != nil {
			return fail(rc, "The %s field must be an integer.", rc.Field)
		}
		if n < lo || n > hi {
			return fail(rc, "The %s field must be between %d and %d.", rc.Field, lo, hi)
		}
		return nil
	}
}

// URL requires a well-formed absolute URL.
func URL() Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		s, ok := rc.Value.(string)
		if !ok {
			return fail(rc, "The %s field must be a string.", rc.Field)
		}
		if err := Global().ValidateVar(s, "url"); err != nil {
			return fail(rc, "The %s field must be a valid URL.", rc.Field)
		}
		return nil
	}
}

// Email requires a well-formed email address.
func Email() Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		s, ok := rc.Value.(string)
		if !ok {
			return fail(rc, "The %s field must be a string.", rc.Field)
		}
		if err := Global().ValidateVar(s, "email"); err != nil {
			return fail(rc, "The %s field must be a valid email address.", rc.Field)
		}
		return nil
	}
}

// Slug requires a lowercase hyphen-separated identifier.
func Slug() Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		s, ok := rc.Value.(string)
		if !ok {
			return fail(rc, "The %s field must be a string.", rc.Field)
		}
		if err := Global().ValidateVar(s, TagSlug); err != nil {
			return fail(rc, "The %s field must contain only lowercase letters, numbers and hyphens.", rc.Field)
		}
		return nil
	}
}

// DateTime requires the value to parse as a timestamp.
func DateTime() Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		if _, err := ParseTime(rc.Value); err != nil {
			return fail(rc, "The %s field must be a valid date.", rc.Field)
		}
		return nil
	}
}

// After requires this field's timestamp to be strictly later than another
// field's. The violation is reported on this field, the later of the pair.
// When either side is absent or unparseable the rule stays quiet and lets
// DateTime report the format problem.
func After(other string) Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		otherVal, ok := rc.Payload[other]
		if !ok || otherVal == nil {
			return nil
		}
		if s, isStr := otherVal.(string); isStr && s == "" {
			return nil
		}
		t, err := ParseTime(rc.Value)
		if err != nil {
			return nil
		}
		ot, err := ParseTime(otherVal)
		if err != nil {
			return nil
		}
		if !t.After(ot) {
			return fail(rc, "The %s field must be a date after %s.", rc.Field, other)
		}
		return nil
	}
}

// Unique delegates to a lookup reporting whether the value is already in
// use. Lookup failures surface as a violation rather than silently passing.
func Unique(taken func(value string) (bool, error)) Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		s, ok := rc.Value.(string)
		if !ok {
			return nil
		}
		inUse, err := taken(s)
		if err != nil {
			return fail(rc, "The %s could not be verified.", rc.Field)
		}
		if inUse {
			return fail(rc, "The %s has already been taken.", rc.Field)
		}
		return nil
	}
}

// Array requires the value to be a list.
func Array() Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		if _, ok := asArray(rc.Value); !ok {
			return fail(rc, "The %s field must be an array.", rc.Field)
		}
		return nil
	}
}

// Each applies rules to every element of an array field. Violations are
// reported under the element's indexed key, e.g. "images.2".
func Each(rules ...Rule) Rule {
	return func(rc RuleContext) []Violation {
		if blank(rc) {
			return nil
		}
		items, ok := asArray(rc.Value)
		if !ok {
			return fail(rc, "The %s field must be an array.", rc.Field)
		}
		var out []Violation
		for i, item := range items {
			elem := RuleContext{
				Field:   rc.Field + "." + strconv.Itoa(i),
				Value:   item,
				Present: true,
				Payload: rc.Payload,
			}
			for _, rule := range rules {
				out = append(out, rule(elem)...)
			}
		}
		return out
	}
}

func asArray(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

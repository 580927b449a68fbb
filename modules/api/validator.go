package api

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"unicode"
)

// Rule is a declarative validation rule for one field of a JSON request
// body. Rules are evaluated against the raw body so that an absent field
// can be told apart from an empty one.
type Rule struct {
	Field    string
	Required bool // field must be present
	NonEmpty bool // when present, the string must not be empty
	Email    bool // when present, must have email shape
	String   bool // when present, must be a JSON string
	Boolean  bool // when present, must be a JSON boolean
}

// Validate checks a raw JSON body against a rule set and returns every
// violation, not just the first.
func Validate(body []byte, rules []Rule) []FieldError {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return []FieldError{{Field: "body", Message: "Request body must be a JSON object"}}
	}

	var violations []FieldError
	for _, rule := range rules {
		if v := checkRule(fields, rule); v != nil {
			violations = append(violations, *v)
		}
	}
	return violations
}

func checkRule(fields map[string]json.RawMessage, rule Rule) *FieldError {
	raw, present := fields[rule.Field]
	if !present || string(raw) == "null" {
		if rule.Required {
			return &FieldError{Field: rule.Field, Message: fmt.Sprintf("%s is required", title(rule.Field))}
		}
		return nil
	}

	if rule.Boolean {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return &FieldError{Field: rule.Field, Message: fmt.Sprintf("%s must be a boolean", title(rule.Field))}
		}
		return nil
	}

	if !rule.String {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return &FieldError{Field: rule.Field, Message: fmt.Sprintf("%s must be a string", title(rule.Field))}
	}

	if s == "" {
		if rule.Required {
			return &FieldError{Field: rule.Field, Message: fmt.Sprintf("%s is required", title(rule.Field))}
		}
		if rule.NonEmpty {
			return &FieldError{Field: rule.Field, Message: fmt.Sprintf("%s cannot be empty if provided", title(rule.Field))}
		}
		return nil
	}

	if rule.Email {
		if _, err := mail.ParseAddress(s); err != nil {
			return &FieldError{Field: rule.Field, Message: "Must be a valid email"}
		}
	}
	return nil
}

// title upper-cases the first rune of a field name for use in messages.
func title(field string) string {
	if field == "" {
		return field
	}
	runes := []rune(field)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Per-route rule sets.
var (
	registerRules = []Rule{
		{Field: "email", Required: true, String: true, Email: true},
		{Field: "password", Required: true, String: true, NonEmpty: true},
	}

	loginRules = registerRules

	createTaskRules = []Rule{
		{Field: "title", Required: true, String: true, NonEmpty: true},
		{Field: "description", String: true},
		{Field: "completed", Boolean: true},
	}

	updateTaskRules = []Rule{
		{Field: "title", String: true, NonEmpty: true},
		{Field: "description", String: true},
		{Field: "completed", Boolean: true},
	}
)

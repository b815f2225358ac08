package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "2006.01.02",
	"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
	"Jan 2, 2006", "2 Jan 2006", "January 2, 2006",
	"20060102",
	time.RFC3339,
}

// checkValues reports advisory problems of values against fields.
// Keys not in the schema are not checked.
func checkValues(fields []domain.FieldDefinition, values map[string]string) []domain.FieldIssue {
	var issues []domain.FieldIssue
	for _, f := range fields {
		raw := strings.TrimSpace(values[f.ID])
		if raw == "" {
			if f.Required {
				issues = append(issues, domain.FieldIssue{FieldID: f.ID, Message: "required field is empty"})
			}
			continue
		}
		if msg := checkValue(f, raw); msg != "" {
			issues = append(issues, domain.FieldIssue{FieldID: f.ID, Value: raw, Message: msg})
		}
	}
	return issues
}

func checkValue(f domain.FieldDefinition, value string) string {
	switch f.Type {
	case domain.FieldEmail:
		if validate.Var(value, "email") != nil {
			return "invalid email address"
		}
	case domain.FieldNumber:
		if !numericRegex.MatchString(strings.ReplaceAll(value, ",", "")) {
			return "invalid number format"
		}
	case domain.FieldCurrency:
		if !numericRegex.MatchString(stripCurrency(value)) {
			return "invalid amount"
		}
	case domain.FieldDate:
		if !isDate(value) {
			return "invalid date format (use YYYY-MM-DD or similar)"
		}
	case domain.FieldSelect:
		for _, opt := range f.Options {
			if strings.EqualFold(opt, value) {
				return ""
			}
		}
		return "value must be one of: " + strings.Join(f.Options, ", ")
	}
	return ""
}

// stripCurrency removes symbols, separators and accounting parentheses.
func stripCurrency(s string) string {
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if negative {
		s = "-" + s
	}
	return s
}

func isDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

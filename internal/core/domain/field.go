package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// FieldType is the declared type of a field. It is advisory: storage keeps
// every value as a string regardless of type.
type FieldType string

// Available field types.
const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldCurrency FieldType = "currency"
	FieldDate     FieldType = "date"
	FieldStatus   FieldType = "status"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// FieldTypes lists every field type in display order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldText, FieldEmail, FieldPhone, FieldCurrency, FieldDate,
		FieldStatus, FieldNumber, FieldTextarea, FieldSelect,
	}
}

// IsValid returns true if the field type is recognised.
func (t FieldType) IsValid() bool {
	return slices.Contains(FieldTypes(), t)
}

// IsMatchKey returns true if values of this type are a useful identity
// signal for duplicate detection.
func (t FieldType) IsMatchKey() bool {
	switch t {
	case FieldText, FieldEmail, FieldPhone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FieldType) String() string {
	return string(t)
}

// FieldDefinition is one schema entry of a module.
type FieldDefinition struct {
	// ID is unique within the module and is the key used in records.
	ID string `json:"id" validate:"required"`

	// Label is the display name.
	Label string `json:"label" validate:"required"`

	// Type is the declared value type.
	Type FieldType `json:"type" validate:"required,oneof=text email phone currency date status number textarea select"`

	// Options are the allowed values, required iff Type is select.
	Options []string `json:"options,omitempty" validate:"omitempty,dive,required"`

	// Required marks the field as mandatory for data entry.
	Required bool `json:"required,omitempty"`
}

// Clone returns a deep copy of the field.
func (f FieldDefinition) Clone() FieldDefinition {
	f.Options = slices.Clone(f.Options)
	return f
}

// FieldUpdate is a partial update of a field definition.
// Nil members are left unchanged. The id cannot be changed.
type FieldUpdate struct {
	Label    *string
	Type     *FieldType
	Options  *[]string
	Required *bool
}

// IsEmpty returns true if the update changes nothing.
func (u FieldUpdate) IsEmpty() bool {
	return u.Label == nil && u.Type == nil && u.Options == nil && u.Required == nil
}

// Apply merges the update into f and returns the result.
func (u FieldUpdate) Apply(f FieldDefinition) FieldDefinition {
	out := f.Clone()
	if u.Label != nil {
		out.Label = *u.Label
	}
	if u.Type != nil {
		out.Type = *u.Type
	}
	if u.Options != nil {
		out.Options = slices.Clone(*u.Options)
	}
	if u.Required != nil {
		out.Required = *u.Required
	}
	return out
}

// maxFieldSlug is the longest label-derived prefix of a generated field id.
const maxFieldSlug = 24

// NewFieldID derives a field id from a label: a lowercase slug of at most
// 24 characters followed by a base36 timestamp suffix.
func NewFieldID(label string, now time.Time) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxFieldSlug {
		slug = slug[:maxFieldSlug]
	}
	suffix := strconv.FormatInt(now.UnixMilli(), 36)
	if slug == "" {
		return "field-" + suffix
	}
	return slug + "-" + suffix
}

// FieldIssue is an advisory problem found when checking a value against its field.
type FieldIssue struct {
	FieldID string
	Value   string
	Message string
}

package report

import (
	"github.com/sigreer/biosctl/internal/firmware"
)

// AttributeView is the JSON form of an attribute. Unreadable values are
// null with the read error in the matching *Error field.
type AttributeView struct {
	Name                string   `json:"name"`
	DisplayName         string   `json:"display_name"`
	DisplayNameLanguage string   `json:"display_name_language_code"`
	Type                string   `json:"type"`
	Min                 *int64   `json:"min_value,omitempty"`
	Max                 *int64   `json:"max_value,omitempty"`
	Step                *uint64  `json:"scalar_increment,omitempty"`
	MinLength           *uint64  `json:"min_length,omitempty"`
	MaxLength           *uint64  `json:"max_length,omitempty"`
	PossibleValues      []string `json:"possible_values,omitempty"`
	CurrentValue        *string  `json:"current_value"`
	CurrentValueError   string   `json:"current_value_error,omitempty"`
	DefaultValue        *string  `json:"default_value"`
	DefaultValueError   string   `json:"default_value_error,omitempty"`
}

// AuthenticationView is the JSON form of a password slot.
type AuthenticationView struct {
	Name              string `json:"name"`
	Enabled           bool   `json:"is_enabled"`
	MinPasswordLength uint64 `json:"min_password_length"`
	MaxPasswordLength uint64 `json:"max_password_length"`
	Role              string `json:"role"`
}

func NewAttributeView(a *firmware.Attribute) AttributeView {
	v := AttributeView{
		Name:                a.Name,
		DisplayName:         a.DisplayName,
		DisplayNameLanguage: a.DisplayNameLanguage,
		Type:                a.Type.Kind(),
	}

	switch t := a.Type.(type) {
	case firmware.IntegerType:
		v.Min, v.Max, v.Step = &t.Min, &t.Max, &t.Step
	case firmware.StringType:
		v.MinLength, v.MaxLength = &t.MinLength, &t.MaxLength
	case firmware.EnumerationType:
		v.PossibleValues = t.PossibleValues
	}

	v.CurrentValue, v.CurrentValueError = valueFields(a.Current)
	v.DefaultValue, v.DefaultValueError = valueFields(a.Default)

	return v
}

func NewAttributeViews(attrs []firmware.Attribute) []AttributeView {
	views := make([]AttributeView, 0, len(attrs))
	for i := range attrs {
		views = append(views, NewAttributeView(&attrs[i]))
	}
	return views
}

func NewAuthenticationViews(auths []firmware.Authentication) []AuthenticationView {
	views := make([]AuthenticationView, 0, len(auths))
	for _, a := range auths {
		views = append(views, AuthenticationView{
			Name:              a.Name,
			Enabled:           a.Enabled,
			MinPasswordLength: a.MinPasswordLength,
			MaxPasswordLength: a.MaxPasswordLength,
			Role:              a.Role.Raw,
		})
	}
	return views
}

func valueFields(v firmware.Value) (*string, string) {
	if !v.OK() {
		return nil, v.Err.Error()
	}
	text := v.Text
	return &text, ""
}

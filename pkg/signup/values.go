package signup

import "strings"

// Field paths used for error keys and wire names.
const (
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldContactNumbers = "contactNumbers"
	FieldAcceptTerms    = "acceptTerms"
)

// Values is the sign-up form state. Struct tags carry the wire names and the
// validation schema evaluated on submit.
type Values struct {
	FirstName      string   `form:"firstName" json:"firstName" validate:"required"`
	LastName       string   `form:"lastName" json:"lastName" validate:"required"`
	Email          string   `form:"email" json:"email" validate:"required,email"`
	Password       string   `form:"password" json:"password" validate:"required,min=6"`
	ContactNumbers []string `form:"contactNumbers" json:"contactNumbers" validate:"min=1,dive,required"`
	AcceptTerms    bool     `form:"acceptTerms" json:"acceptTerms" validate:"eq=true"`
}

// NewValues returns the initial form state: every field empty and a single
// empty contact-number entry.
func NewValues() Values {
	return Values{ContactNumbers: []string{""}}
}

// Normalize returns a copy with surrounding whitespace removed from every
// text field except the password.
func (v Values) Normalize() Values {
	out := v
	out.FirstName = strings.TrimSpace(v.FirstName)
	out.LastName = strings.TrimSpace(v.LastName)
	out.Email = strings.TrimSpace(v.Email)
	out.ContactNumbers = make([]string, len(v.ContactNumbers))
	for i, number := range v.ContactNumbers {
		out.ContactNumbers[i] = strings.TrimSpace(number)
	}
	return out
}

// Clone returns a deep copy so callers cannot mutate controller state through
// the contact-number slice.
func (v Values) Clone() Values {
	out := v
	if v.ContactNumbers != nil {
		out.ContactNumbers = append([]string(nil), v.ContactNumbers...)
	}
	return out
}

// Map flattens the values into dotted paths, the shape renderers use to
// pre-populate controls. The password is never included.
func (v Values) Map() map[string]any {
	numbers := make([]any, len(v.ContactNumbers))
	for i, number := range v.ContactNumbers {
		numbers[i] = number
	}
	return map[string]any{
		FieldFirstName:      v.FirstName,
		FieldLastName:       v.LastName,
		FieldEmail:          v.Email,
		FieldContactNumbers: numbers,
		FieldAcceptTerms:    v.AcceptTerms,
	}
}

// Package validation contains the pure input checks for the sign-up and
// sign-in forms. Each check returns a mapping from field name to a
// user-facing message covering every failing field, not just the first.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// User-facing messages, field-scoped.
const (
	MsgTooShort      = "Trop court"
	MsgInvalidEmail  = "Email invalide"
	MsgInvalidPhone  = "Téléphone invalide"
	MsgShortPassword = "Min 6 caractères"
)

// emailRe matches the usual "something@domain.tld" shape.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field name to its validation message. A nil map means
// the input is valid.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, "; ")
}

type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

type SignInInput struct {
	Email    string
	Password string
}

// ValidateSignUp checks the sign-up form. The email shape is checked on
// the normalized address, so surrounding whitespace never fails a field
// that will be stored trimmed anyway. No side effects.
func ValidateSignUp(in SignUpInput) FieldErrors {
	fe := FieldErrors{}

	if utf8.RuneCountInString(in.FirstName) < 2 {
		fe["firstName"] = MsgTooShort
	}
	if utf8.RuneCountInString(in.LastName) < 2 {
		fe["lastName"] = MsgTooShort
	}
	if !emailRe.MatchString(NormalizeEmail(in.Email)) {
		fe["email"] = MsgInvalidEmail
	}
	if utf8.RuneCountInString(in.Phone) < 8 {
		fe["phone"] = MsgInvalidPhone
	}
	if utf8.RuneCountInString(in.Password) < 6 {
		fe["password"] = MsgShortPassword
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateSignIn checks the sign-in form on the normalized email. No side
// effects.
func ValidateSignIn(in SignInInput) FieldErrors {
	fe := FieldErrors{}

	if !emailRe.MatchString(NormalizeEmail(in.Email)) {
		fe["email"] = MsgInvalidEmail
	}
	if utf8.RuneCountInString(in.Password) < 6 {
		fe["password"] = MsgShortPassword
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Idempotent: NormalizeEmail(NormalizeEmail(e)) == NormalizeEmail(e).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

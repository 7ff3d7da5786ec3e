package accounts

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

const maxPasswordBytes = 72

var (
	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	phoneStrip   = regexp.MustCompile(`[\s\-()]`)
)

const (
	MsgAllFieldsRequired = "All fields are required."
	MsgInvalidEmail      = "Please enter a valid email address."
	MsgEmailTaken        = "This email is already registered."
	MsgInvalidPhone      = "Please enter a valid phone number."
	MsgInvalidRole       = "Please select a valid account type."
	MsgPasswordShort     = "Password must be at least 8 characters long."
	MsgPasswordLong      = "Password must be at most 72 bytes long."
	MsgPasswordMismatch  = "Passwords do not match."
	MsgPasswordUpper     = "Password must contain at least one uppercase letter."
	MsgPasswordLower     = "Password must contain at least one lowercase letter."
	MsgPasswordDigit     = "Password must contain at least one number."
	MsgTermsRequired     = "You must accept the Terms of Service and Privacy Policy."
	MsgBadCredentials    = "Invalid email or password."
)

// ValidationError junta todos los mensajes; el registro no corta en el primero.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid registration: " + strings.Join(e.Messages, " ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func (e *ValidationError) Has(msg string) bool {
	for _, m := range e.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

// validateRegistration replica las reglas del formulario de alta.
// El chequeo de email duplicado lo hace el service (necesita el repo).
func validateRegistration(in RegisterInput) []string {
	var msgs []string

	if in.FullName == "" || in.Email == "" || in.Phone == "" || in.Farm == "" ||
		in.Role == "" || in.Password1 == "" || in.Password2 == "" {
		msgs = append(msgs, MsgAllFieldsRequired)
	}

	if in.Email != "" && !validEmail(in.Email) {
		msgs = append(msgs, MsgInvalidEmail)
	}

	if !phonePattern.MatchString(phoneStrip.ReplaceAllString(in.Phone, "")) {
		msgs = append(msgs, MsgInvalidPhone)
	}

	if !Role(in.Role).Valid() {
		msgs = append(msgs, MsgInvalidRole)
	}

	if len(in.Password1) < 8 {
		msgs = append(msgs, MsgPasswordShort)
	}
	// bcrypt no acepta más de 72 bytes.
	if len(in.Password1) > maxPasswordBytes {
		msgs = append(msgs, MsgPasswordLong)
	}
	if in.Password1 != in.Password2 {
		msgs = append(msgs, MsgPasswordMismatch)
	}
	if !strings.ContainsFunc(in.Password1, isASCIIUpper) {
		msgs = append(msgs, MsgPasswordUpper)
	}
	if !strings.ContainsFunc(in.Password1, isASCIILower) {
		msgs = append(msgs, MsgPasswordLower)
	}
	if !strings.ContainsFunc(in.Password1, unicode.IsDigit) {
		msgs = append(msgs, MsgPasswordDigit)
	}

	if !in.Terms {
		msgs = append(msgs, MsgTermsRequired)
	}

	return msgs
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

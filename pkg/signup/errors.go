package signup

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrLastContactNumber is returned when removing the only remaining
	// contact-number entry.
	ErrLastContactNumber = errors.New("signup: at least one contact number must remain")
	// ErrContactIndex is returned when Remove targets a missing entry.
	ErrContactIndex = errors.New("signup: contact number index out of range")
	// ErrAuthClientMissing is returned by Submit wiring checks when no auth
	// collaborator was configured.
	ErrAuthClientMissing = errors.New("signup: auth client is required")
)

// GenericErrorMessage is shown when the auth collaborator fails without a
// user-facing message (transport failures, malformed responses).
const GenericErrorMessage = "Something went wrong. Please try again."

// AuthError is the failure shape returned by auth collaborators. Message is a
// form-level message; Fields optionally carries field-keyed messages reported
// by the remote service.
type AuthError struct {
	Message string
	Fields  map[string][]string
}

func (e *AuthError) Error() string {
	if msg := e.RootMessage(); msg != "" {
		return "signup: " + msg
	}
	return "signup: sign up rejected"
}

// RootMessage returns the single message shown in the form's root error
// slot: the form-level message when present, otherwise the first field
// message in path order.
func (e *AuthError) RootMessage() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	for _, path := range FieldErrors(e.Fields).Paths() {
		for _, msg := range e.Fields[path] {
			if msg = strings.TrimSpace(msg); msg != "" {
				return msg
			}
		}
	}
	return ""
}

// RootMessage extracts the root-level message for err. Errors that are not
// *AuthError, or carry no message, map to GenericErrorMessage.
func RootMessage(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		if msg := authErr.RootMessage(); msg != "" {
			return msg
		}
	}
	return GenericErrorMessage
}

// ErrorMapping splits a server error payload into field-level and form-level
// messages keyed by the dotted field paths used by Values.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

var knownFields = map[string]struct{}{
	FieldFirstName:      {},
	FieldLastName:       {},
	FieldEmail:          {},
	FieldPassword:       {},
	FieldContactNumbers: {},
	FieldAcceptTerms:    {},
}

// MapErrorPayload normalises server error payloads (including JSON pointer
// paths such as "/body/email" or "$.contactNumbers[1]") into dotted field
// paths. Unknown paths are treated as form-level errors so messages are not
// lost. Keys are visited in sorted order so the result is stable.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	rawPaths := make([]string, 0, len(payload))
	for rawPath := range payload {
		rawPaths = append(rawPaths, rawPath)
	}
	sort.Strings(rawPaths)

	for _, rawPath := range rawPaths {
		normalized := normalizeMessages(payload[rawPath])
		if len(normalized) == 0 {
			continue
		}
		path, ok := mapErrorPath(rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], normalized...)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func mapErrorPath(raw string) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", false
	}
	if _, ok := knownFields[segments[0]]; !ok {
		return "", false
	}
	if segments[0] == FieldContactNumbers && len(segments) > 1 {
		if _, err := strconv.Atoi(segments[1]); err == nil {
			return segments[0] + "." + segments[1], true
		}
	}
	return segments[0], true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "attributes":
			segments = segments[1:]
			continue
		}
		break
	}
	return segments
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "root", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

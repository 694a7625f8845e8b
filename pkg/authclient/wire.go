package authclient

// SignUpPath is the endpoint, relative to the base URL, that creates an
// account.
const SignUpPath = "/sign-up"

// ErrorResponse is the JSON body of a rejected sign-up. Errors is keyed by
// field path; keys that do not name a form field are treated as form-level
// messages.
type ErrorResponse struct {
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

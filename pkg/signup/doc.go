// Package signup holds the behaviour behind the sign-up form: field values,
// the declarative validation schema, the contact-number field array and the
// submit flow that delegates to an authentication collaborator before asking
// the session and navigation collaborators to refresh.
//
// A Controller is a single in-memory form instance. Surfaces (HTML, terminal)
// read its state to draw the form and call Append, Remove, SetValues and
// Submit in response to user input. Nothing escapes a Controller as an error
// except the structural field-array errors returned by Remove; submission
// failures are reported through FieldErrors and RootError.
package signup

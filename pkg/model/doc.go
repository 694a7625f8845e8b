// Package model defines the typed form model consumed by renderers. A
// FormModel describes what a surface draws (labels, placeholders, input kinds,
// validation hints and links) while the behaviour behind the form lives in
// package signup. Validation rules expose canonical identifiers (required,
// minLength, minItems, email, accepted) with string parameters so renderers
// can map them onto HTML attributes or prompt validators. The curated UIHints
// map surfaces renderer-facing directives such as `addLabel`, `removeLabel`,
// `linkText`, `linkHref` and `autocomplete`.
package model

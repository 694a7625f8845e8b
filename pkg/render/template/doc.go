// Package template defines the template engine seam renderers depend on.
// The gotemplate subpackage implements it on top of pongo2.
package template

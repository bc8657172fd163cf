// Package templates holds the HTML fragments swapped in by htmx. Components
// are written in .templ files; the _templ.go files are generated with
// `templ generate` and committed.
package templates

// DefaultAvatarSrc is shown for contacts without a picture. ContactList
// renders the same path.
const DefaultAvatarSrc = "/static/img/avatar-placeholder.svg"

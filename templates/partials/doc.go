// Package partials renders the fragments of the profile page that HTMX swaps in place.
package partials

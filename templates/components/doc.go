// Package components holds small reusable templ components.
package components

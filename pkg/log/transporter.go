// Package log provides asynchronous structured JSON logging with pluggable outputs.
package log

// Transporter is a log output destination.
type Transporter interface {
	// Name returns the identifier for this transporter.
	Name() string

	// Write sends a log entry to the destination.
	Write(entry Entry) error

	// Close releases any resources held by the transporter.
	// After Close is called, Write should not be called.
	Close() error
}

package breadcrumb

import "io"

// Sink receives rendered trail markup as the inner content of the breadcrumb container.
type Sink interface {
	WriteBreadcrumb(markup string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(markup string) error

func (f SinkFunc) WriteBreadcrumb(markup string) error { return f(markup) }

// CaptureSink records what was written. Useful in tests and dry runs.
type CaptureSink struct {
	Markup string
	Writes int
}

func (c *CaptureSink) WriteBreadcrumb(markup string) error {
	c.Markup = markup
	c.Writes++
	return nil
}

// WriterSink writes markup followed by a newline to W.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) WriteBreadcrumb(markup string) error {
	_, err := io.WriteString(s.W, markup+"\n")
	return err
}

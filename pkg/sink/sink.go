// Package sink defines the event sink contract report implementations
// write their content through. It is part of the fixed contract surface
// shared between the host and every plugin realm, so it must stay free
// of dependencies on internal packages.
package sink

// EventAttributes carries optional attributes for a sink event,
// such as styling hints or anchors.
type EventAttributes map[string]string

// Sink receives the structured content of a generated report.
type Sink interface {
	// Head opens the document header section.
	Head()

	// Title emits the document title.
	Title(text string)

	// Section opens a section at the given depth (1 is top level).
	Section(level int, attrs EventAttributes)

	// SectionTitle emits a title for the current section.
	SectionTitle(level int, text string)

	// Text emits body text in the current section.
	Text(text string)

	// Verbatim emits preformatted text in the current section.
	Verbatim(text string)

	// Link emits a hyperlink with the given target and label.
	Link(target, label string)

	// Flush forces buffered content out to the underlying writer.
	Flush() error

	// Close finishes the document and releases resources.
	Close() error
}

// Factory creates sinks for multi-page reports.
type Factory interface {
	// CreateSink creates a sink writing the named document under the
	// given output directory.
	CreateSink(outputDir, outputName string) (Sink, error)
}

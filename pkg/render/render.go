// Package render defines the renderer contract the rendering stage
// implements. Like pkg/sink it is shared into every plugin realm and
// must not depend on internal packages.
package render

import (
	"io"

	"github.com/kiln-build/reportexec/pkg/sink"
)

// Renderer turns sink events into a concrete output document.
type Renderer interface {
	// OutputExtension returns the file extension of rendered documents,
	// without the leading dot.
	OutputExtension() string

	// NewSink returns a sink whose events are rendered to w.
	NewSink(w io.Writer) (sink.Sink, error)
}

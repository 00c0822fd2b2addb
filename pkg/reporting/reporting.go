// Package reporting defines the report capability contract. A plugin goal
// whose implementation satisfies Report is eligible for inclusion as a
// prepared report execution; everything else is filtered out during
// report resolution.
//
// This package is imported into every plugin realm from the host realm,
// so plugin implementations and the host always agree on one definition
// of the capability types.
package reporting

import "github.com/kiln-build/reportexec/pkg/sink"

// Report is the capability contract of a report-generating goal.
type Report interface {
	// Name returns the localized display name of the report.
	Name() string

	// Description returns a short description of the report content.
	Description() string

	// OutputName returns the name of the main output document,
	// without extension.
	OutputName() string

	// CategoryName returns the report category used to group reports
	// in the rendered site navigation.
	CategoryName() string

	// CanGenerate reports whether the report has anything to generate
	// in its current configuration. Reports answering false are dropped
	// from the prepared execution list.
	CanGenerate() bool

	// Generate writes the report content to the given sink.
	Generate(s sink.Sink) error

	// ExternalReport reports whether the report produces its output
	// on its own instead of going through a sink.
	ExternalReport() bool
}

// MultiPageReport is implemented by reports that produce more than one
// output document and therefore need a sink factory in addition to the
// main sink.
type MultiPageReport interface {
	Report

	// GenerateMultiPage writes the report content, creating additional
	// sinks through the factory as needed.
	GenerateMultiPage(main sink.Sink, factory sink.Factory) error
}

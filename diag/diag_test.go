package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vellum-lang/vellum/source"
)

func TestCollectorAccumulatesDiagnostics(t *testing.T) {
	c := NewCollector()
	c.Report(Diagnostic{Severity: SeverityError, ID: UnexpectedToken, Range: source.Range{Start: 0, End: 1}})
	c.Report(Diagnostic{Severity: SeverityWarning, ID: InvalidNumericLiteral})
	assert.Len(t, c.Diagnostics, 2)
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	c := NewCollector()
	c.Report(Diagnostic{Severity: SeverityWarning, ID: InvalidNumericLiteral})
	assert.False(t, c.HasErrors())

	c.Report(Diagnostic{Severity: SeverityError, ID: UnexpectedToken})
	assert.True(t, c.HasErrors())
}

func TestEmptyCollectorHasNoErrors(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasErrors())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(99).String())
}

func TestIDStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "invalid-utf8", InvalidUTF8.String())
	assert.Equal(t, "conflicting-storage-attributes", ConflictingStorageAttributes.String())
	assert.Equal(t, "unknown-diagnostic", ID(9999).String())
}

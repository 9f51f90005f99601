package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics(t *testing.T) {
	d := &Diagnostics{}
	assert.Nil(t, d.Warnings())
	assert.Empty(t, d.Messages())

	d.Warnf(WarnDuplicateTax, "duplicate TAX line: %s replaces %s", "0.48", "0.47")
	d.Warnf(WarnMissingBalance, "no balance found on receipt")

	assert.Equal(t, []Warning{
		{Code: WarnDuplicateTax, Message: "duplicate TAX line: 0.48 replaces 0.47"},
		{Code: WarnMissingBalance, Message: "no balance found on receipt"},
	}, d.Warnings())
	assert.Equal(t, []string{"duplicate TAX line: 0.48 replaces 0.47", "no balance found on receipt"}, d.Messages())
	assert.Equal(t, 1, d.Count(WarnMissingBalance))
	assert.Equal(t, 2, d.Len())

	// Callers get a copy.
	d.Warnings()[0].Message = "changed"
	assert.Equal(t, "duplicate TAX line: 0.48 replaces 0.47", d.Warnings()[0].Message)
}

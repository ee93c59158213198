package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightprep/studycal-api/internal/models"
)

func TestPDFRenderProducesDocument(t *testing.T) {
	exporter := NewPDFExporter()

	out, err := exporter.Render(sampleProgram())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 500)
}

func TestPDFRenderRejectsEmptyProgram(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.Render(nil)
	assert.Error(t, err)

	_, err = exporter.Render(&models.StudyProgram{})
	assert.Error(t, err)
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogsAreValid(t *testing.T) {
	registry := NewRegistry()

	for _, examType := range registry.ExamTypes() {
		defs, ok := registry.Subjects(examType)
		require.True(t, ok)
		assert.NoError(t, Validate(defs), "catalog %s", examType)
	}
}

func TestRegistryKnown(t *testing.T) {
	registry := NewRegistry()

	assert.True(t, registry.Known(ExamYKS))
	assert.True(t, registry.Known(ExamLGS))
	assert.True(t, registry.Known(ExamKPSS))
	assert.False(t, registry.Known(ExamType("SAT")))
}

func TestRegistryExamTypesSorted(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, []ExamType{ExamKPSS, ExamLGS, ExamYKS}, registry.ExamTypes())
}

func TestRegistryAdvice(t *testing.T) {
	registry := NewRegistry()

	assert.NotEmpty(t, registry.Advice(ExamYKS))
	assert.Nil(t, registry.Advice(ExamType("SAT")))
}

func TestNewCustomRegistryRejectsDegenerateCatalogs(t *testing.T) {
	tests := []struct {
		name string
		defs []SubjectDefinition
	}{
		{name: "empty catalog", defs: []SubjectDefinition{}},
		{name: "empty subject name", defs: []SubjectDefinition{
			{Name: "", Difficulty: 3, Topics: []string{"A"}},
		}},
		{name: "no topics", defs: []SubjectDefinition{
			{Name: "Math", Difficulty: 3, Topics: nil},
		}},
		{name: "difficulty too low", defs: []SubjectDefinition{
			{Name: "Math", Difficulty: 0, Topics: []string{"A"}},
		}},
		{name: "difficulty too high", defs: []SubjectDefinition{
			{Name: "Math", Difficulty: 6, Topics: []string{"A"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomRegistry(map[ExamType][]SubjectDefinition{"X": tt.defs}, nil)
			assert.Error(t, err)
		})
	}
}

func TestNewCustomRegistryAcceptsValidCatalog(t *testing.T) {
	registry, err := NewCustomRegistry(map[ExamType][]SubjectDefinition{
		"X": {{Name: "Math", Difficulty: 3, Topics: []string{"A", "B"}}},
	}, map[ExamType][]string{"X": {"advice"}})

	require.NoError(t, err)
	assert.True(t, registry.Known("X"))
	assert.Equal(t, []string{"advice"}, registry.Advice("X"))
}

package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildNotesBaseline(t *testing.T) {
	notes := buildNotes(nil, nil, 10)

	assert.Len(t, notes, 2)
	assert.Equal(t, genericNotes, notes)
}

func TestBuildNotesWeakAreas(t *testing.T) {
	notes := buildNotes(nil, []string{"Matematik", "Fizik"}, 10)

	assert.Len(t, notes, 3)
	assert.Contains(t, notes[2], "Matematik, Fizik")
}

func TestBuildNotesAdviceCapped(t *testing.T) {
	advice := []string{"one", "two", "three", "four"}

	notes := buildNotes(advice, nil, 10)

	assert.Len(t, notes, 4)
	assert.Equal(t, "one", notes[2])
	assert.Equal(t, "two", notes[3])
}

func TestBuildNotesTimeline(t *testing.T) {
	short := buildNotes(nil, nil, 3)
	long := buildNotes(nil, nil, 20)
	mid := buildNotes(nil, nil, 12)

	assert.Len(t, short, 3)
	assert.True(t, strings.Contains(short[2], "kısıtlı"))
	assert.Len(t, long, 3)
	assert.True(t, strings.Contains(long[2], "Uzun"))
	assert.Len(t, mid, 2)
}

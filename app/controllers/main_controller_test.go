package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentPicksFilter(t *testing.T) {
	filter := studentPicksFilter()

	assert.True(t, filter.StudentSpecial)
	assert.Equal(t, 4, filter.Limit)
	assert.Empty(t, filter.Sort, "default sort keeps the newest listings first")
	assert.Empty(t, filter.Query)
	assert.Zero(t, filter.Offset)
}

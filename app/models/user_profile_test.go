package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileCompletionPercent(t *testing.T) {
	profile := UserProfile{}
	assert.Equal(t, 0, profile.CompletionPercent())
	assert.False(t, profile.IsComplete())

	profile.FirstName = "Ana"
	profile.LastName = "Quispe"
	assert.Equal(t, 50, profile.CompletionPercent())

	profile.UserType = PROFILE_TYPE_STUDENT
	profile.MainGoal = GOAL_FIND_RENTAL
	assert.Equal(t, 100, profile.CompletionPercent())
	assert.True(t, profile.IsComplete())
}

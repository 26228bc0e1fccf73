package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert.Equal(t, "-", Display(""))
	assert.Equal(t, "-", Display("N/A"))
	assert.Equal(t, "card", Display("card"))
}

func TestMatchFold(t *testing.T) {
	assert.True(t, MatchFold("ada", "Ada Fields", "ada@example.com"))
	assert.True(t, MatchFold("FIELDS", "Ada Fields"))
	assert.False(t, MatchFold("borg", "Ada Fields", "ada@example.com"))
	assert.True(t, MatchFold("", "anything"), "empty needle matches")
}

func TestBadgeFor(t *testing.T) {
	assert.Equal(t, BadgeResolved, BadgeFor("resolved").Kind)
	assert.Equal(t, BadgeResolved, BadgeFor(" Resolved ").Kind)
	assert.Equal(t, BadgeInProgress, BadgeFor("in-progress").Kind)
	assert.Equal(t, BadgeInProgress, BadgeFor("In Progress").Kind)
	assert.Equal(t, BadgeMuted, BadgeFor("settling").Kind)
	assert.Equal(t, BadgeMuted, BadgeFor("charge").Kind)
	assert.Equal(t, BadgeDefault, BadgeFor("anything-else").Kind)
	assert.Equal(t, "anything-else", BadgeFor("anything-else").Label)
}

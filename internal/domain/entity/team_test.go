package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, TeamStatusActive, DeriveStatus(1, 3))
	assert.Equal(t, TeamStatusActive, DeriveStatus(2, 3))
	assert.Equal(t, TeamStatusFull, DeriveStatus(3, 3))
	// Команда на одну спальню рождается полной
	assert.Equal(t, TeamStatusFull, DeriveStatus(1, 1))
}

func TestLeaveTransitionCreatorClosesTeam(t *testing.T) {
	team := &Team{ID: 1, CreatorID: 10, Status: TeamStatusFull}

	outcome := LeaveTransition(team, 10)

	assert.Equal(t, TeamStatusClosed, outcome.NewStatus)
	assert.True(t, outcome.RemoveAllMembers)
}

func TestLeaveTransitionMemberFreesSlot(t *testing.T) {
	team := &Team{ID: 1, CreatorID: 10, Status: TeamStatusFull}

	outcome := LeaveTransition(team, 20)

	assert.Equal(t, TeamStatusActive, outcome.NewStatus)
	assert.False(t, outcome.RemoveAllMembers)
}

func TestLeaveTransitionMemberFromActiveTeam(t *testing.T) {
	team := &Team{ID: 1, CreatorID: 10, Status: TeamStatusActive}

	outcome := LeaveTransition(team, 20)

	assert.Equal(t, TeamStatusActive, outcome.NewStatus)
	assert.False(t, outcome.RemoveAllMembers)
}

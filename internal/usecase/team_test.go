package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *domainErrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	return domainErr.Code
}

func TestCreateTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	creator := env.store.addUser(entity.User{Nickname: "Alice", Campus: "Jubilee"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed flat", Bedrooms: 2, Images: "a.jpg\nb.jpg", ContactQRCode: "qr.png"})

	team, err := env.teams.CreateTeam(ctx, creator.ID, listing.ID, "looking for one more")
	require.NoError(t, err)

	assert.Equal(t, entity.TeamStatusActive, team.Status)
	assert.Equal(t, 2, team.MaxMembers)
	assert.Equal(t, "Two-bed flat", team.PropertyTitle)
	assert.Equal(t, "a.jpg", team.PropertyImage)
	assert.Equal(t, "qr.png", team.LandlordQRCode)
	assert.Equal(t, creator.ID, team.Creator.ID)
	require.Len(t, team.Members, 1)
	assert.Equal(t, creator.ID, team.Members[0].ID)
}

func TestCreateTeamSingleBedroomIsBornFull(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	creator := env.store.addUser(entity.User{Nickname: "Alice"})
	listing := env.store.addListing(entity.Listing{Title: "Studio", Bedrooms: 1})

	team, err := env.teams.CreateTeam(ctx, creator.ID, listing.ID, "")
	require.NoError(t, err)

	assert.Equal(t, entity.TeamStatusFull, team.Status)
}

func TestCreateTeamListingNotFound(t *testing.T) {
	env := newTestEnv()
	creator := env.store.addUser(entity.User{Nickname: "Alice"})

	_, err := env.teams.CreateTeam(context.Background(), creator.ID, 999, "")
	assert.Equal(t, "LISTING_NOT_FOUND", domainCode(t, err))
}

func TestCreateTeamWhileAlreadyInTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user := env.store.addUser(entity.User{Nickname: "Dave"})
	first := env.store.addListing(entity.Listing{Title: "First", Bedrooms: 3})
	second := env.store.addListing(entity.Listing{Title: "Second", Bedrooms: 2})

	_, err := env.teams.CreateTeam(ctx, user.ID, first.ID, "")
	require.NoError(t, err)

	_, err = env.teams.CreateTeam(ctx, user.ID, second.ID, "")
	assert.Equal(t, "ALREADY_IN_TEAM", domainCode(t, err))
}

func TestJoinTeamFillsTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	bob := env.store.addUser(entity.User{Nickname: "Bob"})
	carol := env.store.addUser(entity.User{Nickname: "Carol"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.TeamStatusActive, created.Status)

	joined, err := env.teams.JoinTeam(ctx, bob.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TeamStatusFull, joined.Status)
	require.Len(t, joined.Members, 2)
	assert.Equal(t, alice.ID, joined.Members[0].ID)
	assert.Equal(t, bob.ID, joined.Members[1].ID)

	_, err = env.teams.JoinTeam(ctx, carol.ID, created.ID)
	assert.Equal(t, "TEAM_FULL", domainCode(t, err))
}

func TestJoinTeamNotFound(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(entity.User{Nickname: "Bob"})

	_, err := env.teams.JoinTeam(context.Background(), user.ID, 42)
	assert.Equal(t, "TEAM_NOT_FOUND", domainCode(t, err))
}

func TestJoinClosedTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	bob := env.store.addUser(entity.User{Nickname: "Bob"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	require.NoError(t, env.teams.LeaveTeam(ctx, alice.ID, created.ID))

	_, err = env.teams.JoinTeam(ctx, bob.ID, created.ID)
	assert.Equal(t, "TEAM_CLOSED", domainCode(t, err))
}

func TestJoinWhileAlreadyInAnotherTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	dave := env.store.addUser(entity.User{Nickname: "Dave"})
	first := env.store.addListing(entity.Listing{Title: "First", Bedrooms: 2})
	second := env.store.addListing(entity.Listing{Title: "Second", Bedrooms: 2})

	_, err := env.teams.CreateTeam(ctx, dave.ID, first.ID, "")
	require.NoError(t, err)

	other, err := env.teams.CreateTeam(ctx, alice.ID, second.ID, "")
	require.NoError(t, err)

	_, err = env.teams.JoinTeam(ctx, dave.ID, other.ID)
	assert.Equal(t, "ALREADY_IN_TEAM", domainCode(t, err))
}

// Гонка за последнее место: из N одновременных вступлений выигрывает ровно одно
func TestJoinTeamLastSlotRace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	creator := env.store.addUser(entity.User{Nickname: "Alice"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, creator.ID, listing.ID, "")
	require.NoError(t, err)

	const contenders = 8
	users := make([]*entity.User, contenders)
	for i := range users {
		users[i] = env.store.addUser(entity.User{Nickname: "Contender"})
	}

	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for _, u := range users {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := env.teams.JoinTeam(ctx, userID, created.ID)
			results <- err
		}(u.ID)
	}

	wg.Wait()
	close(results)

	won, lost := 0, 0
	for err := range results {
		if err == nil {
			won++
			continue
		}
		assert.Equal(t, "TEAM_FULL", domainCode(t, err))
		lost++
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, contenders-1, lost)

	view, err := env.query.TeamView(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TeamStatusFull, view.Status)
	assert.Len(t, view.Members, 2)
}

func TestLeaveTeamMemberReopensFullTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	bob := env.store.addUser(entity.User{Nickname: "Bob"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	joined, err := env.teams.JoinTeam(ctx, bob.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TeamStatusFull, joined.Status)

	require.NoError(t, env.teams.LeaveTeam(ctx, bob.ID, created.ID))

	view, err := env.query.TeamView(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TeamStatusActive, view.Status)
	require.Len(t, view.Members, 1)
	assert.Equal(t, alice.ID, view.Members[0].ID)
}

func TestLeaveTeamCreatorClosesTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	bob := env.store.addUser(entity.User{Nickname: "Bob"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	_, err = env.teams.JoinTeam(ctx, bob.ID, created.ID)
	require.NoError(t, err)

	// Переписка до закрытия
	_, err = env.messages.SendMessage(ctx, bob.ID, created.ID, "hello", "")
	require.NoError(t, err)

	require.NoError(t, env.teams.LeaveTeam(ctx, alice.ID, created.ID))

	view, err := env.query.TeamView(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TeamStatusClosed, view.Status)
	assert.Empty(t, view.Members)

	// Команда пропадает из "моей команды" у обоих
	my, err := env.query.GetMyTeam(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, my)

	my, err = env.query.GetMyTeam(ctx, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, my)

	// История сообщений переживает закрытие
	env.store.mu.Lock()
	remaining := len(env.store.messages)
	env.store.mu.Unlock()
	assert.Equal(t, 1, remaining)

	// Оба снова свободны для новых команд
	another := env.store.addListing(entity.Listing{Title: "Another", Bedrooms: 2})
	_, err = env.teams.CreateTeam(ctx, bob.ID, another.ID, "")
	require.NoError(t, err)
}

func TestLeaveTeamNotAMember(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	mallory := env.store.addUser(entity.User{Nickname: "Mallory"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	err = env.teams.LeaveTeam(ctx, mallory.ID, created.ID)
	assert.Equal(t, "NOT_A_MEMBER", domainCode(t, err))
}

func TestUpdateMemberNote(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	member, err := env.teams.UpdateMemberNote(ctx, alice.ID, created.ID, alice.ID, "prefer ground floor")
	require.NoError(t, err)
	assert.Equal(t, "prefer ground floor", member.Note)

	view, err := env.query.TeamView(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "prefer ground floor", view.Members[0].Note)
	assert.Equal(t, "prefer ground floor", view.Creator.Note)
}

func TestUpdateMemberNoteForbiddenForOthers(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	bob := env.store.addUser(entity.User{Nickname: "Bob"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	_, err = env.teams.UpdateMemberNote(ctx, bob.ID, created.ID, alice.ID, "hijack")
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestUpdateMemberNoteTooLong(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	long := strings.Repeat("ж", MaxNoteLength+1)
	_, err = env.teams.UpdateMemberNote(ctx, alice.ID, created.ID, alice.ID, long)
	assert.Equal(t, "NOTE_TOO_LONG", domainCode(t, err))

	// Ровно 500 символов проходит
	ok := strings.Repeat("ж", MaxNoteLength)
	_, err = env.teams.UpdateMemberNote(ctx, alice.ID, created.ID, alice.ID, ok)
	require.NoError(t, err)
}

func TestUpdateMemberNoteNotAMember(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.store.addUser(entity.User{Nickname: "Alice"})
	outsider := env.store.addUser(entity.User{Nickname: "Bob"})
	listing := env.store.addListing(entity.Listing{Title: "Two-bed", Bedrooms: 2})

	created, err := env.teams.CreateTeam(ctx, alice.ID, listing.ID, "")
	require.NoError(t, err)

	_, err = env.teams.UpdateMemberNote(ctx, outsider.ID, created.ID, outsider.ID, "hi")
	assert.Equal(t, "NOT_A_MEMBER", domainCode(t, err))
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
)

// fakeResolver отдает заранее заданный openId либо ошибку
type fakeResolver struct {
	openID string
	err    error
}

func (r *fakeResolver) Resolve(ctx context.Context, code string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.openID, nil
}

func newAuthEnv(resolver OpenIDResolver) (*memStore, *AuthUseCase) {
	store := newMemStore()
	return store, NewAuthUseCase(&memUserRepo{s: store}, resolver)
}

func TestLoginCreatesNewUser(t *testing.T) {
	_, auth := newAuthEnv(&fakeResolver{openID: "wx-open-1"})

	user, err := auth.Login(context.Background(), "code123", "Alice", "avatar.png")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "wx-open-1", user.OpenID)
	assert.Equal(t, "Alice", user.Nickname)
	assert.Equal(t, "avatar.png", user.Avatar)
}

func TestLoginDefaultsNickname(t *testing.T) {
	_, auth := newAuthEnv(&fakeResolver{openID: "wx-open-2"})

	user, err := auth.Login(context.Background(), "code123", "", "")
	require.NoError(t, err)
	assert.Equal(t, "WeChat User", user.Nickname)
}

func TestLoginFindsExistingUser(t *testing.T) {
	ctx := context.Background()
	_, auth := newAuthEnv(&fakeResolver{openID: "wx-open-3"})

	first, err := auth.Login(ctx, "code1", "Alice", "a.png")
	require.NoError(t, err)

	second, err := auth.Login(ctx, "code2", "Alice Smith", "ignored.png")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Alice Smith", second.Nickname)
	// Аватар при повторном входе не трогаем
	assert.Equal(t, "a.png", second.Avatar)
}

func TestLoginResolverFailure(t *testing.T) {
	_, auth := newAuthEnv(&fakeResolver{err: errors.New("wechat unavailable")})

	_, err := auth.Login(context.Background(), "bad-code", "", "")
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	store, auth := newAuthEnv(&fakeResolver{openID: "wx-open-4"})

	user := store.addUser(entity.User{Nickname: "Alice", Avatar: "a.png", Campus: "Jubilee"})

	motto := "early bird"
	campus := "University Park"
	updated, err := auth.UpdateProfile(ctx, user.ID, ProfileUpdate{
		Campus: &campus,
		Motto:  &motto,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", updated.Nickname)
	assert.Equal(t, "a.png", updated.Avatar)
	assert.Equal(t, "University Park", updated.Campus)
	assert.Equal(t, "early bird", updated.Motto)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	_, auth := newAuthEnv(&fakeResolver{openID: "wx-open-5"})

	nickname := "Ghost"
	_, err := auth.UpdateProfile(context.Background(), 999, ProfileUpdate{Nickname: &nickname})
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestGetUserUnknown(t *testing.T) {
	_, auth := newAuthEnv(&fakeResolver{openID: "wx-open-6"})

	_, err := auth.GetUser(context.Background(), 999)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

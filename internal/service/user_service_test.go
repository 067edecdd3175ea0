package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	repo := newUserRepoStub()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, " leo ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "leo", user.Username)
	assert.Empty(t, user.Password)
	assert.NotEqual(t, "correct-horse", repo.users["leo"].Password, "stored password is hashed")

	got, err := svc.Authenticate(ctx, "leo", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.Password)

	_, err = svc.Authenticate(ctx, "leo", "wrong-password")
	assertCode(t, err, models.CodeUnauthorized)
	_, err = svc.Authenticate(ctx, "ghost", "correct-horse")
	assertCode(t, err, models.CodeUnauthorized)
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := NewUserService(newUserRepoStub())
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "  ", "long-enough"},
		{"short password", "leo", "short"},
		{"slash in username", "ann/lee", "long-enough"},
		{"space in username", "ann lee", "long-enough"},
		{"query in username", "ann?x=1", "long-enough"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			assertCode(t, err, models.CodeValidation)
		})
	}
}

func TestUserService_CurrentAndDelete(t *testing.T) {
	repo := newUserRepoStub()
	svc := NewUserService(repo)
	ctx := context.Background()
	user, err := svc.Register(ctx, "leo", "correct-horse")
	require.NoError(t, err)

	anon, err := svc.Current(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, anon)

	cur, err := svc.Current(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", cur.Username)

	require.NoError(t, svc.Delete(ctx, "leo"))
	assert.Equal(t, []uint{user.ID}, repo.deleted)
	assert.True(t, models.IsNotFound(svc.Delete(ctx, "ghost")))
}

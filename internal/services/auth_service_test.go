package services

import (
	"context"
	"testing"
	"time"

	"convospace-backend/internal/auth"
	"convospace-backend/internal/config"
	"convospace-backend/internal/models"
	"convospace-backend/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (*AuthService, *fakeStore) {
	fs := newFakeStore()
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		TokenExpiration: time.Hour,
	}
	return NewAuthService(fs, cfg), fs
}

func TestSignup(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	t.Run("creates a user with hashed password", func(t *testing.T) {
		user, err := svc.Signup(ctx, "Alice@Example.com", "s3cretpass")
		require.NoError(t, err)
		require.NotZero(t, user.ID)
		require.Equal(t, "alice@example.com", user.Email, "email is normalized")
		require.NotEqual(t, "s3cretpass", user.HashedPassword)
		require.True(t, auth.CheckPasswordHash("s3cretpass", user.HashedPassword))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, "alice@example.com", "anotherpass")
		require.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("empty input is a validation error", func(t *testing.T) {
		_, err := svc.Signup(ctx, "", "")
		require.ErrorIs(t, err, ErrValidation)
	})
}

// blindStore hides existing users from the pre-insert existence check, the way
// a concurrent signup that commits between the check and the insert would.
type blindStore struct {
	*fakeStore
}

func (b *blindStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, store.ErrNotFound
}

func TestSignup_DuplicateInsertIsConflict(t *testing.T) {
	fs := newFakeStore()
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpiration: time.Hour}
	svc := NewAuthService(&blindStore{fs}, cfg)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "carol@example.com", "firstpass")
	require.NoError(t, err)

	// The existence check sees nothing, so the uniqueness violation comes
	// from the insert itself and must still surface as the conflict error.
	_, err = svc.Signup(ctx, "carol@example.com", "secondpass")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestDeleteAccount(t *testing.T) {
	authSvc, fs := newTestAuthService()
	convSvc := NewConversationService(fs)
	ctx := context.Background()

	alice, err := authSvc.Signup(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	bob, err := authSvc.Signup(ctx, "bob@example.com", "s3cretpass")
	require.NoError(t, err)

	aliceConv, err := convSvc.CreateConversation(ctx, alice.ID, models.CreateConversationRequest{})
	require.NoError(t, err)
	_, err = convSvc.AddUserMessage(ctx, alice.ID, aliceConv.ID, "hello")
	require.NoError(t, err)

	bobConv, err := convSvc.CreateConversation(ctx, bob.ID, models.CreateConversationRequest{})
	require.NoError(t, err)
	_, err = convSvc.AddUserMessage(ctx, bob.ID, bobConv.ID, "hi there")
	require.NoError(t, err)

	t.Run("removes the user and cascades to conversations and messages", func(t *testing.T) {
		require.NoError(t, authSvc.DeleteAccount(ctx, alice.ID))

		_, err := fs.GetUserByID(ctx, alice.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = fs.GetConversationByID(ctx, aliceConv.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		msgs, err := fs.ListMessages(ctx, aliceConv.ID)
		require.NoError(t, err)
		require.Empty(t, msgs, "no orphaned messages remain")

		convs, err := fs.ListConversations(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, convs)
	})

	t.Run("other users are untouched", func(t *testing.T) {
		_, err := fs.GetUserByID(ctx, bob.ID)
		require.NoError(t, err)

		msgs, err := convSvc.ListMessages(ctx, bob.ID, bobConv.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := authSvc.DeleteAccount(ctx, 9999)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "bob@example.com", "correct-horse")
	require.NoError(t, err)

	t.Run("valid credentials return an access token", func(t *testing.T) {
		token, got, err := svc.Login(ctx, "bob@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.NotEmpty(t, token)

		claims := &auth.CustomClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)
		require.Equal(t, auth.TokenTypeAccess, claims.TokenType)
		require.Equal(t, "1", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "bob@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

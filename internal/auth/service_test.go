package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kpapadakis/emporos/internal/auth"
)

type mockRepo struct {
	createUserFunc        func(ctx context.Context, user *auth.User) error
	getUserFunc           func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	getUserByUsernameFunc func(ctx context.Context, username string) (*auth.User, error)
}

func (m *mockRepo) CreateUser(ctx context.Context, user *auth.User) error {
	return m.createUserFunc(ctx, user)
}

func (m *mockRepo) GetUser(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return m.getUserFunc(ctx, id)
}

func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return m.getUserByUsernameFunc(ctx, username)
}

func TestService_CreateUser_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  auth.CreateUserParams
		wantErr error
	}{
		{
			name:    "MissingUsername",
			params:  auth.CreateUserParams{Password: "longenough", Email: "maria@example.gr", FullName: "Maria", Role: auth.RoleUser},
			wantErr: auth.ErrMissingUsername,
		},
		{
			name:    "ShortPassword",
			params:  auth.CreateUserParams{Username: "maria", Password: "short", Email: "maria@example.gr", FullName: "Maria", Role: auth.RoleUser},
			wantErr: auth.ErrPasswordTooShort,
		},
		{
			name:    "BadEmail",
			params:  auth.CreateUserParams{Username: "maria", Password: "longenough", Email: "not-an-email", FullName: "Maria", Role: auth.RoleUser},
			wantErr: auth.ErrInvalidEmail,
		},
		{
			name:    "MissingFullName",
			params:  auth.CreateUserParams{Username: "maria", Password: "longenough", Email: "maria@example.gr", Role: auth.RoleUser},
			wantErr: auth.ErrMissingFullName,
		},
		{
			name:    "BadRole",
			params:  auth.CreateUserParams{Username: "maria", Password: "longenough", Email: "maria@example.gr", FullName: "Maria", Role: "owner"},
			wantErr: auth.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := auth.NewService(&mockRepo{}, "secret", time.Hour)

			got, err := svc.CreateUser(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_CreateUser_HashesPassword(t *testing.T) {
	var saved *auth.User
	repo := &mockRepo{
		createUserFunc: func(_ context.Context, user *auth.User) error {
			user.ID = uuid.New()
			saved = user
			return nil
		},
	}

	svc := auth.NewService(repo, "secret", time.Hour)

	got, err := svc.CreateUser(context.Background(), auth.CreateUserParams{
		Username: "maria",
		Password: "correct horse battery",
		Email:    "maria@example.gr",
		FullName: "Maria Ioannou",
		Role:     auth.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "maria", saved.Username)
	assert.NotEqual(t, "correct horse battery", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("correct horse battery")))
	assert.Equal(t, saved, got)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	user := &auth.User{
		ID:           userID,
		Username:     "maria",
		PasswordHash: string(hash),
		Role:         auth.RoleAdmin,
	}

	repo := &mockRepo{
		getUserByUsernameFunc: func(_ context.Context, username string) (*auth.User, error) {
			if username != "maria" {
				return nil, auth.ErrNotFound
			}
			return user, nil
		},
	}

	svc := auth.NewService(repo, "secret", time.Hour)

	t.Run("Success", func(t *testing.T) {
		got, token, err := svc.Login(context.Background(), "maria", "correct horse battery")
		require.NoError(t, err)
		assert.Equal(t, user, got)
		require.NotEmpty(t, token)

		claims, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.Equal(t, auth.RoleAdmin, claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		got, token, err := svc.Login(context.Background(), "maria", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, got)
		assert.Empty(t, token)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		got, token, err := svc.Login(context.Background(), "nobody", "correct horse battery")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, got)
		assert.Empty(t, token)
	})
}

func TestService_VerifyToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &auth.User{
		ID:           uuid.New(),
		Username:     "maria",
		PasswordHash: string(hash),
		Role:         auth.RoleUser,
	}
	repo := &mockRepo{
		getUserByUsernameFunc: func(context.Context, string) (*auth.User, error) {
			return user, nil
		},
	}

	t.Run("Garbage", func(t *testing.T) {
		svc := auth.NewService(repo, "secret", time.Hour)

		claims, err := svc.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		issuer := auth.NewService(repo, "secret-a", time.Hour)
		_, token, err := issuer.Login(context.Background(), "maria", "correct horse battery")
		require.NoError(t, err)

		verifier := auth.NewService(repo, "secret-b", time.Hour)
		claims, err := verifier.VerifyToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Expired", func(t *testing.T) {
		svc := auth.NewService(repo, "secret", -time.Minute)
		_, token, err := svc.Login(context.Background(), "maria", "correct horse battery")
		require.NoError(t, err)

		claims, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}

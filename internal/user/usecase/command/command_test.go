package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favoritesapp/favorites-api/internal/user/domain"
	"github.com/favoritesapp/favorites-api/pkg/auth"
)

// fakeUserRepo is an in-memory user store
type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	if _, ok := f.users[id]; !ok {
		return errors.New("user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Exists(id uint) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleClient, user.Role)
	// Stored as a bcrypt hash, never plaintext
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "password123"))
}

func TestRegisterUser_Validation(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepo())

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"blank name", RegisterUserCommand{Name: "  ", Email: "a@b.com", Password: "password123"}},
		{"missing email", RegisterUserCommand{Name: "Ada", Password: "password123"}},
		{"missing password", RegisterUserCommand{Name: "Ada", Email: "a@b.com"}},
		{"short password", RegisterUserCommand{Name: "Ada", Email: "a@b.com", Password: "short"}},
		{"bad role", RegisterUserCommand{Name: "Ada", Email: "a@b.com", Password: "password123", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = handler.Handle(RegisterUserCommand{Name: "Other Ada", Email: "ada@example.com", Password: "password456"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already exists")
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.Type)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Email: "ada@example.com", Password: "nope-nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	handler := NewLoginUserHandler(newFakeUserRepo())

	_, err := handler.Handle(LoginUserCommand{Email: "ghost@example.com", Password: "password123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestUpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	updated, err := NewUpdateUserHandler(repo).Handle(UpdateUserCommand{
		ID:   user.ID,
		Name: "Ada Lovelace",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email)
}

package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// ハッシュは決め打ちで返す
type hasherStub struct{}

func (hasherStub) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type verifierStub struct{ ok bool }

func (v verifierStub) Verify(plain string, hashed string) bool { return v.ok }

type clockStub struct{ now time.Time }

func (c clockStub) Now() time.Time { return c.now }

type issuerStub struct{}

func (issuerStub) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "signed-token", now.Add(15 * time.Minute), nil
}

var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// =====================
// Register
// =====================

func newRegisterFixture() (*UserRepoMock, *auth.RegisterUserUsecase) {
	users := new(UserRepoMock)
	return users, auth.NewRegisterUserUsecase(users, hasherStub{}, clockStub{now: fixedNow})
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	_, uc := newRegisterFixture()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email: "not-an-email", Name: "Sato", Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat)
}

func TestRegisterUser_PasswordTooShort(t *testing.T) {
	_, uc := newRegisterFixture()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email: "sato@example.com", Name: "Sato", Password: "short",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRegisterUser_WeakPassword(t *testing.T) {
	_, uc := newRegisterFixture()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email: "sato@example.com", Name: "Sato", Password: "123456789012",
	})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	users, uc := newRegisterFixture()

	users.On("FindByEmail", mock.Anything, "sato@example.com").Return(model.User{ID: 1}, nil)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email: "sato@example.com", Name: "Sato", Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ハッシュを保存し、返却時にはハッシュを落とす
func TestRegisterUser_Success(t *testing.T) {
	users, uc := newRegisterFixture()

	users.On("FindByEmail", mock.Anything, "sato@example.com").Return(model.User{}, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "sato@example.com" &&
			u.PasswordHash == "hashed:correct horse battery" &&
			u.Role == model.RoleStaff &&
			u.IsActive
	})).Return(model.User{ID: 10, Email: "sato@example.com", PasswordHash: "hashed:correct horse battery"}, nil)

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email: "sato@example.com", Name: "Sato", Password: "correct horse battery",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.User.ID)
	assert.Empty(t, out.User.PasswordHash)

	users.AssertExpectations(t)
}

// INSERTで一意制約に当たっても重複扱い
func TestRegisterUser_ConflictOnCreate(t *testing.T) {
	users, uc := newRegisterFixture()

	users.On("FindByEmail", mock.Anything, "sato@example.com").Return(model.User{}, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, repository.ErrConflict)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email: "sato@example.com", Name: "Sato", Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}

// =====================
// Login
// =====================

func newLoginFixture(verifyOK bool) (*UserRepoMock, *auth.LoginUsecase) {
	users := new(UserRepoMock)
	return users, auth.NewLoginUsecase(users, verifierStub{ok: verifyOK}, issuerStub{}, clockStub{now: fixedNow})
}

func TestLogin_EmptyInput(t *testing.T) {
	_, uc := newLoginFixture(true)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "", Password: ""})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// 存在しないユーザーもパスワード不一致も同じエラー
func TestLogin_UnknownUser(t *testing.T) {
	users, uc := newLoginFixture(true)

	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, repository.ErrNotFound)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	users, uc := newLoginFixture(false)

	users.On("FindByEmail", mock.Anything, "sato@example.com").Return(model.User{
		ID: 10, Email: "sato@example.com", PasswordHash: "hashed", IsActive: true,
	}, nil)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "sato@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	users, uc := newLoginFixture(true)

	users.On("FindByEmail", mock.Anything, "sato@example.com").Return(model.User{
		ID: 10, Email: "sato@example.com", PasswordHash: "hashed", IsActive: false,
	}, nil)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "sato@example.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestLogin_Success(t *testing.T) {
	users, uc := newLoginFixture(true)

	users.On("FindByEmail", mock.Anything, "sato@example.com").Return(model.User{
		ID: 10, Email: "sato@example.com", PasswordHash: "hashed", IsActive: true, Role: model.RoleStaff,
	}, nil)
	users.On("UpdateLastLogin", mock.Anything, int64(10), fixedNow).Return(nil)

	out, err := uc.Execute(context.Background(), auth.LoginInput{Email: "sato@example.com", Password: "x"})
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token.AccessToken)
	assert.Empty(t, out.User.PasswordHash)

	users.AssertExpectations(t)
}

// =====================
// Bcrypt
// =====================

func TestBcryptRoundTrip(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	verifier := auth.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("correct horse battery")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hashed)

	assert.True(t, verifier.Verify("correct horse battery", hashed))
	assert.False(t, verifier.Verify("wrong password", hashed))
}

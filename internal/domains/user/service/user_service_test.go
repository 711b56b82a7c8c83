package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoodlab-backend/internal/domains/user"
	"hoodlab-backend/internal/domains/user/model"
	pkgjwt "hoodlab-backend/pkg/jwt"
)

// =====================================================
// FAKE REPOSITORY
// =====================================================

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byID: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context, q model.ListUsersQuery) ([]model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []model.User
	for _, u := range r.byID {
		users = append(users, *u)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func newTestUserService() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtManager := pkgjwt.NewManager("testsecret", 60, 72)
	return NewUserService(repo, jwtManager), repo
}

func registerReq() model.RegisterRequest {
	return model.RegisterRequest{
		Email:    "khach@example.com",
		Password: "matkhau123",
		FullName: "Nguyen Van A",
	}
}

// =====================================================
// TESTS
// =====================================================

func TestRegisterReturnsTokenPair(t *testing.T) {
	svc, _ := newTestUserService()

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "khach@example.com", resp.User.Email)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
}

func TestRegisterDoesNotStorePlaintextPassword(t *testing.T) {
	svc, repo := newTestUserService()

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "matkhau123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLoginWithCorrectPassword(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "khach@example.com",
		Password: "matkhau123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "khach@example.com",
		Password: "saimatkhau",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmailWithSameError(t *testing.T) {
	svc, _ := newTestUserService()

	// Cùng một error cho email lạ và password sai - không leak
	// thông tin tài khoản nào tồn tại
	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "khongtontai@example.com",
		Password: "batky",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, repo := newTestUserService()

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, repo.Update(context.Background(), stored))

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "khach@example.com",
		Password: "matkhau123",
	})
	assert.ErrorIs(t, err, user.ErrAccountDisabled)
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	svc, _ := newTestUserService()

	first, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	second, err := svc.RefreshToken(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newTestUserService()

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	// Access token không được dùng làm refresh token
	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	svc, _ := newTestUserService()

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), resp.User.ID, model.ChangePasswordRequest{
		CurrentPassword: "saimatkhau",
		NewPassword:     "matkhaumoi123",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), resp.User.ID, model.ChangePasswordRequest{
		CurrentPassword: "matkhau123",
		NewPassword:     "matkhaumoi123",
	})
	require.NoError(t, err)

	// Mật khẩu mới dùng được ngay
	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "khach@example.com",
		Password: "matkhaumoi123",
	})
	assert.NoError(t, err)
}

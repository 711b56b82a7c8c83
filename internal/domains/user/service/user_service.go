package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"hoodlab-backend/internal/domains/user"
	"hoodlab-backend/internal/domains/user/model"
	"hoodlab-backend/internal/domains/user/repository"
	pkgjwt "hoodlab-backend/pkg/jwt"
)

// UserService - authentication + profile
type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*model.UserDTO, error)
	UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.UserDTO, error)
	ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error
	AdminListUsers(ctx context.Context, q model.ListUsersQuery) (*model.UserList, error)
}

type userService struct {
	repo repository.UserRepository
	jwt  *pkgjwt.Manager
}

func NewUserService(repo repository.UserRepository, jwtManager *pkgjwt.Manager) UserService {
	return &userService{repo: repo, jwt: jwtManager}
}

// Register tạo tài khoản mới, trả luôn token pair để client đăng nhập ngay
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// bcrypt cost 12
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &model.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	if req.Phone != "" {
		newUser.Phone = &req.Phone
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(newUser)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Không tiết lộ email có tồn tại hay không
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, user.ErrAccountDisabled
	}

	return s.buildAuthResponse(u)
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*model.AuthResponse, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, user.ErrAccountDisabled
	}

	return s.buildAuthResponse(u)
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*model.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.ToUserDTO(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.FullName = req.FullName
	if req.Phone != "" {
		u.Phone = &req.Phone
	} else {
		u.Phone = nil
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return model.ToUserDTO(u), nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrInvalidCredentials
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(newHash))
}

func (s *userService) AdminListUsers(ctx context.Context, q model.ListUsersQuery) (*model.UserList, error) {
	q.Normalize()

	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *model.ToUserDTO(&users[i]))
	}

	return &model.UserList{
		Users: dtos,
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
	}, nil
}

func (s *userService) buildAuthResponse(u *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		User:         model.ToUserDTO(u),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

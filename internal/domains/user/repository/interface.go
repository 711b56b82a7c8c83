package repository

import (
	"context"

	"hoodlab-backend/internal/domains/user/model"
)

// UserRepository - data access cho bảng users
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, q model.ListUsersQuery) ([]model.User, int64, error)
	Update(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

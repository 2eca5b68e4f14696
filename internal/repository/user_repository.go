package repository

import (
	"context"
	"errors"

	"cosmeshop/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// アクティブ状態・承認状態・最終ログインなどの更新
	Update(ctx context.Context, user *model.User) error

	// 承認待ち一覧など
	ListByAccountStatus(ctx context.Context, status model.AccountStatus) ([]model.User, error)
	// 管理者以外の全ユーザー
	ListCustomers(ctx context.Context) ([]model.User, error)
}

package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"
)

// 承認・却下時の通知
type ApprovalNotifier interface {
	AccountApproved(user model.User)
	AccountRejected(user model.User, reason string)
}

type ApprovalUsecase struct {
	users    repo.UserRepository
	notifier ApprovalNotifier
}

func NewApprovalUsecase(users repo.UserRepository, notifier ApprovalNotifier) *ApprovalUsecase {
	return &ApprovalUsecase{users: users, notifier: notifier}
}

type RejectInput struct {
	Reason string `json:"reason"`
}

// 承認待ちユーザー一覧（管理者）
func (u *ApprovalUsecase) ListPending(ctx context.Context, actor Actor) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	users, err := u.users.ListByAccountStatus(ctx, model.AccountStatusPending)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

// 顧客一覧（管理者）
func (u *ApprovalUsecase) ListCustomers(ctx context.Context, actor Actor) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, NewHTTPError(http.StatusForbidden, "access denied")
	}
	users, err := u.users.ListCustomers(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

// 承認。PENDING以外のアカウントには適用できない。
func (u *ApprovalUsecase) Approve(ctx context.Context, actor Actor, userID int64) (model.User, error) {
	if !actor.IsAdmin() {
		return model.User{}, NewHTTPError(http.StatusForbidden, "access denied")
	}

	user, err := u.findPending(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now()
	user.AccountStatus = model.AccountStatusApproved
	user.ApprovedAt = &now
	user.ApprovedBy = &actor.UserID
	user.RejectionReason = ""

	if err := u.users.Update(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.notifier.AccountApproved(*user)

	return *user, nil
}

// 却下。理由はメールに載せる。
func (u *ApprovalUsecase) Reject(ctx context.Context, actor Actor, userID int64, in RejectInput) (model.User, error) {
	if !actor.IsAdmin() {
		return model.User{}, NewHTTPError(http.StatusForbidden, "access denied")
	}

	user, err := u.findPending(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	user.AccountStatus = model.AccountStatusRejected
	user.RejectionReason = strings.TrimSpace(in.Reason)

	if err := u.users.Update(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.notifier.AccountRejected(*user, user.RejectionReason)

	return *user, nil
}

// ユーザー停止・再開（管理者）
func (u *ApprovalUsecase) SetActive(ctx context.Context, actor Actor, userID int64, active bool) (model.User, error) {
	if !actor.IsAdmin() {
		return model.User{}, NewHTTPError(http.StatusForbidden, "access denied")
	}
	if userID == actor.UserID {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "cannot change own account")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.IsActive = active
	if err := u.users.Update(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *user, nil
}

func (u *ApprovalUsecase) findPending(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user.AccountStatus != model.AccountStatusPending {
		return nil, NewHTTPError(http.StatusConflict, "account is not pending approval")
	}
	return user, nil
}

package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"cosmeshop/internal/domain/model"
	repo "cosmeshop/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// 登録・ログイン時の通知
type AccountNotifier interface {
	Welcome(user model.User)
}

type AuthUsecase struct {
	users     repo.UserRepository
	notifier  AccountNotifier
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthUsecase(users repo.UserRepository, notifier AccountNotifier, jwtSecret string, tokenTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		notifier:  notifier,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// 新規登録。アカウントはPENDINGで作られ、管理者の承認を待つ。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if len(username) < 3 || len(username) > 50 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "username must be 3-50 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "username already taken")
	} else if err != repo.ErrUserNotFound {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already registered")
	} else if err != repo.ErrUserNotFound {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	user := model.User{
		Username:      username,
		Email:         email,
		PasswordHash:  string(hash),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		PhoneNumber:   in.PhoneNumber,
		Role:          model.RoleCustomer,
		IsActive:      true,
		AccountStatus: model.AccountStatusPending,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		Country:       in.Country,
	}

	if err := u.users.Create(ctx, &user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.notifier.Welcome(user)

	return user, nil
}

// ログイン。承認済み（APPROVED）かつ有効なアカウントのみトークンを発行する。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "username and password required")
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err == repo.ErrUserNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	switch {
	case !user.IsActive:
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "account is deactivated")
	case user.AccountStatus == model.AccountStatusPending:
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "account is awaiting approval")
	case user.AccountStatus == model.AccountStatusRejected:
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "account was not approved")
	}

	token, err := u.issueToken(*user)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LoginOutput{Token: token, User: *user}, nil
}

// 自分のプロフィール取得
func (u *AuthUsecase) Me(ctx context.Context, actor Actor) (model.User, error) {
	user, err := u.users.FindByID(ctx, actor.UserID)
	if err == repo.ErrUserNotFound {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *user, nil
}

func (u *AuthUsecase) issueToken(user model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"approved": user.IsApproved(),
		"iat":      now.Unix(),
		"exp":      now.Add(u.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtSecret)
}

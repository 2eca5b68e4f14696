package usecase

import (
	"errors"
	"fmt"

	"cosmeshop/internal/domain/model"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// Actorは操作を行う呼び出し元。ミドルウェアがJWTから組み立てて
// 明示的に渡す（グローバルな認証コンテキストは使わない）。
type Actor struct {
	UserID int64
	Role   model.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

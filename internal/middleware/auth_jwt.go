package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"cosmeshop/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTAuthはAuthorization: Bearerのトークンを検証し、
// user_id / user_role / approved をechoコンテキストへ載せる。
func JWTAuth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			tokenStr, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			role, _ := claims["role"].(string)
			approved, _ := claims["approved"].(bool)

			c.Set("user_id", int64(sub))
			c.Set("user_role", model.Role(role))
			c.Set("approved", approved)

			return next(c)
		}
	}
}

// AdminOnlyはJWTAuthの後段で管理者ロールを要求する
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get("user_role").(model.Role)
		if role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

// ApprovedOnlyは承認済みアカウントのみ通す。
// トークン発行後に却下・停止される場合に備え、クレームで弾く。
func ApprovedOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		approved, _ := c.Get("approved").(bool)
		role, _ := c.Get("user_role").(model.Role)
		if !approved && role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "account not approved")
		}
		return next(c)
	}
}

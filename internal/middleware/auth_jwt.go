package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const CtxSubjectKey = "subject" // string

var errUnauthorized = errors.New("unauthorized")

// /cart を守るHS256のbearerトークン検証。
// subがあればCtxSubjectKeyに入れる（リクエストログ用）。
func AuthJWT(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON(errUnauthorized.Error()))
			}

			claims, err := verifyHS256(raw, key)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON(errUnauthorized.Error()))
			}

			if sub, ok := claims["sub"].(string); ok && sub != "" {
				c.Set(CtxSubjectKey, sub)
			}
			return next(c)
		}
	}
}

// "Bearer <token>" からtokenを取り出す。スキーム名は大文字小文字を区別しない。
func bearerToken(authz string) (string, bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(authz), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(rest)
	return token, token != ""
}

func verifyHS256(raw string, key []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

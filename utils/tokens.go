package utils

import (
	"context"
	"net/http"
	"os"
	"time"

	"tourism-sewa-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

const (
	RoleTourist  = "tourist"
	RoleBusiness = "business"
	RoleAdmin    = "admin"

	tokenCookieName = "token"
	tokenLifetime   = 7 * 24 * time.Hour
)

// AccessToken is the claim set carried by the httpOnly token cookie.
// Admin tokens are minted from environment credentials and never map to a
// database row; their ID is fixed to 1.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}

func CreateToken(id uint, role string) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, []byte(os.Getenv("TOKEN_SECRET")), tokenLifetime)

	token, err := signer.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return "", err
	}
	return string(token), nil
}

func SetTokenCookie(ctx iris.Context, token string) {
	secure := os.Getenv("RENDER") != ""
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	ctx.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenLifetime.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

func ClearTokenCookie(ctx iris.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// TokenFromCookie is the extractor wired into the JWT verifier so the token
// travels in the cookie rather than the Authorization header.
func TokenFromCookie(ctx iris.Context) string {
	return ctx.GetCookie(tokenCookieName)
}

// BlocklistToken voids a live token (logout) until its natural expiry.
// Without Redis there is nothing to write to; the cookie removal on the
// client is the only effect.
func BlocklistToken(token string) {
	if storage.Redis == nil || token == "" {
		return
	}
	storage.Redis.Set(bgContext, blocklistKey(token), "revoked", tokenLifetime)
}

func IsTokenBlocked(token string) bool {
	if storage.Redis == nil || token == "" {
		return false
	}
	val, err := storage.Redis.Get(bgContext, blocklistKey(token)).Result()
	return err == nil && val == "revoked"
}

func blocklistKey(token string) string {
	return "token:blocklist:" + token
}

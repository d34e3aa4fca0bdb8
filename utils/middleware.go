package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// BlocklistMiddleware rejects tokens revoked by logout. Runs after the JWT
// verifier so the token is already authenticated.
func BlocklistMiddleware(ctx iris.Context) {
	if verified := jwt.GetVerifiedToken(ctx); verified != nil {
		if IsTokenBlocked(string(verified.Token)) {
			CreateError(iris.StatusUnauthorized, "Invalid or expired token", ctx)
			return
		}
	}
	ctx.Next()
}

// TouristOnlyMiddleware ensures the requester is a tourist and stores the id
// in the context for downstream handlers.
func TouristOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != RoleTourist {
		CreateError(iris.StatusUnauthorized, "Unauthorized: Not a authorized user", ctx)
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// BusinessOnlyMiddleware ensures the requester is a business account.
func BusinessOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != RoleBusiness {
		CreateError(iris.StatusUnauthorized, "Unauthorized: Not a business user", ctx)
		return
	}
	ctx.Values().Set("businessID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester carries the admin capability.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != RoleAdmin {
		CreateError(iris.StatusUnauthorized, "Unauthorized: Not a authorized user", ctx)
		return
	}
	ctx.Values().Set("adminID", claims.ID)
	ctx.Next()
}

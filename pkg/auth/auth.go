package auth

import (
	"context"
	"os"

	"github.com/golang-jwt/jwt/v4"
)

const (
	XUserNameHeader = "X-User-Name"
	XUserRoleHeader = "X-User-Role"

	RoleStudent = "STUDENT"
	RoleStaff   = "STAFF"
)

// JWTKey signs/verifies bearer tokens. Override via JWT_KEY in deployment.
var JWTKey = []byte(jwtKeyFromEnv())

func jwtKeyFromEnv() string {
	if k := os.Getenv("JWT_KEY"); k != "" {
		return k
	}
	return "school-portal-dev-key"
}

type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Claims struct {
	Profile Profile `json:"profile"`
	jwt.RegisteredClaims
}

type ctxKey uint8

const (
	holderKey ctxKey = iota
	roleKey
)

func SetAuthContext(ctx context.Context, holderID, role string) context.Context {
	ctx = context.WithValue(ctx, holderKey, holderID)
	return context.WithValue(ctx, roleKey, role)
}

func HolderFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(holderKey).(string)
	return v, ok && v != ""
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(roleKey).(string)
	return v, ok && v != ""
}

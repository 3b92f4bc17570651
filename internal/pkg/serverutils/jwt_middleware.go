package serverutils

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtKeyFunc supplies the HS256 verification key. The fallback matches
// the signing default, so a box with no JWT_SECRET set still
// round-trips its own tokens.
func JwtKeyFunc(*jwt.Token) (interface{}, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret), nil
}

// JwtMiddleware guards a route group. On success the subject's id is stored
// in ctx.Locals("user_id") for the handlers downstream.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	// Tokens are minted with HS256 only; reject anything else.
	token, err := jwt.Parse(tokenStr, JwtKeyFunc, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
	}

	ctx.Locals("user_id", claims["user_id"])
	return ctx.Next()
}

package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"app/config"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

// Helper to create an app with a pre-local middleware that sets userRole
func makeAppWithRole(role string, check func(*fiber.Ctx) error) *fiber.App {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		return c.Next()
	})

	app.Use(check)

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(200).SendString("ok")
	})

	return app
}

func signTestToken(t *testing.T, secret, userID, role string) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	app := fiber.New()
	app.Use(JWTMiddleware)
	app.Get("/test", func(c *fiber.Ctx) error {
		claims, err := ExtractClaims(c)
		if err != nil {
			return c.Status(500).SendString(err.Error())
		}
		return c.SendString(claims.UserID + ":" + claims.Role)
	})

	token := signTestToken(t, "test-secret", "user-1", "brand")
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	app := fiber.New()
	app.Use(JWTMiddleware)
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	app := fiber.New()
	app.Use(JWTMiddleware)
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	token := signTestToken(t, "a-different-secret", "user-1", "brand")
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	app := fiber.New()
	app.Use(JWTMiddleware)
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "NotBearer xyz")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAdminRequired_AllowsAdmin(t *testing.T) {
	app := makeAppWithRole("admin", AdminRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAdminRequired_DeniesNonAdmin(t *testing.T) {
	app := makeAppWithRole("brand", AdminRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestBrandRequired_AllowsBrand(t *testing.T) {
	app := makeAppWithRole("brand", BrandRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestBrandRequired_DeniesNonBrand(t *testing.T) {
	app := makeAppWithRole("admin", BrandRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestDispensaryRequired_AllowsDispensary(t *testing.T) {
	app := makeAppWithRole("dispensary", DispensaryRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestExtractClaims_NoAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		if _, err := ExtractClaims(c); err != nil {
			return c.Status(401).SendString("no claims")
		}
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

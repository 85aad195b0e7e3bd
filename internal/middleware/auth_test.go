package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"pocketledger/internal/config"
	"pocketledger/internal/services"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	jwtConfig    *config.JWTConfig
	tokenService services.TokenServiceInterface
	e            *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.NoError(err)

	s.jwtConfig = &config.JWTConfig{
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "test-issuer",
		AccessTokenDuration: 24 * time.Hour,
	}
	s.tokenService = services.NewTokenService(s.jwtConfig)
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) request(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	middleware := RequireAuth(s.tokenService)
	ownerID := "owner-" + uuid.NewString()

	token, _, err := s.tokenService.GenerateAccessToken(ownerID)
	s.NoError(err)

	// Create a test handler that checks context values
	handler := middleware(func(c echo.Context) error {
		s.Equal(ownerID, c.Get("owner_id"))
		s.NotEmpty(c.Get("token_jti"))
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	c, rec := s.request("Bearer " + token)
	err = handler(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingAuthorizationHeader() {
	middleware := RequireAuth(s.tokenService)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	c, rec := s.request("")
	err := handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_001")
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MalformedHeader() {
	middleware := RequireAuth(s.tokenService)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	c, rec := s.request("Basic not-a-bearer-token")
	err := handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_003")
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ExpiredToken() {
	// Same keys and issuer, negative lifetime
	token, _, err := services.NewTokenService(&config.JWTConfig{
		PrivateKey:          s.jwtConfig.PrivateKey,
		PublicKey:           s.jwtConfig.PublicKey,
		Issuer:              s.jwtConfig.Issuer,
		AccessTokenDuration: -time.Minute,
	}).GenerateAccessToken("owner-1")
	s.NoError(err)

	middleware := RequireAuth(s.tokenService)
	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	c, rec := s.request("Bearer " + token)
	err = handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenFromDifferentKey() {
	foreignPrivate, foreignPublic, err := config.GenerateRSAKeyPair()
	s.NoError(err)

	foreignService := services.NewTokenService(&config.JWTConfig{
		PrivateKey:          foreignPrivate,
		PublicKey:           foreignPublic,
		Issuer:              s.jwtConfig.Issuer,
		AccessTokenDuration: 24 * time.Hour,
	})
	token, _, err := foreignService.GenerateAccessToken("owner-1")
	s.NoError(err)

	middleware := RequireAuth(s.tokenService)
	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	c, rec := s.request("Bearer " + token)
	err = handler(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_003")
}

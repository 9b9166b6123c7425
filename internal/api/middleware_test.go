package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, secret string, userID string, role domain.Role, expiry time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authTestRouter(roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", AuthMiddleware(testSecret))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		userID, role, ok := identity(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": userID.Hex(), "role": role})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	t.Run("valid token passes claims through", func(t *testing.T) {
		router := authTestRouter()
		token := signToken(t, testSecret, userID, domain.RoleCoach, time.Hour)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		w := doRequest(authTestRouter(), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is a bad request", func(t *testing.T) {
		w := doRequest(authTestRouter(), "not-a-jwt")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong signing key is a bad request", func(t *testing.T) {
		token := signToken(t, "some-other-secret", userID, domain.RoleCoach, time.Hour)
		w := doRequest(authTestRouter(), token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("expired token is a bad request", func(t *testing.T) {
		token := signToken(t, testSecret, userID, domain.RoleCoach, -time.Minute)
		w := doRequest(authTestRouter(), token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("token without claims is a bad request", func(t *testing.T) {
		token := signToken(t, testSecret, "", "", time.Hour)
		w := doRequest(authTestRouter(), token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	t.Run("allowed role passes", func(t *testing.T) {
		router := authTestRouter(domain.RoleCoach)
		token := signToken(t, testSecret, userID, domain.RoleCoach, time.Hour)
		assert.Equal(t, http.StatusOK, doRequest(router, token).Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		router := authTestRouter(domain.RoleCoach)
		token := signToken(t, testSecret, userID, domain.RoleAthlete, time.Hour)
		assert.Equal(t, http.StatusForbidden, doRequest(router, token).Code)
	})

	t.Run("multiple allowed roles", func(t *testing.T) {
		router := authTestRouter(domain.RoleCoach, domain.RoleDeveloper)
		token := signToken(t, testSecret, userID, domain.RoleDeveloper, time.Hour)
		assert.Equal(t, http.StatusOK, doRequest(router, token).Code)
	})
}

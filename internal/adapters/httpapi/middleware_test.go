package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corkboard-listing-service/internal/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func newTestRouter(captured *shared.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", ActorMiddleware(testSecret), func(c *gin.Context) {
		*captured = actorFrom(c)
		c.Status(http.StatusOK)
	})
	return engine
}

func TestActorMiddlewareExtractsIdentity(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	var actor shared.Actor
	router := newTestRouter(&actor)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if actor.ID != userID {
		t.Errorf("actor id = %s, want %s", actor.ID, userID)
	}
	if !actor.IsAdmin() {
		t.Error("expected admin role from claim")
	}
}

func TestActorMiddlewareDefaultsToUserRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	var actor shared.Actor
	router := newTestRouter(&actor)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if actor.IsAdmin() {
		t.Error("missing role claim must not grant admin")
	}
}

func TestActorMiddlewareRejectsBadTokens(t *testing.T) {
	var actor shared.Actor
	router := newTestRouter(&actor)

	badSubject := signToken(t, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"bad subject", "Bearer " + badSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

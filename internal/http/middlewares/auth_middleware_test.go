package middlewares_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adityapw/kuitansihub/internal/auth"
	"github.com/adityapw/kuitansihub/internal/config"
	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/http/middlewares"
	"github.com/adityapw/kuitansihub/internal/repo/postgres"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	verifyFn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) Verify(token string) (*auth.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}
	return &auth.Claims{IDUser: 1}, nil
}

type fakeResolver struct {
	getFn func(ctx context.Context, id int64) (user.User, error)
}

func (f *fakeResolver) GetByID(ctx context.Context, id int64) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return user.User{IDUser: id, Role: user.RoleISE}, nil
}

func setupAuthRouter(mw *middlewares.AuthMiddleware, opts middlewares.AuthOptions) *gin.Engine {
	r := gin.New()

	r.GET("/protected", mw.RequireAuth(opts), func(c *gin.Context) {
		identity, _ := middlewares.IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"id_user": identity.IDUser,
			"role":    string(identity.Role),
		})
	})

	return r
}

func devConfig() config.Config {
	return config.Config{DevMode: true, DevToken: "dev-token"}
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		query      string
		opts       middlewares.AuthOptions
		verifier   *fakeVerifier
		resolver   *fakeResolver
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing_token",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token not found",
		},
		{
			name:       "malformed_header",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid Authorization header format. Use 'Bearer <token>'",
		},
		{
			name:       "missing_scheme",
			header:     "abc",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid Authorization header format. Use 'Bearer <token>'",
		},
		{
			name:   "expired_token",
			header: "Bearer expired",
			verifier: &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
				return nil, auth.ErrTokenExpired
			}},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token has expired",
		},
		{
			name:   "invalid_token",
			header: "Bearer garbage",
			verifier: &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
				return nil, auth.ErrTokenInvalid
			}},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid token",
		},
		{
			name:   "deleted_user",
			header: "Bearer valid",
			resolver: &fakeResolver{getFn: func(context.Context, int64) (user.User, error) {
				return user.User{}, postgres.ErrUserNotFound
			}},
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name:   "resolver_error",
			header: "Bearer valid",
			resolver: &fakeResolver{getFn: func(context.Context, int64) (user.User, error) {
				return user.User{}, errors.New("db down")
			}},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Error verifying token",
		},
		{
			name:       "valid_token",
			header:     "Bearer valid",
			wantStatus: http.StatusOK,
		},
		{
			name:       "query_token_allowed",
			query:      "?token=valid",
			opts:       middlewares.AuthOptions{AllowQueryToken: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "query_token_not_allowed",
			query:      "?token=valid",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token not found",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			verifier := tt.verifier
			if verifier == nil {
				verifier = &fakeVerifier{}
			}

			resolver := tt.resolver
			if resolver == nil {
				resolver = &fakeResolver{}
			}

			mw := middlewares.NewAuthMiddleware(verifier, resolver, devConfig())
			r := setupAuthRouter(mw, tt.opts)

			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantMsg != "" {
				var body map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("bad body: %v", err)
				}
				if body["message"] != tt.wantMsg {
					t.Fatalf("message = %v, want %q", body["message"], tt.wantMsg)
				}
			}
		})
	}
}

func TestRequireAuthDevBypass(t *testing.T) {
	verifier := &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
		t.Fatal("verifier must not run for the dev token")
		return nil, nil
	}}

	devIdentity := user.User{IDUser: 1, Nama: "Developer", Role: user.RoleISE}

	mw := middlewares.NewAuthMiddleware(verifier, &fakeResolver{}, devConfig())
	r := setupAuthRouter(mw, middlewares.AuthOptions{DevIdentity: devIdentity})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer dev-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}

	if body["role"] != "ISE" || body["id_user"] != float64(1) {
		t.Fatalf("dev identity not applied: %v", body)
	}
}

func TestRequireAuthDevTokenIgnoredInProd(t *testing.T) {
	verifier := &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
		return nil, auth.ErrTokenInvalid
	}}

	cfg := config.Config{DevMode: false, DevToken: "dev-token"}

	mw := middlewares.NewAuthMiddleware(verifier, &fakeResolver{}, cfg)
	r := setupAuthRouter(mw, middlewares.AuthOptions{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer dev-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("dev token must not bypass auth in production, got %d", w.Code)
	}
}

package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/http/middleware"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

type fakeAuthService struct {
	authenticateFn func(ctx context.Context, raw string) (*model.Principal, error)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, raw string) (*model.Principal, error) {
	return f.authenticateFn(ctx, raw)
}

func (f *fakeAuthService) Logout(context.Context, int64, int64) error {
	return nil
}

var _ = Describe("RequireSession", func() {
	var (
		engine *gin.Engine
		auth   *fakeAuthService
		seen   string
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		seen = ""
		auth = &fakeAuthService{authenticateFn: func(_ context.Context, raw string) (*model.Principal, error) {
			seen = raw
			return &model.Principal{User: &model.User{ID: 7}, SessionID: 9001}, nil
		}}

		engine = gin.New()
		engine.Use(middleware.RequireSession(auth))
		engine.GET("/me", func(c *gin.Context) {
			ctx := c.Request.Context()
			fields := logger.GetLogFields(ctx)
			c.JSON(http.StatusOK, gin.H{
				"user_id":    middleware.GetUser(ctx).ID,
				"session_id": middleware.GetPrincipal(ctx).SessionID,
				"log_user":   *fields.UserID,
			})
		})
	})

	get := func(mutate func(*http.Request)) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if mutate != nil {
			mutate(req)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("stores the principal and tags the log context", func() {
		w := get(func(r *http.Request) { r.Header.Set(middleware.SessionIDHeader, "9001") })

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"user_id": 7, "session_id": 9001, "log_user": 7}`))
		Expect(seen).To(Equal("9001"))
	})

	It("falls back to the session cookie", func() {
		get(func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "42"})
		})

		Expect(seen).To(Equal("42"))
	})

	It("prefers the header over the cookie", func() {
		get(func(r *http.Request) {
			r.Header.Set(middleware.SessionIDHeader, "1")
			r.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "2"})
		})

		Expect(seen).To(Equal("1"))
	})

	DescribeTable("maps authentication failures",
		func(err error, status int, message string) {
			auth.authenticateFn = func(context.Context, string) (*model.Principal, error) {
				return nil, err
			}

			w := get(nil)

			Expect(w.Code).To(Equal(status))
			Expect(w.Body.String()).To(MatchJSON(fmt.Sprintf(`{"error": %q}`, message)))
		},
		Entry("missing session", service.ErrNotAuthenticated, http.StatusUnauthorized, "not authenticated"),
		Entry("expired session", fmt.Errorf("lookup: %w", service.ErrSessionExpired), http.StatusUnauthorized, "session expired"),
		Entry("deleted user", service.ErrUserNotFound, http.StatusUnauthorized, "session expired"),
		Entry("store failure", errors.New("connection reset"), http.StatusInternalServerError, "failed to validate session"),
	)
})

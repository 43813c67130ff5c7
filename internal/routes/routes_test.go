package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Heshmert/P2-31499269/internal/config"
	"github.com/Heshmert/P2-31499269/internal/handlers"
	"github.com/Heshmert/P2-31499269/internal/middleware"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/services"
	"github.com/Heshmert/P2-31499269/internal/validator"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type contactServiceStub struct{}

func (s *contactServiceStub) Submit(ctx context.Context, input services.SubmitContactInput) (*services.SubmitContactResult, error) {
	return nil, errors.New("not implemented")
}

func (s *contactServiceStub) AllContacts() ([]models.Contact, error) { return nil, nil }

func (s *contactServiceStub) MessagesByStatus(status models.MessageStatus) ([]models.Message, error) {
	return nil, nil
}

func (s *contactServiceStub) MessageCountByContact(contactID uint) (int64, error) { return 0, nil }

type paymentServiceStub struct{}

func (s *paymentServiceStub) Process(ctx context.Context, input services.ProcessPaymentInput) (*models.Payment, error) {
	return nil, errors.New("not implemented")
}

func (s *paymentServiceStub) AllPayments() ([]models.Payment, error) { return nil, nil }

type replyServiceStub struct{}

func (s *replyServiceStub) Reply(messageID uint, replyText string) error { return nil }

type authServiceStub struct{}

func (s *authServiceStub) LoginLocal(username, password string) (*models.User, error) {
	return nil, services.ErrInvalidCredentials
}

func (s *authServiceStub) LoginGoogle(profile services.GoogleProfile) (*models.User, error) {
	return nil, services.ErrInvalidCredentials
}

func (s *authServiceStub) Register(username, password string) (*models.User, error) {
	return nil, services.ErrUsernameTaken
}

func (s *authServiceStub) GetByID(id uint) (*models.User, error) {
	return nil, errors.New("no such user")
}

func (s *authServiceStub) SeedAdmin(cfg config.AdminConfig) error { return nil }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	auth := &authServiceStub{}
	r.Use(middleware.CurrentUser(auth))

	base := handlers.NewBaseHandler(validator.New())
	RegisterRoutes(r, &AppHandlers{
		Pages:   handlers.NewPagesHandler(base),
		Contact: handlers.NewContactHandler(base, &contactServiceStub{}, "site-key"),
		Payment: handlers.NewPaymentHandler(base, &paymentServiceStub{}),
		Auth:    handlers.NewAuthHandler(base, auth, &config.Config{}),
		Admin:   handlers.NewAdminHandler(base, &contactServiceStub{}, &paymentServiceStub{}, &replyServiceStub{}),
	})
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestLogoutRequiresSession(t *testing.T) {
	r := newRouter()

	w := get(r, "/logout")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAdminAreaRequiresLogin(t *testing.T) {
	r := newRouter()

	for _, path := range []string{"/admin", "/register"} {
		w := get(r, path)
		assert.Equal(t, http.StatusFound, w.Code, "path %s", path)
		assert.Equal(t, "/login", w.Header().Get("Location"), "path %s", path)
	}
}

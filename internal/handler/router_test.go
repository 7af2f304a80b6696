package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
	"crm-pulse/internal/mocks"
	"crm-pulse/internal/service/activity"
	"crm-pulse/internal/service/auth"
	"crm-pulse/internal/service/customer"
	"crm-pulse/internal/service/dispatch"
)

const testToken = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

type routerEnv struct {
	app          *fiber.App
	sessions     *mocks.SessionService
	notifSvc     *mocks.NotificationService
	userRepo     *mocks.UserRepository
	customerRepo *mocks.CustomerRepository
	activityRepo *mocks.ActivityRepository
}

func newRouterEnv() *routerEnv {
	env := &routerEnv{
		sessions:     new(mocks.SessionService),
		notifSvc:     new(mocks.NotificationService),
		userRepo:     new(mocks.UserRepository),
		customerRepo: new(mocks.CustomerRepository),
		activityRepo: new(mocks.ActivityRepository),
	}

	activitySvc := activity.NewService(env.activityRepo, env.customerRepo)
	dispatcher := dispatch.NewService(activitySvc, env.notifSvc, &mocks.Pusher{}, env.userRepo, nil)

	h := &Handlers{
		Auth:         NewAuthHandler(auth.NewService(env.userRepo, env.sessions, nil)),
		User:         NewUserHandler(nil),
		Notification: NewNotificationHandler(env.notifSvc),
		Customer:     NewCustomerHandler(customer.NewService(env.customerRepo, env.userRepo, dispatcher), activitySvc),
		Task:         NewTaskHandler(nil),
		Lead:         NewLeadHandler(nil),
		Note:         NewNoteHandler(nil),
	}

	env.app = NewApp(AppOptions{})
	RegisterRoutes(env.app, h, env.sessions)
	return env
}

func (env *routerEnv) signIn(role domain.UserRole) *domain.Identity {
	identity := &domain.Identity{UserID: uuid.New(), WorkspaceID: uuid.New(), Role: role}
	env.sessions.On("Authenticate", mock.Anything, testToken).Return(identity, nil)
	return identity
}

func (env *routerEnv) do(t *testing.T, method, path, body string, authed bool) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Code
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newRouterEnv()
	env.sessions.On("Authenticate", mock.Anything, "revoked").Return(nil, nil)

	paths := []string{
		"/api/v1/auth/me",
		"/api/v1/notifications",
		"/api/v1/notifications/unread-count",
		"/api/v1/customers",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp, body := env.do(t, http.MethodGet, path, "", false)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
		})
	}

	t.Run("revoked token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
		req.Header.Set("Authorization", "Bearer revoked")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestNotificationRoutes(t *testing.T) {
	t.Run("unread count", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleViewer)
		env.notifSvc.On("UnreadCount", mock.Anything, me.UserID).Return(int64(3), nil).Once()

		resp, body := env.do(t, http.MethodGet, "/api/v1/notifications/unread-count", "", true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"unread":3}`, string(body))
	})

	t.Run("list passes filters through", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleSales)
		env.notifSvc.On("List", mock.Anything, me.UserID, true, 10).
			Return([]domain.Notification{{ID: uuid.New(), UserID: me.UserID, Type: domain.NotifTaskAssigned}}, nil).Once()

		resp, body := env.do(t, http.MethodGet, "/api/v1/notifications?unread_only=true&limit=10", "", true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var list []domain.Notification
		require.NoError(t, json.Unmarshal(body, &list))
		assert.Len(t, list, 1)
		env.notifSvc.AssertExpectations(t)
	})

	t.Run("non numeric limit", func(t *testing.T) {
		env := newRouterEnv()
		env.signIn(domain.RoleSales)

		resp, _ := env.do(t, http.MethodGet, "/api/v1/notifications?limit=lots", "", true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("mark read of a foreign notification", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleSales)
		id := uuid.New()
		env.notifSvc.On("MarkRead", mock.Anything, me.UserID, id).Return(nil, nil).Once()

		resp, body := env.do(t, http.MethodPut, "/api/v1/notifications/"+id.String()+"/read", "", true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", errorCode(t, body))
	})

	t.Run("mark read with a bad id", func(t *testing.T) {
		env := newRouterEnv()
		env.signIn(domain.RoleSales)

		resp, _ := env.do(t, http.MethodPut, "/api/v1/notifications/not-a-uuid/read", "", true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("mark all read", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleSales)
		env.notifSvc.On("MarkAllRead", mock.Anything, me.UserID).Return(int64(4), nil).Once()

		resp, body := env.do(t, http.MethodPost, "/api/v1/notifications/mark-all-read", "", true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"updated":4}`, string(body))
	})
}

func TestLogout(t *testing.T) {
	t.Run("without a token", func(t *testing.T) {
		env := newRouterEnv()

		resp, _ := env.do(t, http.MethodPost, "/api/v1/auth/logout", "", false)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		env.sessions.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})

	t.Run("revokes the presented token", func(t *testing.T) {
		env := newRouterEnv()
		env.sessions.On("Revoke", mock.Anything, testToken).Return(nil).Once()

		resp, _ := env.do(t, http.MethodPost, "/api/v1/auth/logout", "", true)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		env.sessions.AssertExpectations(t)
	})
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newRouterEnv()
	env.userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil).Once()

	resp, body := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"secret1"}`, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestProfileRoutes(t *testing.T) {
	t.Run("viewer renames themselves", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleViewer)
		env.userRepo.On("UpdateFullName", mock.Anything, me.UserID, "Ana Putri").
			Return(&domain.User{ID: me.UserID, FullName: "Ana Putri", Role: domain.RoleViewer}, nil).Once()

		resp, body := env.do(t, http.MethodPut, "/api/v1/auth/me", `{"full_name":"  Ana Putri "}`, true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var user domain.User
		require.NoError(t, json.Unmarshal(body, &user))
		assert.Equal(t, "Ana Putri", user.FullName)
	})

	t.Run("blank name", func(t *testing.T) {
		env := newRouterEnv()
		env.signIn(domain.RoleSales)

		resp, _ := env.do(t, http.MethodPut, "/api/v1/auth/me", `{"full_name":" "}`, true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		env.userRepo.AssertNotCalled(t, "UpdateFullName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("password change needs the current password", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleSales)
		hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
		require.NoError(t, err)
		env.userRepo.On("GetByID", mock.Anything, me.UserID).
			Return(&domain.User{ID: me.UserID, PasswordHash: string(hash)}, nil)
		env.userRepo.On("UpdatePassword", mock.Anything, me.UserID, mock.Anything).Return(true, nil).Once()

		resp, body := env.do(t, http.MethodPut, "/api/v1/auth/password",
			`{"current_password":"wrong12","new_password":"secret2"}`, true)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

		resp, _ = env.do(t, http.MethodPut, "/api/v1/auth/password",
			`{"current_password":"secret1","new_password":"secret2"}`, true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env.userRepo.AssertNumberOfCalls(t, "UpdatePassword", 1)
	})

	t.Run("password change without a token", func(t *testing.T) {
		env := newRouterEnv()
		resp, _ := env.do(t, http.MethodPut, "/api/v1/auth/password", `{"current_password":"a","new_password":"b"}`, false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCustomerRoutes(t *testing.T) {
	t.Run("viewer cannot write", func(t *testing.T) {
		env := newRouterEnv()
		env.signIn(domain.RoleViewer)

		resp, body := env.do(t, http.MethodPost, "/api/v1/customers", `{"name":"Acme"}`, true)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, body))
		env.customerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create records an activity", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleSales)
		env.customerRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
			return c.WorkspaceID == me.WorkspaceID && c.Name == "Acme"
		})).Return(nil).Once()
		env.activityRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.Type == domain.ActivityCustomerCreated && *a.ActorUserID == me.UserID
		})).Return(nil).Once()

		resp, _ := env.do(t, http.MethodPost, "/api/v1/customers", `{"name":"Acme"}`, true)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		env.activityRepo.AssertExpectations(t)
	})

	t.Run("activities of a customer in another workspace", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleViewer)
		id := uuid.New()
		env.customerRepo.On("GetByID", mock.Anything, me.WorkspaceID, id).Return(nil, nil).Once()

		resp, _ := env.do(t, http.MethodGet, "/api/v1/customers/"+id.String()+"/activities", "", true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("activities newest first with limit", func(t *testing.T) {
		env := newRouterEnv()
		me := env.signIn(domain.RoleViewer)
		id := uuid.New()
		env.customerRepo.On("GetByID", mock.Anything, me.WorkspaceID, id).Return(&domain.Customer{ID: id}, nil).Once()
		env.activityRepo.On("ListByCustomer", mock.Anything, me.WorkspaceID, id, 300).
			Return([]domain.Activity{{ID: uuid.New(), Type: domain.ActivityNoteAdded, Data: json.RawMessage(`{}`)}}, nil).Once()

		resp, _ := env.do(t, http.MethodGet, "/api/v1/customers/"+id.String()+"/activities?limit=999", "", true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env.activityRepo.AssertExpectations(t)
	})
}

func TestHealth(t *testing.T) {
	env := newRouterEnv()

	resp, body := env.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

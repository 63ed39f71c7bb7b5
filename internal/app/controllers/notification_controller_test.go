package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/services"
)

// recordingNotificationStore satisfies the notification store seam and
// records the query arguments the controller hands down.
type recordingNotificationStore struct {
	lastLimit      int
	lastActiveOnly *bool
}

func (s *recordingNotificationStore) Create(context.Context, *models.Notification) error {
	return nil
}

func (s *recordingNotificationStore) ListByUser(_ context.Context, _ int64, _ bool, _ uint64, limit int) ([]*models.Notification, int64, error) {
	s.lastLimit = limit
	return nil, 0, nil
}

func (s *recordingNotificationStore) CountUnread(context.Context, int64) (int64, error) {
	return 0, nil
}

func (s *recordingNotificationStore) MarkRead(context.Context, int64, int64) error { return nil }

func (s *recordingNotificationStore) MarkAllRead(context.Context, int64) (int64, error) {
	return 0, nil
}

func (s *recordingNotificationStore) Delete(context.Context, int64, int64) error { return nil }

func (s *recordingNotificationStore) CreateAnnouncement(context.Context, *models.Announcement) error {
	return nil
}

func (s *recordingNotificationStore) GetAnnouncementByID(context.Context, int64) (*models.Announcement, error) {
	return nil, nil
}

func (s *recordingNotificationStore) ListAnnouncements(_ context.Context, activeOnly bool, _ *string, _ uint64, _ int) ([]*models.Announcement, int64, error) {
	s.lastActiveOnly = &activeOnly
	return nil, 0, nil
}

func (s *recordingNotificationStore) UpdateAnnouncement(context.Context, *models.Announcement) error {
	return nil
}

func (s *recordingNotificationStore) DeleteAnnouncement(context.Context, int64) error { return nil }

// noopUserStore satisfies the user store seam with empty results.
type noopUserStore struct{}

func (noopUserStore) Create(context.Context, *models.User) error { return nil }
func (noopUserStore) GetByID(context.Context, int64) (*models.User, error) {
	return &models.User{ID: 1, IsActive: true}, nil
}
func (noopUserStore) GetByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (noopUserStore) EmailExists(context.Context, string) (bool, error)        { return false, nil }
func (noopUserStore) Update(context.Context, *models.User) error               { return nil }
func (noopUserStore) UpdatePassword(context.Context, int64, string) error      { return nil }
func (noopUserStore) Deactivate(context.Context, int64) error                  { return nil }
func (noopUserStore) ConnectGitHub(context.Context, int64, string, string) error {
	return nil
}
func (noopUserStore) DisconnectGitHub(context.Context, int64) error { return nil }
func (noopUserStore) TouchGitHubSync(context.Context, int64, time.Time) error {
	return nil
}

func setupNotificationRouter(t *testing.T, store *recordingNotificationStore, role models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewNotificationService(store, noopUserStore{}, zerolog.Nop())
	controller := NewNotificationController(svc)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set("userID", int64(7))
		ctx.Set("role", string(role))
	})
	router.GET("/notifications/me", controller.ListMyNotifications)
	router.GET("/announcements", controller.ListAnnouncements)
	return router
}

func TestListMyNotificationsCapsPageSize(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{name: "oversized request is capped", query: "?size=100", wantLimit: 50},
		{name: "small request passes through", query: "?size=30", wantLimit: 30},
		{name: "default size", query: "", wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingNotificationStore{}
			router := setupNotificationRouter(t, store, models.RoleStudent)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/notifications/me"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantLimit, store.lastLimit)
		})
	}
}

func TestListAnnouncementsActiveFilterIsAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		role           models.Role
		query          string
		wantActiveOnly bool
	}{
		{name: "student cannot read inactive announcements", role: models.RoleStudent, query: "?active=false", wantActiveOnly: true},
		{name: "admin may read inactive announcements", role: models.RoleAdmin, query: "?active=false", wantActiveOnly: false},
		{name: "student default", role: models.RoleStudent, query: "", wantActiveOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingNotificationStore{}
			router := setupNotificationRouter(t, store, tt.role)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/announcements"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, store.lastActiveOnly)
			assert.Equal(t, tt.wantActiveOnly, *store.lastActiveOnly)
		})
	}
}

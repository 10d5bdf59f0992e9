package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
)

func createNotification(t *testing.T, app testApp, id, recipient string, ago time.Duration, read bool) notification.Notification {
	n, err := app.notifications.CreateNotification(notification.Notification{
		ID:        id,
		Recipient: recipient,
		Type:      notification.TypeReminder,
		Title:     "Потсетник " + id,
		Priority:  notification.PriorityMedium,
		IsRead:    read,
		CreatedAt: testNow.Add(-ago),
	})
	if err != nil {
		t.Fatalf("createNotification() failed: %v", err)
	}
	return n
}

func TestNotificationAPI(t *testing.T) {
	app := setup(t)
	teacher := createProfile(t, app, "+38975000111", "Петар Петровски", user.RoleTeacher)
	ana := createProfile(t, app, "+38970123456", "Ана Петровска", user.RoleStudent)
	marko := createProfile(t, app, "+38971234567", "Марко Марковски", user.RoleStudent, "en")

	n1 := createNotification(t, app, "1", ana.PhoneNumber, 48*time.Hour, true)
	n2 := createNotification(t, app, "2", ana.PhoneNumber, 2*time.Hour, false)
	n3 := createNotification(t, app, "3", ana.PhoneNumber, 5*time.Minute, false)
	createNotification(t, app, "4", marko.PhoneNumber, time.Hour, false)

	teacherToken := getToken(t, app.conf, teacher)
	anaToken := getToken(t, app.conf, ana)
	markoToken := getToken(t, app.conf, marko)

	n2read := n2
	n2read.IsRead = true

	tests := []httpTest{
		{
			name:     "no token",
			method:   http.MethodGet,
			path:     "/api/v1/notifications",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "inbox",
			method:   http.MethodGet,
			path:     "/api/v1/notifications",
			token:    anaToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, notification.Summary{
				Unread:        2,
				Notifications: []notification.Notification{n3, n2, n1},
			}),
		},
		{
			name:     "empty inbox",
			method:   http.MethodGet,
			path:     "/api/v1/notifications",
			token:    teacherToken,
			wantCode: http.StatusOK,
			wantData: []byte(`{"unread":0,"notifications":[]}`),
		},
		{
			name:     "mark read",
			method:   http.MethodPost,
			path:     "/api/v1/notifications/2/read",
			token:    anaToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, n2read),
		},
		{
			name:     "mark read someone else's",
			method:   http.MethodPost,
			path:     "/api/v1/notifications/4/read",
			token:    anaToken,
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error":"notification not found"}`),
		},
		{
			name:     "mark all read",
			method:   http.MethodPost,
			path:     "/api/v1/notifications/read-all",
			token:    anaToken,
			wantCode: http.StatusOK,
			wantData: []byte(`{"updated":1}`),
		},
		{
			name:     "mark all read again",
			method:   http.MethodPost,
			path:     "/api/v1/notifications/read-all",
			token:    anaToken,
			wantCode: http.StatusOK,
			wantData: []byte(`{"updated":0}`),
		},
		{
			name:     "remove someone else's",
			method:   http.MethodDelete,
			path:     "/api/v1/notifications/4",
			token:    anaToken,
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error":"notification not found"}`),
		},
		{
			name:     "remove",
			method:   http.MethodDelete,
			path:     "/api/v1/notifications/4",
			token:    markoToken,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "remove unknown",
			method:   http.MethodDelete,
			path:     "/api/v1/notifications/4",
			token:    markoToken,
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error":"notification not found"}`),
		},
		{
			name:     "students cannot create",
			method:   http.MethodPost,
			path:     "/api/v1/notifications",
			body:     []byte(`{"recipient":"+389 71 234 567","type":"announcement","title":"Hi"}`),
			token:    anaToken,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "create invalid",
			method:   http.MethodPost,
			path:     "/api/v1/notifications",
			body:     []byte(`{"recipient":"abc","type":"gossip","title":"  "}`),
			token:    teacherToken,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"recipient":"enter a valid phone number",
				"type":"type must be one of [reminder invite announcement schedule]",
				"title":"this field is required"
			}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("create", func(t *testing.T) {
		rec := app.do(httpTest{
			method: http.MethodPost,
			path:   "/api/v1/notifications",
			body:   []byte(`{"recipient":"+389 71 234 567","type":"announcement","title":"Екскурзија","message":"Во петок"}`),
			token:  teacherToken,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var n notification.Notification
		unmarshal(t, rec, &n)
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, marko.PhoneNumber, n.Recipient)
		assert.Equal(t, notification.PriorityMedium, n.Priority)
		assert.False(t, n.IsRead)

		summary, err := notification.NewService(app.notifications).Inbox(marko.PhoneNumber)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Unread)
		assert.Equal(t, n.ID, summary.Notifications[0].ID)
	})
}

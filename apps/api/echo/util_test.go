package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/course"
	"github.com/trezcool/kalendar/core/i18n"
	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
	logsvc "github.com/trezcool/kalendar/services/logger"
	sessionsvc "github.com/trezcool/kalendar/services/session"
	inmemdb "github.com/trezcool/kalendar/storage/database/inmem"
)

var (
	// 10:20 on Tuesday 18 June 2024
	testNow = time.Date(2024, time.June, 18, 10, 20, 0, 0, time.UTC)

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

type testApp struct {
	*Server
	conf          *core.Config
	courses       course.Repository
	events        calendar.Repository
	profiles      user.Repository
	notifications notification.Repository
}

func setup(t *testing.T) testApp {
	conf := core.NewTestConfig()

	db, err := inmemdb.Open()
	require.NoError(t, err)
	app := testApp{
		conf:          conf,
		courses:       inmemdb.NewCourseRepository(db),
		events:        inmemdb.NewEventRepository(db),
		profiles:      inmemdb.NewProfileRepository(db),
		notifications: inmemdb.NewNotificationRepository(db),
	}

	tr, err := i18n.New(conf.Calendar.DefaultLanguage)
	require.NoError(t, err)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	calendar.InitValidators(validate, translator)
	i18n.InitValidators(validate, translator)

	courseSvc := course.NewService(app.courses)
	app.Server = NewServer(ServerDeps{
		Conf:            conf,
		Logger:          logsvc.NewRollbarLogger(log.New(&bytes.Buffer{}, "", 0), conf),
		ProfileSvc:      user.NewService(app.profiles, conf),
		CourseSvc:       courseSvc,
		EventSvc:        calendar.NewService(app.events, courseSvc, conf),
		NotificationSvc: notification.NewService(app.notifications),
		I18n:            tr,
		Sessions:        sessionsvc.NewMemoryStore(),
		Validate:        validate,
		Translator:      translator,
		Now:             func() time.Time { return testNow },
	})
	return app
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (app testApp) do(tt httpTest) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, conf *core.Config, p user.Profile) string {
	token, err := GenerateToken(conf, NewClaims(conf, p))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func createProfile(t *testing.T, app testApp, phone, name, role string, lang ...string) user.Profile {
	p := user.Profile{
		ID:                "p" + phone,
		PhoneNumber:       phone,
		Name:              name,
		Role:              role,
		Subjects:          []string{},
		PreferredLanguage: "mk",
		CreatedAt:         testNow.Add(-time.Hour),
		UpdatedAt:         testNow.Add(-time.Hour),
	}
	if len(lang) > 0 {
		p.PreferredLanguage = lang[0]
	}
	p, err := app.profiles.CreateProfile(p)
	if err != nil {
		t.Fatalf("createProfile() failed: %v", err)
	}
	return p
}

func createCourse(t *testing.T, app testApp, id, name, color string, students ...string) course.Course {
	if students == nil {
		students = []string{}
	}
	c, err := app.courses.CreateCourse(course.Course{
		ID:        id,
		Name:      name,
		Color:     color,
		Students:  students,
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return c
}

func createEvent(t *testing.T, app testApp, id string, c course.Course, at time.Time, kind ...calendar.Kind) calendar.Event {
	e := calendar.Event{
		ID:       id,
		Title:    c.Name,
		Date:     at,
		Color:    c.Color,
		CourseID: c.ID,
		Kind:     calendar.KindClass,
		Duration: calendar.DefaultDuration,
	}
	if len(kind) > 0 {
		e.Kind = kind[0]
	}
	e, err := app.events.CreateEvent(e)
	if err != nil {
		t.Fatalf("createEvent() failed: %v", err)
	}
	return e
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func unmarshal(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshal() failed: %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

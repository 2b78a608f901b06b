package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bariskaantoprak-ui/ITSO/internal/auth"
	"github.com/bariskaantoprak-ui/ITSO/internal/model"
	"github.com/bariskaantoprak-ui/ITSO/internal/repository"
	"github.com/bariskaantoprak-ui/ITSO/internal/service"
)

type stubAssistant struct {
	title, notes, prompt string
}

func (s *stubAssistant) GenerateDescription(_ context.Context, title, notes string) string {
	s.title, s.notes = title, notes
	return "Taslak açıklama"
}

func (s *stubAssistant) GenerateImage(_ context.Context, prompt string) string {
	s.prompt = prompt
	return "data:image/png;base64,AAAA"
}

type testEnv struct {
	router http.Handler
	token  string
	ai     *stubAssistant
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewMemoryStore([]model.Event{
		{ID: "e1", Title: "Dijital Pazarlama ve E-İhracat", Date: "2024-06-25", Category: model.CategoryTraining,
			DetailedContent: "Birinci satır\nikinci satır", Capacity: 2},
		{ID: "e2", Title: "Fuar Hazırlığı", Date: "2024-06-05", Category: model.CategoryActivity, Capacity: 10},
	})
	companies := repository.NewCompanyDirectory([]model.Company{{ID: "1", Name: "ASAŞ"}})
	svc := service.NewEventService(store, store, companies, 50)

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	a, err := auth.NewAuthenticator("admin@itso.org.tr", hash, "test-secret", time.Hour)
	require.NoError(t, err)
	token, _, err := a.Issue()
	require.NoError(t, err)

	ist, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	ai := &stubAssistant{}
	return &testEnv{
		router: NewRouter(Deps{Service: svc, Auth: a, Assistant: ai, Location: ist}),
		token:  token,
		ai:     ai,
	}
}

func (e *testEnv) do(method, path, body string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListEventsCalendarView(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/events?view=calendar&year=2024&month=6", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[CatalogueResponse](t, rec)
	assert.Equal(t, "calendar", string(resp.Mode))
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 6, resp.Month)
	assert.Equal(t, MonthRef{Year: 2024, Month: 5}, resp.Prev)
	assert.Equal(t, MonthRef{Year: 2024, Month: 7}, resp.Next)
	require.NotNil(t, resp.Layout)
	assert.Equal(t, 5, resp.Layout.LeadingBlanks)
	assert.Len(t, resp.Grid, 35)
	assert.Len(t, resp.Grid[29].Events, 1, "June 25 carries e1")
}

func TestListEventsMonthWrapsAndDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/events?year=2024&month=13", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[CatalogueResponse](t, rec)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 1, resp.Month)
	assert.Equal(t, "list", string(resp.Mode))
	assert.Nil(t, resp.Grid)
	assert.Len(t, append(resp.Upcoming, resp.Past...), 2)

	rec = env.do(http.MethodGet, "/events?month=abc", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = env.do(http.MethodGet, "/events?year=0", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEventsSearch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/events?q=D%C4%B0J%C4%B0TAL", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[CatalogueResponse](t, rec)
	all := append(resp.Upcoming, resp.Past...)
	require.Len(t, all, 1)
	assert.Equal(t, "e1", all[0].ID)
	assert.Equal(t, "DİJİTAL", resp.Query)
}

func TestGetEvent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/events/e1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[EventDetail](t, rec)
	assert.Equal(t, "e1", detail.ID)
	assert.Contains(t, detail.ContentHTML, "Birinci satır<br>")
	assert.Equal(t, 2, detail.Remaining)
	assert.Equal(t, model.DetailTabs(false), detail.Tabs)

	rec = env.do(http.MethodGet, "/events/e1", "", true)
	detail = decode[EventDetail](t, rec)
	assert.Contains(t, detail.Tabs, model.TabParticipants)

	rec = env.do(http.MethodGet, "/events/nope", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	body := `{"title":"Yeni Eğitim","date":"2024-09-10","type":"Eğitim","detailed_content":"İçerik"}`

	rec := env.do(http.MethodPost, "/events", body, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/events", body, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Event](t, rec)
	assert.Equal(t, "Yeni Eğitim", created.Title)
	assert.Equal(t, 50, created.Capacity)

	rec = env.do(http.MethodGet, "/events", "", false)
	resp := decode[CatalogueResponse](t, rec)
	assert.Len(t, append(resp.Upcoming, resp.Past...), 3)
}

func TestCreateEventValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/events", `{"title":"","date":"bad","type":"Konser"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "title")
	assert.Contains(t, resp.Fields, "date")
	assert.Contains(t, resp.Fields, "type")

	rec = env.do(http.MethodPost, "/events", `{"unknown":1}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterAndExport(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/events/e1/registrations.csv", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code, "empty list has nothing to export")

	for i := 0; i < 3; i++ {
		rec = env.do(http.MethodPost, "/events/e1/register",
			`{"full_name":"Ayşe Yılmaz","company_name":"ASAŞ","email":"Ayse@ASAS.com"}`, false)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	reg := decode[model.Registration](t, rec)
	assert.Equal(t, "ayse@asas.com", reg.Email)

	rec = env.do(http.MethodGet, "/events/e1", "", false)
	detail := decode[EventDetail](t, rec)
	assert.Equal(t, 3, detail.RegisteredCount)
	assert.True(t, detail.IsFull)
	assert.Equal(t, -1, detail.Remaining)

	rec = env.do(http.MethodGet, "/events/e1/registrations", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/events/e1/registrations", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Registration](t, rec), 3)

	rec = env.do(http.MethodGet, "/events/e2/registrations", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = env.do(http.MethodGet, "/events/e1/registrations.csv", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="Dijital_Pazarlama_ve_E__hracat_katilimcilar.csv"`)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\uFEFFAd Soyad,Firma Adı,E-posta,Durum\n"))
	assert.Equal(t, 3, strings.Count(rec.Body.String(), `"Onaylandı"`))
}

func TestRegisterErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/events/nope/register",
		`{"full_name":"A","company_name":"B","email":"a@b.co"}`, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/events/e1/register",
		`{"full_name":"A","company_name":"B","email":"nope"}`, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[model.ErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "email")

	rec = env.do(http.MethodGet, "/events/nope/registrations", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendarFeed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/events.ics", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "BEGIN:VEVENT"))
}

func TestCompanies(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/companies", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Company](t, rec), 1)

	rec = env.do(http.MethodGet, "/companies/1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ASAŞ", decode[model.Company](t, rec).Name)

	rec = env.do(http.MethodGet, "/companies/99", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/admin/login", `{"email":"admin@itso.org.tr","password":"s3cret"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.LoginResponse](t, rec)
	assert.NotEmpty(t, resp.Token)

	env.token = resp.Token
	rec = env.do(http.MethodGet, "/events/e1/registrations", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/admin/login", `{"email":"admin@itso.org.tr","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAssist(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/assist/description", `{"title":"T","notes":"N"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/assist/description", `{"title":"Fuar","notes":"stand, lojistik"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Taslak açıklama", decode[model.DescriptionResponse](t, rec).Text)
	assert.Equal(t, "Fuar", env.ai.title)
	assert.Equal(t, "stand, lojistik", env.ai.notes)

	rec = env.do(http.MethodPost, "/assist/image", `{"prompt":"ihracat"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data:image/png;base64,AAAA", decode[model.ImageResponse](t, rec).Image)

	rec = env.do(http.MethodPost, "/assist/image", `{"prompt":""}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodOptions, "/events", "", false)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

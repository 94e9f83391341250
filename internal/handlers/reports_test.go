package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/car2chain/inspection-api/internal/auth"
	"github.com/car2chain/inspection-api/internal/db"
	"github.com/car2chain/inspection-api/internal/inspection"
	"github.com/car2chain/inspection-api/internal/middleware"
	"github.com/car2chain/inspection-api/internal/models"
	"github.com/car2chain/inspection-api/internal/reports"
)

// In-memory collections for exercising the full stack over httptest.

type memReportCollection struct {
	docs map[string]models.Report
}

func (m *memReportCollection) InsertReport(_ context.Context, report models.Report) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	report.ID = id
	m.docs[id.Hex()] = report
	return id, nil
}

func (m *memReportCollection) FindReportByID(_ context.Context, id string) (*models.Report, error) {
	report, ok := m.docs[id]
	if !ok {
		return nil, db.ErrNoDocument
	}
	return &report, nil
}

func (m *memReportCollection) FindReports(_ context.Context) ([]models.Report, error) {
	out := make([]models.Report, 0, len(m.docs))
	for _, r := range m.docs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memReportCollection) UpdateReportByID(_ context.Context, id string, report models.Report) error {
	if _, ok := m.docs[id]; !ok {
		return db.ErrNoDocument
	}
	m.docs[id] = report
	return nil
}

func (m *memReportCollection) DeleteReportByID(_ context.Context, id string) (*models.Report, error) {
	report, ok := m.docs[id]
	if !ok {
		return nil, db.ErrNoDocument
	}
	delete(m.docs, id)
	return &report, nil
}

type memShareCollection struct {
	links map[string]models.ShareLink
}

func (m *memShareCollection) InsertShareLink(_ context.Context, link models.ShareLink) error {
	m.links[link.Token] = link
	return nil
}

func (m *memShareCollection) FindShareLinkByToken(_ context.Context, token string) (*models.ShareLink, error) {
	link, ok := m.links[token]
	if !ok {
		return nil, db.ErrNoDocument
	}
	return &link, nil
}

type memUserCollection struct {
	users map[string]models.User // keyed by username
}

func (m *memUserCollection) InsertUser(_ context.Context, user models.User) error {
	m.users[user.Username] = user
	return nil
}

func (m *memUserCollection) FindUserByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range m.users {
		if user.ID.Hex() == id {
			u := user
			return &u, nil
		}
	}
	return nil, db.ErrNoDocument
}

func (m *memUserCollection) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, db.ErrNoDocument
	}
	return &user, nil
}

func (m *memUserCollection) UpdateUser(_ context.Context, id string, user models.User) error {
	for name, existing := range m.users {
		if existing.ID.Hex() == id {
			user.ID = existing.ID
			m.users[name] = user
			return nil
		}
	}
	return db.ErrNoDocument
}

func (m *memUserCollection) UpdateLastLogin(_ context.Context, id string) error {
	return nil
}

type testEnv struct {
	server  *httptest.Server
	service *reports.Service
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	authService, err := auth.NewService()
	require.NoError(t, err)

	users := &memUserCollection{users: make(map[string]models.User)}
	hash, err := authService.HashPassword("carchain123")
	require.NoError(t, err)
	admin := models.User{
		ID:           primitive.NewObjectID(),
		Username:     "carchainadmin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	require.NoError(t, users.InsertUser(context.Background(), admin))

	service := reports.NewService(
		&memReportCollection{docs: make(map[string]models.Report)},
		&memShareCollection{links: make(map[string]models.ShareLink)},
		nil,
	)

	router := NewRouter(
		NewReportHandler(service),
		NewAuthHandler(authService, users),
		NewHealthHandler(nil),
		middleware.NewAuthMiddleware(authService),
		nil,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	token, err := authService.GenerateToken(&admin)
	require.NoError(t, err)

	return &testEnv{server: server, service: service, token: token}
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, authed bool) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, env.server.URL+path, reader)
	require.NoError(t, err)
	if authed {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func validReportBody() map[string]interface{} {
	return map[string]interface{}{
		"customerName":   "Ahmed Khan",
		"make":           "Toyota",
		"model":          "Corolla",
		"year":           2019,
		"registrationNo": "LEB-1234",
		"chassisNo":      "NZE1410098765",
		"engineNo":       "1NZ7765432",
		"location":       "Lahore",
		"inspectionDate": "2024-05-20T00:00:00Z",
		"inspector":      "M. Riaz",
		"inspectionResults": map[string]map[string]string{
			"engine": {
				"Engine Oil":   "Good",
				"Air Filter":   "Clean",
				"Engine Sound": "Normal",
			},
		},
	}
}

func TestCreateReport_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/reports", validReportBody(), false)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateReport(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/reports", validReportBody(), true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var report models.Report
	decodeJSON(t, resp, &report)
	assert.Equal(t, "Ahmed Khan", report.CustomerName)
	assert.Equal(t, 10.0, report.OverallRating)
	assert.Equal(t, models.StatusPending, report.Status)
	assert.False(t, report.ID.IsZero())
}

func TestCreateReport_ValidationBody(t *testing.T) {
	env := newTestEnv(t)

	body := validReportBody()
	delete(body, "customerName")
	delete(body, "make")

	resp := env.request(t, http.MethodPost, "/api/reports", body, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody struct {
		Message       string   `json:"message"`
		MissingFields []string `json:"missingFields"`
	}
	decodeJSON(t, resp, &errBody)
	assert.Contains(t, errBody.MissingFields, "customerName")
	assert.Contains(t, errBody.MissingFields, "make")
}

func TestGetReport_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/reports/"+primitive.NewObjectID().Hex(), nil, true)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateReport_RecomputesRating(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/reports", validReportBody(), true)
	var created models.Report
	decodeJSON(t, resp, &created)

	update := map[string]interface{}{
		"inspectionResults": map[string]map[string]string{
			"engine": {"Engine Oil": "Good"},
			"brakes": {
				"Front Brake Pads": "Good",
				"Handbrake":        "Not Working",
			},
		},
	}
	resp = env.request(t, http.MethodPut, "/api/reports/"+created.ID.Hex(), update, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Report
	decodeJSON(t, resp, &updated)
	assert.Equal(t, 7.0, updated.OverallRating)
}

func TestDeleteReport(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/reports", validReportBody(), true)
	var created models.Report
	decodeJSON(t, resp, &created)

	resp = env.request(t, http.MethodDelete, "/api/reports/"+created.ID.Hex(), nil, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message       string `json:"message"`
		DeletedReport string `json:"deletedReport"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, created.ID.Hex(), body.DeletedReport)

	resp = env.request(t, http.MethodGet, "/api/reports/"+created.ID.Hex(), nil, true)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShareFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/reports", validReportBody(), true)
	var created models.Report
	decodeJSON(t, resp, &created)

	resp = env.request(t, http.MethodPost, "/api/reports/"+created.ID.Hex()+"/share", nil, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var share struct {
		ShareToken string    `json:"shareToken"`
		ExpiresAt  time.Time `json:"expiresAt"`
	}
	decodeJSON(t, resp, &share)
	assert.NotEmpty(t, share.ShareToken)
	assert.True(t, share.ExpiresAt.After(time.Now()))

	// The public read requires no token.
	resp = env.request(t, http.MethodGet, "/api/public/reports/"+share.ShareToken, nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var public models.Report
	decodeJSON(t, resp, &public)
	assert.Equal(t, created.ID, public.ID)
}

func TestPublicReport_ByReportID(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/reports", validReportBody(), true)
	var created models.Report
	decodeJSON(t, resp, &created)

	// The raw report id resolves on the public route without a share link
	// and without a bearer token.
	resp = env.request(t, http.MethodGet, "/api/public/reports/"+created.ID.Hex(), nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var public models.Report
	decodeJSON(t, resp, &public)
	assert.Equal(t, created.ID, public.ID)
}

func TestPublicReport_UnknownToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/public/reports/share_unknown", nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Report not available", body.Message)
}

func TestInspectionSchema_Public(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/inspection/schema", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []string                       `json:"categories"`
		Schema     map[string]map[string][]string `json:"schema"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, inspection.Categories, body.Categories)
	assert.Len(t, body.Schema, 9)
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Username: "carchainadmin",
		Password: "carchain123",
	}, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var login models.LoginResponse
	decodeJSON(t, resp, &login)
	assert.True(t, login.Success)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "carchainadmin", login.User.Username)

	// The issued token works against a protected endpoint.
	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/auth/verify", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	verifyResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer verifyResp.Body.Close()
	assert.Equal(t, http.StatusOK, verifyResp.StatusCode)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Username: "carchainadmin",
		Password: "wrong",
	}, false)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealth_Public(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/health", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status         string `json:"status"`
		MongoConnected bool   `json:"mongoConnected"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "OK", body.Status)
	assert.False(t, body.MongoConnected)
}

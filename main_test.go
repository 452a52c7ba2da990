package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offroad_server_go/auth"
	"offroad_server_go/config"
	"offroad_server_go/controllers"
	"offroad_server_go/data"
	"offroad_server_go/models"
)

// newTestRouter поднимает полный маршрутизатор поверх пустого временного хранилища.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	require.NoError(t, data.InitStore(t.TempDir(), ""))

	cfg := config.Config{UploadsDir: t.TempDir()}
	controllers.Configure(cfg)
	return NewRouter(cfg)
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := auth.GenerateToken(models.User{ID: "1", Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	return token
}

func editorToken(t *testing.T) string {
	t.Helper()
	token, _, err := auth.GenerateToken(models.User{ID: "2", Username: "editor", Role: models.RoleEditor})
	require.NoError(t, err)
	return token
}

// multipartUpsert собирает multipart-форму с полем data, как ее шлет админка.
func multipartUpsert(t *testing.T, router *mux.Router, path, token, dataField string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("data", dataField))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSetupAndLoginScenario(t *testing.T) {
	router := newTestRouter(t)

	// До настройки система не инициализирована.
	rr := doJSON(t, router, http.MethodGet, "/api/auth/setup-status", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var status models.SetupStatusResponse
	decodeBody(t, rr, &status)
	assert.False(t, status.Initialized)

	rr = doJSON(t, router, http.MethodPost, "/api/auth/setup", "", models.SetupRequest{Username: "admin", Password: "pw123", Name: "Admin"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/auth/setup-status", "", nil)
	decodeBody(t, rr, &status)
	assert.True(t, status.Initialized)

	// Повторная настройка запрещена.
	rr = doJSON(t, router, http.MethodPost, "/api/auth/setup", "", models.SetupRequest{Username: "admin2", Password: "pw", Name: "X"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Вход с верным паролем.
	rr = doJSON(t, router, http.MethodPost, "/api/login", "", models.LoginRequest{Username: "admin", Password: "pw123"})
	require.Equal(t, http.StatusOK, rr.Code)
	var authResp models.AuthResponse
	decodeBody(t, rr, &authResp)
	assert.NotEmpty(t, authResp.Token)
	assert.Equal(t, "admin", authResp.User.Username)
	assert.Empty(t, authResp.User.Password)

	// Вход с неверным паролем.
	rr = doJSON(t, router, http.MethodPost, "/api/login", "", models.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEntityCRUDFlow(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t)

	rr := multipartUpsert(t, router, "/api/drivers", token, `{"name":"Test Driver","category":"UTV","points":10,"car":"Jeep"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var upsertResp struct {
		Success bool          `json:"success"`
		Item    models.Record `json:"item"`
	}
	decodeBody(t, rr, &upsertResp)
	assert.True(t, upsertResp.Success)
	id, _ := upsertResp.Item["id"].(string)
	require.NotEmpty(t, id)

	rr = doJSON(t, router, http.MethodGet, "/api/drivers", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var drivers []models.Record
	decodeBody(t, rr, &drivers)
	require.Len(t, drivers, 1)
	assert.Equal(t, "Test Driver", drivers[0]["name"])
	assert.Equal(t, id, drivers[0]["id"])

	// Обновление по id: слияние поверх существующей записи.
	rr = multipartUpsert(t, router, "/api/drivers", token, `{"id":"`+id+`","points":25}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/drivers", "", nil)
	decodeBody(t, rr, &drivers)
	require.Len(t, drivers, 1)
	assert.Equal(t, float64(25), drivers[0]["points"])
	assert.Equal(t, "Jeep", drivers[0]["car"])

	// Удаление, затем повторное удаление — оба успешны.
	rr = doJSON(t, router, http.MethodDelete, "/api/drivers/"+id, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, router, http.MethodDelete, "/api/drivers/"+id, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/drivers", "", nil)
	decodeBody(t, rr, &drivers)
	assert.Empty(t, drivers)
}

func TestWritesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	// Без токена — 401, коллекция не меняется.
	rr := multipartUpsert(t, router, "/api/news", "", `{"title":"X"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, router, http.MethodDelete, "/api/news/123", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/settings", "", models.Record{"siteTitle": "X"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Мусорный токен — 403.
	rr = multipartUpsert(t, router, "/api/news", "garbage", `{"title":"X"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/news", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var news []models.Record
	decodeBody(t, rr, &news)
	assert.Empty(t, news)
}

func TestUpsertRejectsMalformedPayload(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t)

	rr := multipartUpsert(t, router, "/api/news", token, `{не json`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var errResp map[string]string
	decodeBody(t, rr, &errResp)
	assert.Equal(t, "Invalid JSON", errResp["error"])

	// null — валидный JSON, но не объект записи; тоже 400.
	rr = multipartUpsert(t, router, "/api/news", token, `null`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	decodeBody(t, rr, &errResp)
	assert.Equal(t, "Invalid JSON", errResp["error"])

	// То же для чистого JSON-тела без multipart.
	rr = doJSON(t, router, http.MethodPost, "/api/news", token, json.RawMessage("null"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Невалидная запись (категория вне перечня) — тоже 400, без записи на диск.
	rr = multipartUpsert(t, router, "/api/drivers", token, `{"name":"X","category":"TRACTOR"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/drivers", "", nil)
	var drivers []models.Record
	decodeBody(t, rr, &drivers)
	assert.Empty(t, drivers)
}

func TestUnknownEntity(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/spaceships", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = multipartUpsert(t, router, "/api/spaceships", adminToken(t), `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSettingsOverwriteDropsAbsentFields(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t)

	full := models.Record{"siteTitle": "Offroad Club", "marqueeText": "Next race soon"}
	rr := doJSON(t, router, http.MethodPost, "/api/settings", token, full)
	require.Equal(t, http.StatusOK, rr.Code)

	// Клиент с устаревшим снимком присылает объект без marqueeText.
	partial := models.Record{"siteTitle": "Offroad Club"}
	rr = doJSON(t, router, http.MethodPost, "/api/settings", token, partial)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var settings models.Record
	decodeBody(t, rr, &settings)
	assert.Equal(t, "Offroad Club", settings["siteTitle"])
	_, present := settings["marqueeText"]
	assert.False(t, present, "замена настроек должна стирать неприсланные поля")
}

func TestUserManagementRequiresAdminRole(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/users", editorToken(t), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/users", adminToken(t), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	router := newTestRouter(t)

	// adminToken выдает токен с UserID "1".
	rr := doJSON(t, router, http.MethodDelete, "/api/users/1", adminToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteUploadedFileRejectsTraversal(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t)

	rr := doJSON(t, router, http.MethodDelete, "/api/files/..users.json", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestContactRequiresConfiguredSMTP(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/contact", "", models.ContactRequest{
		Name: "Elvin", Email: "e@example.com", Message: "Salam",
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	decodeBody(t, rr, &resp)
	assert.Equal(t, "ok", resp["status"])
}

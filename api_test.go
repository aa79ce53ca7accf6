package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shangour/URmine149/briefing"
	"github.com/shangour/URmine149/config"
	"github.com/shangour/URmine149/constants"
	"github.com/shangour/URmine149/controllers"
	"github.com/shangour/URmine149/lifecycle"
	"github.com/shangour/URmine149/models"
	"github.com/shangour/URmine149/routes"
	"github.com/shangour/URmine149/seed"
	"github.com/shangour/URmine149/utils"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine

	manager models.User
	vivek   models.User // owns task-1
	priya   models.User // owns task-2

	aiServer *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		DBDriver: "sqlite",
		DSN:      filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := config.ConnectDB(cfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })

	if err := db.AutoMigrate(
		&models.Employee{}, &models.Task{}, &models.Activity{},
		&models.Blocker{}, &models.Screenshot{}, &models.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := lifecycle.NewEngine(db, logger)
	if err := engine.ResetToSampleData(context.Background(), seed.Sample()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	aiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"### Top Priorities\n\nUnblock task-2."}]}}]}`))
	}))
	t.Cleanup(aiServer.Close)

	provider := briefing.NewGeminiProviderWithClient("gemini-2.5-flash", "test-key", aiServer.URL, aiServer.Client())
	briefer := briefing.NewService(provider, logger, 5*time.Second)

	router := routes.SetupRouter(db, engine, briefer, []byte(testSecret))

	emp1 := "emp-1"
	emp2 := "emp-2"
	manager := models.User{Username: "shan", Name: "Shan", Role: constants.RoleManager}
	vivek := models.User{Username: "vivek", Name: "Vivek", Role: constants.RoleEmployee, EmployeeID: &emp1}
	priya := models.User{Username: "priya", Name: "Priya", Role: constants.RoleEmployee, EmployeeID: &emp2}

	for _, u := range []*models.User{&manager, &vivek, &priya} {
		h, err := utils.HashPassword("pass1234")
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		u.Password = h
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user %s: %v", u.Username, err)
		}
	}

	return &testEnv{
		router:   router,
		manager:  manager,
		vivek:    vivek,
		priya:    priya,
		aiServer: aiServer,
	}
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearerFor(t *testing.T, u models.User) map[string]string {
	t.Helper()
	tok, err := utils.GenerateJWT(u, []byte(testSecret))
	if err != nil {
		t.Fatalf("generate jwt: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + tok}
}

func getTaskJSON(t *testing.T, env *testEnv, id string, auth map[string]string) models.Task {
	t.Helper()
	w := doRequest(t, env.router, http.MethodGet, "/tasks/"+id, nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /tasks/%s status=%d body=%s", id, w.Code, w.Body.String())
	}
	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("unmarshal task: %v", err)
	}
	return task
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	regBody := map[string]any{
		"username":   "sunita",
		"name":       "Sunita",
		"password":   "pass1234",
		"role":       "employee",
		"employeeId": "emp-4",
	}
	w := doRequest(t, env.router, http.MethodPost, "/register", regBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register status=%d body=%s", w.Code, w.Body.String())
	}

	loginBody := map[string]any{"username": "sunita", "password": "pass1234"}
	w = doRequest(t, env.router, http.MethodPost, "/login", loginBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal login resp: %v", err)
	}
	if resp["token"] == nil || resp["token"] == "" {
		t.Fatalf("expected token in response: %v", resp)
	}

	// Unauthenticated reads are rejected.
	w = doRequest(t, env.router, http.MethodGet, "/tasks", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /tasks without token expected 401 got=%d", w.Code)
	}
}

func TestAuth_RejectsForeignSigningMethod(t *testing.T) {
	env := setupTestEnv(t)

	claims := jwt.MapClaims{
		"user_id":  env.manager.ID,
		"username": env.manager.Username,
		"role":     env.manager.Role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}

	// Same secret, wrong algorithm.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	w := doRequest(t, env.router, http.MethodGet, "/tasks", nil,
		map[string]string{"Authorization": "Bearer " + tok})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("HS512 token expected 401 got=%d body=%s", w.Code, w.Body.String())
	}

	// Unsigned token.
	tok, err = jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}
	w = doRequest(t, env.router, http.MethodGet, "/tasks", nil,
		map[string]string{"Authorization": "Bearer " + tok})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unsigned token expected 401 got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestStatusUpdate_Flow(t *testing.T) {
	env := setupTestEnv(t)

	update := map[string]any{
		"progressPercentage": 60,
		"activityText":       "Summary panel wired up.",
		"screenshotData":     "data:image/png;base64,aaaa",
	}

	// Priya does not own task-1.
	w := doRequest(t, env.router, http.MethodPost, "/tasks/task-1/status-update", update, bearerFor(t, env.priya))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status-update on foreign task expected 403 got=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodPost, "/tasks/task-1/status-update", update, bearerFor(t, env.vivek))
	if w.Code != http.StatusOK {
		t.Fatalf("status-update status=%d body=%s", w.Code, w.Body.String())
	}

	task := getTaskJSON(t, env, "task-1", bearerFor(t, env.vivek))
	if task.ProgressPercentage != 60 {
		t.Fatalf("expected progress 60, got %d", task.ProgressPercentage)
	}
	if task.Status != constants.TaskStatusInProgress {
		t.Fatalf("status update must not change status, got %q", task.Status)
	}

	// A missing screenshot is rejected by the schema check.
	bad := map[string]any{"progressPercentage": 70, "activityText": "no proof"}
	w = doRequest(t, env.router, http.MethodPost, "/tasks/task-1/status-update", bad, bearerFor(t, env.vivek))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status-update without screenshot expected 400 got=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodPost, "/tasks/task-404/status-update", update, bearerFor(t, env.manager))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status-update on missing task expected 404 got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestBlockerReport_Scenario(t *testing.T) {
	env := setupTestEnv(t)

	report := map[string]any{
		"title":          "Invalid API credentials",
		"description":    "The key returns 401 on every request.",
		"severity":       "High",
		"screenshotData": "data:image/png;base64,bbbb",
	}
	w := doRequest(t, env.router, http.MethodPost, "/tasks/task-2/blocker-report", report, bearerFor(t, env.priya))
	if w.Code != http.StatusOK {
		t.Fatalf("blocker-report status=%d body=%s", w.Code, w.Body.String())
	}

	task := getTaskJSON(t, env, "task-2", bearerFor(t, env.priya))
	if task.Status != constants.TaskStatusBlocked {
		t.Fatalf("expected Blocked, got %q", task.Status)
	}
	if task.ProgressPercentage != 20 {
		t.Fatalf("blocker report must not touch progress, got %d", task.ProgressPercentage)
	}

	w = doRequest(t, env.router, http.MethodGet, "/blockers", nil, bearerFor(t, env.manager))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /blockers status=%d body=%s", w.Code, w.Body.String())
	}
	var blockers []models.Blocker
	if err := json.Unmarshal(w.Body.Bytes(), &blockers); err != nil {
		t.Fatalf("unmarshal blockers: %v", err)
	}
	found := false
	for _, b := range blockers {
		if b.TaskID == "task-2" && b.Title == "Invalid API credentials" && b.Severity == "High" &&
			b.Status == constants.BlockerStatusOpen && b.ScreenshotID != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected new open High blocker for task-2 in %s", w.Body.String())
	}

	// Reporting a second blocker while already Blocked is an illegal
	// transition.
	w = doRequest(t, env.router, http.MethodPost, "/tasks/task-2/blocker-report", report, bearerFor(t, env.priya))
	if w.Code != http.StatusConflict {
		t.Fatalf("second blocker-report expected 409 got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestSubmitAndReview_Scenario(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router, http.MethodPost, "/tasks/task-3/submit", nil, bearerFor(t, env.manager))
	if w.Code != http.StatusOK {
		t.Fatalf("submit status=%d body=%s", w.Code, w.Body.String())
	}

	task := getTaskJSON(t, env, "task-3", bearerFor(t, env.manager))
	if task.Status != constants.TaskStatusUnderReview {
		t.Fatalf("expected Under Review, got %q", task.Status)
	}
	if task.ProgressPercentage != 100 {
		t.Fatalf("expected progress 100, got %d", task.ProgressPercentage)
	}

	// Approval is manager-only.
	w = doRequest(t, env.router, http.MethodPost, "/tasks/task-3/approve", nil, bearerFor(t, env.vivek))
	if w.Code != http.StatusForbidden {
		t.Fatalf("approve as employee expected 403 got=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodPost, "/tasks/task-3/approve", nil, bearerFor(t, env.manager))
	if w.Code != http.StatusOK {
		t.Fatalf("approve status=%d body=%s", w.Code, w.Body.String())
	}
	task = getTaskJSON(t, env, "task-3", bearerFor(t, env.manager))
	if task.Status != constants.TaskStatusCompleted {
		t.Fatalf("expected Completed, got %q", task.Status)
	}

	// Submitting an already reviewed task is a conflict.
	w = doRequest(t, env.router, http.MethodPost, "/tasks/task-3/submit", nil, bearerFor(t, env.manager))
	if w.Code != http.StatusConflict {
		t.Fatalf("re-submit expected 409 got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateTask(t *testing.T) {
	env := setupTestEnv(t)

	create := map[string]any{
		"ownerId":     "emp-4",
		"code":        "12/10/25 Onboarding Flow",
		"description": "Build the self-serve onboarding wizard.",
	}

	// Employees cannot create tasks.
	w := doRequest(t, env.router, http.MethodPost, "/tasks", create, bearerFor(t, env.vivek))
	if w.Code != http.StatusForbidden {
		t.Fatalf("POST /tasks as employee expected 403 got=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodPost, "/tasks", create, bearerFor(t, env.manager))
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /tasks status=%d body=%s", w.Code, w.Body.String())
	}
	var created models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created task: %v", err)
	}
	if created.Status != constants.DefaultTaskStatus || len(created.Phases) != 5 {
		t.Fatalf("unexpected created task: %+v", created)
	}

	create["ownerId"] = "emp-404"
	w = doRequest(t, env.router, http.MethodPost, "/tasks", create, bearerFor(t, env.manager))
	if w.Code != http.StatusNotFound {
		t.Fatalf("POST /tasks with unknown owner expected 404 got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestSeed_Gating(t *testing.T) {
	env := setupTestEnv(t)

	// No confirmation phrase.
	w := doRequest(t, env.router, http.MethodPost, "/seed", map[string]any{"confirm": "yes"}, bearerFor(t, env.manager))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed seed expected 400 got=%d body=%s", w.Code, w.Body.String())
	}

	// Employees cannot reset.
	w = doRequest(t, env.router, http.MethodPost, "/seed", map[string]any{"confirm": controllers.SeedConfirmPhrase}, bearerFor(t, env.vivek))
	if w.Code != http.StatusForbidden {
		t.Fatalf("seed as employee expected 403 got=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodPost, "/seed", map[string]any{"confirm": controllers.SeedConfirmPhrase}, bearerFor(t, env.manager))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed status=%d body=%s", w.Code, w.Body.String())
	}

	task := getTaskJSON(t, env, "task-2", bearerFor(t, env.manager))
	if task.ProgressPercentage != 20 || task.Status != constants.TaskStatusInProgress {
		t.Fatalf("fixture task-2 not restored: %+v", task)
	}
}

func TestGenerateBriefing(t *testing.T) {
	env := setupTestEnv(t)

	// Manager-only.
	w := doRequest(t, env.router, http.MethodPost, "/generate-briefing", nil, bearerFor(t, env.vivek))
	if w.Code != http.StatusForbidden {
		t.Fatalf("briefing as employee expected 403 got=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodPost, "/generate-briefing", nil, bearerFor(t, env.manager))
	if w.Code != http.StatusOK {
		t.Fatalf("briefing status=%d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal briefing: %v", err)
	}
	if resp["briefing"] == "" || resp["briefingHtml"] == "" {
		t.Fatalf("expected briefing text and html, got %v", resp)
	}

	// Upstream failure surfaces as 502 and is non-fatal to reads.
	env.aiServer.Close()
	w = doRequest(t, env.router, http.MethodPost, "/generate-briefing", nil, bearerFor(t, env.manager))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("briefing with dead upstream expected 502 got=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodGet, "/tasks", nil, bearerFor(t, env.manager))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /tasks after briefing failure status=%d", w.Code)
	}
}

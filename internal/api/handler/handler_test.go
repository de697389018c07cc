package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/config"
	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/planner"
	"nfl-fantasy/backend/internal/service"
	apperrors "nfl-fantasy/backend/pkg/errors"
	"nfl-fantasy/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult   *dto.RegisterResponse
	registerErr      error
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	refreshGot       string
	logoutErr        error
	logoutJTI        string
	getCurrentResult *dto.UserDetailResponse
	getCurrentErr    error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, token string) (*dto.TokenResponse, error) {
	m.refreshGot = token
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time, _ string) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock SeasonService ──

type mockSeasonService struct {
	createResult *dto.SeasonResponse
	createErr    error
	getErr       error
	reportResult *planner.ConflictReport
	weekResult   *dto.WeekResponse
	weekErr      error
	weekDate     string
}

func (m *mockSeasonService) Create(_ context.Context, _ *dto.CreateSeasonRequest, _ string) (*dto.SeasonResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSeasonService) List(_ context.Context) ([]dto.SeasonResponse, error) {
	return []dto.SeasonResponse{}, nil
}
func (m *mockSeasonService) GetByID(_ context.Context, id string) (*dto.SeasonResponse, error) {
	return &dto.SeasonResponse{ID: id}, m.getErr
}
func (m *mockSeasonService) GetCurrent(_ context.Context) (*dto.SeasonResponse, error) {
	return nil, m.getErr
}
func (m *mockSeasonService) CheckName(_ context.Context, name string) (*dto.NameCheckResponse, error) {
	return &dto.NameCheckResponse{Name: name, Available: true}, nil
}
func (m *mockSeasonService) CheckConflicts(_ context.Context, _ *dto.CheckConflictsRequest) (*planner.ConflictReport, error) {
	return m.reportResult, nil
}
func (m *mockSeasonService) GetWeekForDate(_ context.Context, _, date string) (*dto.WeekResponse, error) {
	m.weekDate = date
	return m.weekResult, m.weekErr
}

// ── Mock LeagueService ──

type mockLeagueService struct {
	createResult *dto.CreateLeagueResponse
	createErr    error
	joinResult   *dto.JoinLeagueResponse
	joinErr      error
	searchReq    *dto.SearchLeagueRequest
}

func (m *mockLeagueService) Create(_ context.Context, _ *dto.CreateLeagueRequest, _ string) (*dto.CreateLeagueResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockLeagueService) Join(_ context.Context, _ *dto.JoinLeagueRequest, _ string) (*dto.JoinLeagueResponse, error) {
	return m.joinResult, m.joinErr
}
func (m *mockLeagueService) Search(_ context.Context, req *dto.SearchLeagueRequest) ([]dto.LeagueResponse, error) {
	m.searchReq = req
	return []dto.LeagueResponse{}, nil
}
func (m *mockLeagueService) GetByID(_ context.Context, _ string) (*dto.LeagueResponse, error) {
	return nil, service.ErrLeagueNotFound
}

// ── Mock PlayerService ──

type mockPlayerService struct {
	updateErr error
}

func (m *mockPlayerService) List(_ context.Context) ([]dto.PlayerResponse, error) {
	return nil, nil
}
func (m *mockPlayerService) GetByID(_ context.Context, _ string) (*dto.PlayerResponse, error) {
	return nil, service.ErrPlayerNotFound
}
func (m *mockPlayerService) Create(_ context.Context, req *dto.CreatePlayerRequest, _ string) (*dto.PlayerResponse, error) {
	return &dto.PlayerResponse{ID: "p1", Name: req.Name, Version: 1}, nil
}
func (m *mockPlayerService) Update(_ context.Context, id string, _ *dto.UpdatePlayerRequest, _ string) (*dto.PlayerResponse, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &dto.PlayerResponse{ID: id, Version: 2}, nil
}
func (m *mockPlayerService) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

// ── Mock UserService ──

type mockUserService struct {
	listReq   *dto.UserListRequest
	unlockErr error
	assignErr error
}

func (m *mockUserService) List(_ context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	m.listReq = req
	return []dto.UserResponse{{ID: "u1", Alias: "alpha"}}, 1, nil
}
func (m *mockUserService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return nil, service.ErrUserNotFound
}
func (m *mockUserService) Unlock(_ context.Context, _ string, _ string) error {
	return m.unlockErr
}
func (m *mockUserService) AssignRole(_ context.Context, id string, _ *dto.AssignRoleRequest, callerID string) error {
	if id == callerID {
		return service.ErrUserSelfRoleChange
	}
	return m.assignErr
}
func (m *mockUserService) ResetPassword(_ context.Context, _ string, _ string) (*dto.ResetPasswordResponse, error) {
	return &dto.ResetPasswordResponse{TempPassword: "Abcdef1234"}, nil
}
func (m *mockUserService) EnsureBootstrapAdmin(_ context.Context, _ config.BootstrapAdmin) (bool, error) {
	return false, nil
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
	format   string
}

func (m *mockExportService) ExportSeasonXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	m.format = "xlsx"
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportSeasonICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	m.format = "ics"
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("token_jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// serve 注册单个路由并执行请求；auth=true 时模拟 JWT 中间件注入身份
func serve(method, path, target string, body io.Reader, auth bool, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	r := gin.New()
	r.Handle(method, path, func(c *gin.Context) {
		if auth {
			setAuth(c)
		}
		h(c)
	})
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "jordan@example.com",
		Password: "Secret123",
	}), false, h.Login)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	// 验证 Set-Cookie 头
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			found = true
			if c.Value != "test-refresh-token" || !c.HttpOnly {
				t.Errorf("unexpected refresh cookie: %+v", c)
			}
		}
	}
	if !found {
		t.Error("expected refresh_token cookie to be set")
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := serve("POST", "/auth/login", "/auth/login", bytes.NewReader([]byte("invalid json")), false, h.Login)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized, 11001},
		{service.ErrAccountLocked, http.StatusForbidden, 11002},
	}
	for _, tc := range cases {
		h := NewAuthHandler(&mockAuthService{loginErr: tc.err}, nil)
		w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{
			Email:    "jordan@example.com",
			Password: "Wrong1234",
		}), false, h.Login)

		if w.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		if resp := parseResponse(w); resp.Code != tc.code {
			t.Errorf("%v: expected error code %d, got %d", tc.err, tc.code, resp.Code)
		}
	}
}

func TestAuthHandler_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Name:            "Jordan",
		Email:           "jordan@example.com",
		Alias:           "jordy",
		Password:        "Secret123",
		PasswordConfirm: "Secret123",
	}

	h := NewAuthHandler(&mockAuthService{registerResult: &dto.RegisterResponse{ID: "u1"}}, nil)
	if w := serve("POST", "/auth/register", "/auth/register", jsonBody(req), false, h.Register); w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}

	h = NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailTaken}, nil)
	w := serve("POST", "/auth/register", "/auth/register", jsonBody(req), false, h.Register)
	if w.Code != http.StatusConflict || parseResponse(w).Code != 11006 {
		t.Errorf("expected 409/11006, got %d/%d", w.Code, parseResponse(w).Code)
	}

	req.Language = "fr"
	if w := serve("POST", "/auth/register", "/auth/register", jsonBody(req), false, h.Register); w.Code != http.StatusBadRequest {
		t.Errorf("unsupported language: expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_FromBodyAndCookie(t *testing.T) {
	mock := &mockAuthService{refreshResult: &dto.TokenResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}}
	h := NewAuthHandler(mock, nil)

	w := serve("POST", "/auth/refresh", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{RefreshToken: "body-refresh"}), false, h.RefreshToken)
	if w.Code != http.StatusOK || mock.refreshGot != "body-refresh" {
		t.Errorf("expected 200 with body token, got %d/%s", w.Code, mock.refreshGot)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})
	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || mock.refreshGot != "cookie-refresh" {
		t.Errorf("expected 200 with cookie token, got %d/%s", w.Code, mock.refreshGot)
	}
}

func TestAuthHandler_RefreshToken_Missing(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := serve("POST", "/auth/refresh", "/auth/refresh", jsonBody(map[string]string{}), false, h.RefreshToken)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	w := serve("POST", "/auth/logout", "/auth/logout", nil, true, h.Logout)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "test-jti" {
		t.Errorf("expected jti test-jti, got %q", mock.logoutJTI)
	}

	w = serve("POST", "/auth/logout", "/auth/logout", nil, false, h.Logout)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated logout: expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	mock := &mockAuthService{
		getCurrentResult: &dto.UserDetailResponse{UserResponse: dto.UserResponse{ID: "test-user-id", Name: "Test User"}},
	}
	h := NewAuthHandler(mock, nil)

	if w := serve("GET", "/auth/me", "/auth/me", nil, true, h.GetCurrentUser); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := serve("GET", "/auth/me", "/auth/me", nil, false, h.GetCurrentUser); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SeasonHandler Tests
// ═══════════════════════════════════════════════════════════

func seasonBody() io.Reader {
	return jsonBody(dto.CreateSeasonRequest{
		Name:       "2026 Regular Season",
		WeeksCount: 18,
		StartDate:  "2026-09-10",
		EndDate:    "2027-01-10",
	})
}

func TestSeasonHandler_Create_Success(t *testing.T) {
	h := NewSeasonHandler(&mockSeasonService{createResult: &dto.SeasonResponse{ID: "s1"}})

	w := serve("POST", "/seasons", "/seasons", seasonBody(), true, h.CreateSeason)
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestSeasonHandler_Create_ValidationKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
		kind   string
	}{
		{planner.ErrInvalidWeekCount, http.StatusBadRequest, 12011, "InvalidWeekCount"},
		{planner.ErrInvalidDateRange, http.StatusBadRequest, 12012, "InvalidDateRange"},
		{planner.ErrDatesInPast, http.StatusBadRequest, 12013, "DatesInPast"},
		{planner.ErrDuplicateName, http.StatusConflict, 12014, "DuplicateName"},
		{planner.ErrDateOverlap, http.StatusConflict, 12015, "DateOverlap"},
		{planner.ErrCurrentSeasonConflict, http.StatusConflict, 12016, "CurrentSeasonConflict"},
	}
	for _, tc := range cases {
		h := NewSeasonHandler(&mockSeasonService{createErr: tc.err})
		w := serve("POST", "/seasons", "/seasons", seasonBody(), true, h.CreateSeason)

		if w.Code != tc.status {
			t.Errorf("%s: expected %d, got %d", tc.kind, tc.status, w.Code)
		}
		resp := parseResponse(w)
		if resp.Code != tc.code || resp.Details != tc.kind || resp.Message == "" {
			t.Errorf("%s: unexpected body %+v", tc.kind, resp)
		}
	}
}

func TestSeasonHandler_Create_Unauthenticated(t *testing.T) {
	h := NewSeasonHandler(&mockSeasonService{})

	w := serve("POST", "/seasons", "/seasons", seasonBody(), false, h.CreateSeason)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSeasonHandler_GetCurrent_NotFound(t *testing.T) {
	h := NewSeasonHandler(&mockSeasonService{getErr: service.ErrSeasonNotFound})

	w := serve("GET", "/seasons/current", "/seasons/current", nil, false, h.GetCurrentSeason)
	if w.Code != http.StatusNotFound || parseResponse(w).Code != 12001 {
		t.Errorf("expected 404/12001, got %d/%d", w.Code, parseResponse(w).Code)
	}
}

func TestSeasonHandler_CheckConflicts(t *testing.T) {
	report := &planner.ConflictReport{DateConflict: true}
	h := NewSeasonHandler(&mockSeasonService{reportResult: report})

	w := serve("POST", "/seasons/check-conflicts", "/seasons/check-conflicts", jsonBody(dto.CheckConflictsRequest{
		Name: "x", StartDate: "2026-09-01", EndDate: "2026-10-01",
	}), false, h.CheckConflicts)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data map[string]bool `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Data["dateConflict"] || body.Data["canCreate"] {
		t.Errorf("unexpected report: %v", body.Data)
	}
}

func TestSeasonHandler_GetWeekAt(t *testing.T) {
	mock := &mockSeasonService{weekResult: &dto.WeekResponse{Number: 2}}
	h := NewSeasonHandler(mock)

	w := serve("GET", "/seasons/:id/weeks/at", "/seasons/s1/weeks/at?date=2026-09-05", nil, false, h.GetWeekAt)
	if w.Code != http.StatusOK || mock.weekDate != "2026-09-05" {
		t.Errorf("expected 200 with date, got %d/%q", w.Code, mock.weekDate)
	}

	mock.weekErr = service.ErrWeekNotFound
	w = serve("GET", "/seasons/:id/weeks/at", "/seasons/s1/weeks/at", nil, false, h.GetWeekAt)
	if w.Code != http.StatusNotFound || parseResponse(w).Code != 12004 {
		t.Errorf("expected 404/12004, got %d/%d", w.Code, parseResponse(w).Code)
	}
}

// ═══════════════════════════════════════════════════════════
// LeagueHandler Tests
// ═══════════════════════════════════════════════════════════

func joinBody() io.Reader {
	return jsonBody(dto.JoinLeagueRequest{LeagueID: "l1", Password: "League123", Alias: "rookie", TeamName: "Rookies"})
}

func TestLeagueHandler_Join(t *testing.T) {
	h := NewLeagueHandler(&mockLeagueService{joinResult: &dto.JoinLeagueResponse{RemainingSpots: 2}})
	if w := serve("POST", "/leagues/join", "/leagues/join", joinBody(), true, h.JoinLeague); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	cases := []struct {
		err    error
		status int
		code   int
	}{
		{service.ErrLeagueFull, http.StatusConflict, 13008},
		{service.ErrLeaguePasswordInvalid, http.StatusForbidden, 13007},
		{service.ErrLeagueNotFound, http.StatusNotFound, 13001},
	}
	for _, tc := range cases {
		h := NewLeagueHandler(&mockLeagueService{joinErr: tc.err})
		w := serve("POST", "/leagues/join", "/leagues/join", joinBody(), true, h.JoinLeague)
		if w.Code != tc.status || parseResponse(w).Code != tc.code {
			t.Errorf("%v: expected %d/%d, got %d/%d", tc.err, tc.status, tc.code, w.Code, parseResponse(w).Code)
		}
	}
}

func TestLeagueHandler_Create_InvalidPlayoffType(t *testing.T) {
	h := NewLeagueHandler(&mockLeagueService{})

	w := serve("POST", "/leagues", "/leagues", jsonBody(dto.CreateLeagueRequest{
		Name: "x", MaxTeams: 8, Password: "League123", PlayoffType: 5,
		CommissionerTeamName: "t", CommissionerAlias: "a",
	}), true, h.CreateLeague)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLeagueHandler_Search_BindsQuery(t *testing.T) {
	mock := &mockLeagueService{}
	h := NewLeagueHandler(mock)

	w := serve("GET", "/leagues", "/leagues?name=legend&is_active=false", nil, true, h.SearchLeagues)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.searchReq.Name != "legend" || mock.searchReq.IsActive == nil || *mock.searchReq.IsActive {
		t.Errorf("query not bound: %+v", mock.searchReq)
	}
}

// ═══════════════════════════════════════════════════════════
// PlayerHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPlayerHandler_Update_VersionConflict(t *testing.T) {
	h := NewPlayerHandler(&mockPlayerService{updateErr: apperrors.ErrOptimisticLock})

	w := serve("PUT", "/players/:id", "/players/p1", jsonBody(map[string]interface{}{"team": "Chiefs", "version": 1}), true, h.UpdatePlayer)
	if w.Code != http.StatusConflict || parseResponse(w).Code != 15002 {
		t.Errorf("expected 409/15002, got %d/%d", w.Code, parseResponse(w).Code)
	}
}

func TestPlayerHandler_Update_MissingVersion(t *testing.T) {
	h := NewPlayerHandler(&mockPlayerService{})

	w := serve("PUT", "/players/:id", "/players/p1", jsonBody(map[string]interface{}{"team": "Chiefs"}), true, h.UpdatePlayer)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPlayerHandler_GetNotFound(t *testing.T) {
	h := NewPlayerHandler(&mockPlayerService{})

	w := serve("GET", "/players/:id", "/players/p1", nil, false, h.GetPlayer)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_List_BindsQuery(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock)

	w := serve("GET", "/users", "/users?status=locked&page=2&page_size=5", nil, true, h.ListUsers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listReq == nil || mock.listReq.Status != "locked" || mock.listReq.GetPage() != 2 || mock.listReq.GetPageSize() != 5 {
		t.Errorf("query not bound: %+v", mock.listReq)
	}

	w = serve("GET", "/users", "/users?status=unknown", nil, true, h.ListUsers)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", w.Code)
	}
}

func TestUserHandler_Unlock(t *testing.T) {
	h := NewUserHandler(&mockUserService{})
	w := serve("POST", "/users/:id/unlock", "/users/u1/unlock", nil, true, h.UnlockUser)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	h = NewUserHandler(&mockUserService{unlockErr: service.ErrUserNotLocked})
	w = serve("POST", "/users/:id/unlock", "/users/u1/unlock", nil, true, h.UnlockUser)
	if w.Code != http.StatusConflict || parseResponse(w).Code != 16002 {
		t.Errorf("expected 409/16002, got %d/%d", w.Code, parseResponse(w).Code)
	}
}

func TestUserHandler_AssignRole(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	w := serve("PUT", "/users/:id/role", "/users/u1/role", jsonBody(map[string]string{"role": "admin"}), true, h.AssignRole)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	w = serve("PUT", "/users/:id/role", "/users/test-user-id/role", jsonBody(map[string]string{"role": "manager"}), true, h.AssignRole)
	if w.Code != http.StatusBadRequest || parseResponse(w).Code != 16001 {
		t.Errorf("expected 400/16001, got %d/%d", w.Code, parseResponse(w).Code)
	}

	w = serve("PUT", "/users/:id/role", "/users/u1/role", jsonBody(map[string]string{"role": "owner"}), true, h.AssignRole)
	if w.Code != http.StatusBadRequest || parseResponse(w).Code != 10001 {
		t.Errorf("expected 400/10001, got %d/%d", w.Code, parseResponse(w).Code)
	}
}

func TestUserHandler_GetNotFound(t *testing.T) {
	h := NewUserHandler(&mockUserService{})
	w := serve("GET", "/users/:id", "/users/u1", nil, true, h.GetUser)
	if w.Code != http.StatusNotFound || parseResponse(w).Code != 11008 {
		t.Errorf("expected 404/11008, got %d/%d", w.Code, parseResponse(w).Code)
	}
}

func TestUserHandler_ResetPassword(t *testing.T) {
	h := NewUserHandler(&mockUserService{})
	w := serve("POST", "/users/:id/reset-password", "/users/u1/reset-password", nil, true, h.ResetPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Abcdef1234") {
		t.Errorf("temp password missing from body: %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Formats(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("BEGIN:VCALENDAR"), filename: "2026 Season.ics"}
	h := NewExportHandler(mock)

	w := serve("GET", "/export/seasons/:id", "/export/seasons/s1?format=ics", nil, true, h.ExportSeason)
	if w.Code != http.StatusOK || mock.format != "ics" {
		t.Fatalf("expected 200 ics, got %d/%s", w.Code, mock.format)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeICS {
		t.Errorf("unexpected content type %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename*=UTF-8''2026%20Season.ics" {
		t.Errorf("unexpected content disposition %s", cd)
	}

	mock.buf = bytes.NewBufferString("PK")
	w = serve("GET", "/export/seasons/:id", "/export/seasons/s1", nil, true, h.ExportSeason)
	if w.Code != http.StatusOK || mock.format != "xlsx" {
		t.Errorf("default format should be xlsx, got %d/%s", w.Code, mock.format)
	}

	w = serve("GET", "/export/seasons/:id", "/export/seasons/s1?format=pdf", nil, true, h.ExportSeason)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for pdf, got %d", w.Code)
	}
}

func TestExportHandler_NotFound(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrSeasonNotFound})

	w := serve("GET", "/export/seasons/:id", "/export/seasons/s1", nil, true, h.ExportSeason)
	if w.Code != http.StatusNotFound || parseResponse(w).Code != 16101 {
		t.Errorf("expected 404/16101, got %d/%d", w.Code, parseResponse(w).Code)
	}
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"nfl-fantasy/backend/internal/model"
	"nfl-fantasy/backend/internal/repository"
	apperrors "nfl-fantasy/backend/pkg/errors"
)

// ── Mock SeasonRepository ──

type mockSeasonRepo struct {
	seasons   map[string]*model.Season
	seq       int
	lockCalls int
	createErr error
}

func newMockSeasonRepo() *mockSeasonRepo {
	return &mockSeasonRepo{seasons: make(map[string]*model.Season)}
}

func (m *mockSeasonRepo) LockForCreate(_ context.Context) error {
	m.lockCalls++
	return nil
}

func (m *mockSeasonRepo) ListAll(_ context.Context) ([]model.Season, error) {
	var result []model.Season
	for _, s := range m.seasons {
		cp := *s
		cp.Weeks = nil
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockSeasonRepo) List(_ context.Context) ([]model.Season, error) {
	var result []model.Season
	for _, s := range m.seasons {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockSeasonRepo) GetByID(_ context.Context, id string) (*model.Season, error) {
	if s, ok := m.seasons[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeasonRepo) GetCurrent(_ context.Context) (*model.Season, error) {
	for _, s := range m.seasons {
		if s.IsCurrent {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeasonRepo) CreateWithWeeks(_ context.Context, season *model.Season) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	if season.SeasonID == "" {
		season.SeasonID = fmt.Sprintf("season-%d", m.seq)
	}
	if season.CreatedAt.IsZero() {
		season.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	}
	for i := range season.Weeks {
		season.Weeks[i].SeasonID = season.SeasonID
	}
	m.seasons[season.SeasonID] = season
	return nil
}

// add 直接写入一个已存在的赛季（测试数据准备）
func (m *mockSeasonRepo) add(name string, start, end time.Time, current bool) *model.Season {
	s := &model.Season{Name: name, WeeksCount: 1, StartDate: start, EndDate: end, IsCurrent: current}
	s.Weeks = []model.Week{{Number: 1, StartDate: start, EndDate: end}}
	_ = m.CreateWithWeeks(context.Background(), s)
	return s
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users       map[string]*model.User
	updateCalls int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Alias
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepo) ExistsByAlias(_ context.Context, alias string) (bool, error) {
	for _, u := range m.users {
		if u.Alias == alias {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.updateCalls++
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, f repository.UserListFilter, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Keyword != "" {
			kw := strings.ToLower(f.Keyword)
			if !strings.Contains(strings.ToLower(u.Name+" "+u.Email+" "+u.Alias), kw) {
				continue
			}
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Alias < matched[j].Alias })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── Mock LeagueRepository ──

type mockLeagueRepo struct {
	leagues map[string]*model.League
	teams   []model.Team
	audits  []model.LeagueAudit
	// racingTeam 非空时模拟并发加入：CreateTeam 先写入该球队，再返回唯一约束冲突
	racingTeam *model.Team
}

func newMockLeagueRepo() *mockLeagueRepo {
	return &mockLeagueRepo{leagues: make(map[string]*model.League)}
}

func (m *mockLeagueRepo) Create(_ context.Context, league *model.League) error {
	if league.LeagueID == "" {
		league.LeagueID = "league-" + league.Name
	}
	m.leagues[league.LeagueID] = league
	return nil
}

func (m *mockLeagueRepo) GetByID(_ context.Context, id string) (*model.League, error) {
	l, ok := m.leagues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	cp.Teams = m.teamsOf(id)
	return &cp, nil
}

func (m *mockLeagueRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.League, error) {
	return m.GetByID(ctx, id)
}

func (m *mockLeagueRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, l := range m.leagues {
		if strings.EqualFold(l.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeagueRepo) Search(_ context.Context, f repository.LeagueFilter) ([]model.League, error) {
	var result []model.League
	for _, l := range m.leagues {
		if f.Name != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.SeasonID != "" && l.SeasonID != f.SeasonID {
			continue
		}
		if f.IsActive != nil && l.IsActive != *f.IsActive {
			continue
		}
		cp := *l
		cp.Teams = m.teamsOf(l.LeagueID)
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockLeagueRepo) CountTeams(_ context.Context, leagueID string) (int64, error) {
	return int64(len(m.teamsOf(leagueID))), nil
}

func (m *mockLeagueRepo) HasTeamForUser(_ context.Context, leagueID, userID string) (bool, error) {
	for _, t := range m.teamsOf(leagueID) {
		if t.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeagueRepo) TeamNameTaken(_ context.Context, leagueID, teamName string) (bool, error) {
	for _, t := range m.teamsOf(leagueID) {
		if strings.EqualFold(t.TeamName, teamName) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeagueRepo) AliasTaken(_ context.Context, leagueID, alias string) (bool, error) {
	for _, t := range m.teamsOf(leagueID) {
		if strings.EqualFold(t.Alias, alias) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeagueRepo) CreateTeam(_ context.Context, team *model.Team) error {
	if m.racingTeam != nil {
		m.teams = append(m.teams, *m.racingTeam)
		m.racingTeam = nil
		return gorm.ErrDuplicatedKey
	}
	if team.TeamID == "" {
		team.TeamID = fmt.Sprintf("team-%d", len(m.teams)+1)
	}
	m.teams = append(m.teams, *team)
	return nil
}

func (m *mockLeagueRepo) CreateAudit(_ context.Context, audit *model.LeagueAudit) error {
	m.audits = append(m.audits, *audit)
	return nil
}

func (m *mockLeagueRepo) teamsOf(leagueID string) []model.Team {
	var result []model.Team
	for _, t := range m.teams {
		if t.LeagueID == leagueID {
			result = append(result, t)
		}
	}
	return result
}

// ── Mock NflTeamRepository ──

type mockNflTeamRepo struct {
	teams map[string]*model.NflTeam
}

func newMockNflTeamRepo() *mockNflTeamRepo {
	return &mockNflTeamRepo{teams: make(map[string]*model.NflTeam)}
}

func (m *mockNflTeamRepo) Create(_ context.Context, team *model.NflTeam) error {
	if team.NflTeamID == "" {
		team.NflTeamID = "nfl-" + team.Name
	}
	m.teams[team.NflTeamID] = team
	return nil
}

func (m *mockNflTeamRepo) GetByID(_ context.Context, id string) (*model.NflTeam, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNflTeamRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, t := range m.teams {
		if strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNflTeamRepo) List(_ context.Context, includeInactive bool) ([]model.NflTeam, error) {
	var result []model.NflTeam
	for _, t := range m.teams {
		if !includeInactive && !t.IsActive {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock PlayerRepository ──

type mockPlayerRepo struct {
	players map[string]*model.Player
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{players: make(map[string]*model.Player)}
}

func (m *mockPlayerRepo) Create(_ context.Context, player *model.Player) error {
	if player.PlayerID == "" {
		player.PlayerID = "player-" + player.Name
	}
	cp := *player
	m.players[player.PlayerID] = &cp
	return nil
}

func (m *mockPlayerRepo) GetByID(_ context.Context, id string) (*model.Player, error) {
	if p, ok := m.players[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlayerRepo) List(_ context.Context) ([]model.Player, error) {
	var result []model.Player
	for _, p := range m.players {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockPlayerRepo) Update(_ context.Context, player *model.Player) error {
	stored, ok := m.players[player.PlayerID]
	if !ok || stored.Version != player.Version {
		return apperrors.ErrOptimisticLock
	}
	player.Version++
	cp := *player
	m.players[player.PlayerID] = &cp
	return nil
}

func (m *mockPlayerRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.players, id)
	return nil
}

// ── Mock TokenStore ──

type mockTokenStore struct {
	blacklist map[string]time.Duration
	err       error
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{blacklist: make(map[string]time.Duration)}
}

func (m *mockTokenStore) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	if ttl > 0 {
		m.blacklist[jti] = ttl
	}
	return nil
}

func (m *mockTokenStore) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.blacklist[jti]
	return ok, nil
}

// ── 聚合 ──

type mockRepos struct {
	season  *mockSeasonRepo
	user    *mockUserRepo
	league  *mockLeagueRepo
	nflTeam *mockNflTeamRepo
	player  *mockPlayerRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		season:  newMockSeasonRepo(),
		user:    newMockUserRepo(),
		league:  newMockLeagueRepo(),
		nflTeam: newMockNflTeamRepo(),
		player:  newMockPlayerRepo(),
	}
	return &repository.Repository{
		Season:  m.season,
		User:    m.user,
		League:  m.league,
		NflTeam: m.nflTeam,
		Player:  m.player,
	}, m
}

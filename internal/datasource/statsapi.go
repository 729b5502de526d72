// Package datasource retrieves MLB schedules from the public stats API.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/mlb-dashboard/internal/config"
	"github.com/yourusername/mlb-dashboard/internal/models"
)

const sourceName = "statsapi"

// ScheduleSource is anything that can list the games scheduled on a date
type ScheduleSource interface {
	FetchGames(ctx context.Context, date time.Time) ([]models.Game, error)
	Name() string
}

// StatsAPIClient fetches the daily schedule from statsapi.mlb.com
type StatsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	sportID    int
	gameType   string
}

// StatsAPIConfig holds configuration for the stats API client
type StatsAPIConfig struct {
	BaseURL    string
	SportID    int
	GameType   string
	HTTPConfig HTTPClientConfig
}

// NewStatsAPIConfig builds client configuration from the application config
func NewStatsAPIConfig(cfg *config.ScheduleAPIConfig) StatsAPIConfig {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimit

	return StatsAPIConfig{
		BaseURL:    cfg.BaseURL,
		SportID:    cfg.SportID,
		GameType:   cfg.GameType,
		HTTPConfig: httpCfg,
	}
}

// NewStatsAPIClient creates a new schedule client; httpClient may be nil
func NewStatsAPIClient(cfg StatsAPIConfig, httpClient *RateLimitedHTTPClient) *StatsAPIClient {
	if httpClient == nil {
		httpClient = NewRateLimitedHTTPClient(cfg.HTTPConfig, nil)
	}
	if cfg.SportID == 0 {
		cfg.SportID = 1
	}
	if cfg.GameType == "" {
		cfg.GameType = models.GameTypeRegularSeason
	}

	return &StatsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		sportID:    cfg.SportID,
		gameType:   cfg.GameType,
	}
}

// Name returns the source identifier used in errors and logs
func (c *StatsAPIClient) Name() string {
	return sourceName
}

// scheduleResponse mirrors the parts of /api/v1/schedule the dashboard reads
type scheduleResponse struct {
	Dates []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePK       int64  `json:"gamePk"`
	GameType     string `json:"gameType"`
	GameDate     string `json:"gameDate"`
	OfficialDate string `json:"officialDate"`
	Status       struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away scheduleTeam `json:"away"`
		Home scheduleTeam `json:"home"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type scheduleTeam struct {
	Score *int `json:"score"`
	Team  struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// FetchGames returns the regular-season games on date in upstream order.
// On failure it returns an empty slice together with a *DataSourceError.
func (c *StatsAPIClient) FetchGames(ctx context.Context, date time.Time) ([]models.Game, error) {
	games := []models.Game{}

	params := url.Values{}
	params.Set("sportId", strconv.Itoa(c.sportID))
	params.Set("date", date.Format("2006-01-02"))
	endpoint := fmt.Sprintf("%s/api/v1/schedule?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return games, NewDataSourceError(sourceName, ErrCodeNetworkError, "schedule request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		code := ErrCodeServerError
		if resp.StatusCode == http.StatusNotFound {
			code = ErrCodeNotFound
		}
		return games, NewDataSourceError(sourceName, code,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), fmt.Errorf("%s", strings.TrimSpace(string(body))))
	}

	var payload scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return games, NewDataSourceError(sourceName, ErrCodeInvalidData, "failed to decode schedule", err)
	}

	if len(payload.Dates) == 0 {
		return games, nil
	}

	for _, g := range payload.Dates[0].Games {
		if g.GameType != c.gameType {
			continue
		}
		games = append(games, convertGame(g))
	}

	return games, nil
}

func convertGame(g scheduleGame) models.Game {
	game := models.Game{
		GamePK:       g.GamePK,
		OfficialDate: g.OfficialDate,
		GameType:     g.GameType,
		AwayTeam:     g.Teams.Away.Team.Name,
		HomeTeam:     g.Teams.Home.Team.Name,
		AwayID:       g.Teams.Away.Team.ID,
		HomeID:       g.Teams.Home.Team.ID,
		AwayScore:    g.Teams.Away.Score,
		HomeScore:    g.Teams.Home.Score,
		Venue:        g.Venue.Name,
		Status:       g.Status.DetailedState,
		GameTime:     g.GameDate,
	}

	if g.GameDate != "" {
		if t, err := time.Parse(time.RFC3339, g.GameDate); err == nil {
			game.StartTime = &t
		}
	}

	return game
}

// Close releases the underlying HTTP client
func (c *StatsAPIClient) Close() error {
	return c.httpClient.Close()
}

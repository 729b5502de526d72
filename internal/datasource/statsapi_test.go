package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-dashboard/internal/config"
	"github.com/yourusername/mlb-dashboard/internal/models"
)

const scheduleFixture = `{
  "dates": [{
    "date": "2025-06-15",
    "games": [
      {
        "gamePk": 777001,
        "gameType": "R",
        "gameDate": "2025-06-15T17:05:00Z",
        "officialDate": "2025-06-15",
        "status": {"detailedState": "Final"},
        "teams": {
          "away": {"score": 3, "team": {"id": 147, "name": "New York Yankees"}},
          "home": {"score": 7, "team": {"id": 111, "name": "Boston Red Sox"}}
        },
        "venue": {"name": "Fenway Park"}
      },
      {
        "gamePk": 777002,
        "gameType": "E",
        "gameDate": "2025-06-15T18:10:00Z",
        "officialDate": "2025-06-15",
        "status": {"detailedState": "Scheduled"},
        "teams": {
          "away": {"team": {"id": 1, "name": "Exhibition Away"}},
          "home": {"team": {"id": 2, "name": "Exhibition Home"}}
        },
        "venue": {"name": "Somewhere"}
      },
      {
        "gamePk": 777003,
        "gameType": "R",
        "gameDate": "not-a-time",
        "officialDate": "2025-06-15",
        "status": {"detailedState": "Scheduled"},
        "teams": {
          "away": {"team": {"id": 119, "name": "Los Angeles Dodgers"}},
          "home": {"team": {"id": 137, "name": "San Francisco Giants"}}
        },
        "venue": {"name": "Oracle Park"}
      }
    ]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *StatsAPIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = 2 * time.Second
	httpCfg.RateLimit = 100

	return NewStatsAPIClient(StatsAPIConfig{
		BaseURL:    server.URL,
		SportID:    1,
		GameType:   models.GameTypeRegularSeason,
		HTTPConfig: httpCfg,
	}, nil)
}

var testDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestStatsAPIClient_FetchGames(t *testing.T) {
	var gotPath, gotSport, gotDate string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSport = r.URL.Query().Get("sportId")
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scheduleFixture))
	})

	games, err := client.FetchGames(context.Background(), testDate)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/schedule", gotPath)
	assert.Equal(t, "1", gotSport)
	assert.Equal(t, "2025-06-15", gotDate)

	require.Len(t, games, 2, "non-regular-season games are dropped")
	assert.Equal(t, int64(777001), games[0].GamePK)
	assert.Equal(t, int64(777003), games[1].GamePK)

	first := games[0]
	assert.Equal(t, "New York Yankees", first.AwayTeam)
	assert.Equal(t, "Boston Red Sox", first.HomeTeam)
	assert.Equal(t, 147, first.AwayID)
	assert.Equal(t, 111, first.HomeID)
	assert.Equal(t, "Fenway Park", first.Venue)
	assert.Equal(t, "Final", first.Status)
	assert.Equal(t, "2025-06-15", first.OfficialDate)
	require.NotNil(t, first.HomeScore)
	require.NotNil(t, first.AwayScore)
	assert.Equal(t, 7, *first.HomeScore)
	assert.Equal(t, 3, *first.AwayScore)
	require.NotNil(t, first.StartTime)
	assert.True(t, first.StartTime.Equal(time.Date(2025, 6, 15, 17, 5, 0, 0, time.UTC)))
	assert.True(t, first.IsFinal())

	second := games[1]
	assert.Nil(t, second.StartTime, "unparseable start time is kept raw only")
	assert.Equal(t, "not-a-time", second.GameTime)
	assert.Nil(t, second.HomeScore)
	assert.False(t, second.IsFinal())
}

func TestStatsAPIClient_FetchGames_NoDates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dates": []}`))
	})

	games, err := client.FetchGames(context.Background(), testDate)
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestStatsAPIClient_FetchGames_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantCode: ErrCodeServerError,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantCode: ErrCodeNotFound,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"dates": [`))
			},
			wantCode: ErrCodeInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			games, err := client.FetchGames(context.Background(), testDate)
			require.Error(t, err)
			assert.NotNil(t, games)
			assert.Empty(t, games)

			var dsErr *DataSourceError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, tt.wantCode, dsErr.Code)
			assert.Equal(t, "statsapi", dsErr.Source)
		})
	}
}

func TestStatsAPIClient_FetchGames_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Second
	client := NewStatsAPIClient(StatsAPIConfig{BaseURL: baseURL, HTTPConfig: httpCfg}, nil)

	games, err := client.FetchGames(context.Background(), testDate)
	require.Error(t, err)
	assert.Empty(t, games)

	var dsErr *DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeNetworkError, dsErr.Code)
}

func TestNewStatsAPIConfig(t *testing.T) {
	cfg := NewStatsAPIConfig(&config.ScheduleAPIConfig{
		BaseURL:        "https://statsapi.mlb.com",
		SportID:        1,
		GameType:       "R",
		TimeoutSeconds: 7,
		MaxRetries:     2,
		RateLimit:      3,
	})

	assert.Equal(t, "https://statsapi.mlb.com", cfg.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.HTTPConfig.Timeout)
	assert.Equal(t, 2, cfg.HTTPConfig.MaxRetries)
	assert.Equal(t, 3.0, cfg.HTTPConfig.RateLimit)
}

func TestRateLimitedHTTPClient_CircuitBreaker(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 100
	cfg.CircuitBreakerMax = 2
	cfg.CircuitCooldown = time.Hour
	client := NewRateLimitedHTTPClient(cfg, nil)

	for i := 0; i < 2; i++ {
		resp, err := client.Get(context.Background(), server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.True(t, client.IsOpen())

	_, err := client.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, 2, calls)
}

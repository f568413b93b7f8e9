package gameday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the GameDay data server.
	DefaultBaseURL = "http://gd2.mlb.com"
	// basePath is the path prefix for day-level resources.
	basePath = "/components/game/mlb"

	defaultTimeout = 15 * time.Second
)

// ErrUnavailable marks a resource the server would not hand over (non-2xx
// response). It is an expected condition: hit charts and inning feeds are
// routinely missing for older or rained-out games.
var ErrUnavailable = errors.New("gameday: resource unavailable")

// Client fetches GameDay resources over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a GameDay client. An empty baseURL selects the default
// server; a zero timeout selects the default timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Scoreboard fetches and decodes master_scoreboard.json for a date. The
// document lists every game scheduled that day with status, type, and the
// data directory where the game's other resources live.
func (c *Client) Scoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s%s/year_%04d/month_%02d/day_%02d/master_scoreboard.json",
		c.baseURL, basePath, date.Year(), int(date.Month()), date.Day())

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding scoreboard: %w", err)
	}

	return doc, nil
}

// InningAll fetches the inning-by-inning event feed for a game.
func (c *Client) InningAll(ctx context.Context, gameDir string) ([]byte, error) {
	return c.get(ctx, c.baseURL+gameDir+"/inning/inning_all.xml")
}

// HitChart fetches the ball-in-play chart for a game.
func (c *Client) HitChart(ctx context.Context, gameDir string) ([]byte, error) {
	return c.get(ctx, c.baseURL+gameDir+"/inning/inning_hit.xml")
}

// Players fetches the roster listing for a game.
func (c *Client) Players(ctx context.Context, gameDir string) ([]byte, error) {
	return c.get(ctx, c.baseURL+gameDir+"/players.xml")
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d: %w", url, resp.StatusCode, ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	return body, nil
}

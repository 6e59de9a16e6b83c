package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"roboscout/internal/config"
	"roboscout/internal/errs"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// TBAClient reads event rosters from The Blue Alliance API v3.
type TBAClient struct {
	apiKey  string
	baseURL string
	client  *fasthttp.Client
}

func NewTBAClient(cfg *config.Config) *TBAClient {
	return &TBAClient{
		apiKey:  cfg.TBAAPIKey,
		baseURL: strings.TrimRight(cfg.TBABaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *TBAClient) Enabled() bool {
	return c.apiKey != ""
}

// GetEventTeams lists the teams registered for an event such as "2025cmptx".
func (c *TBAClient) GetEventTeams(ctx context.Context, eventKey string) ([]TBATeam, error) {
	eventKey = strings.TrimSpace(eventKey)
	if eventKey == "" {
		return nil, errs.NewValidationError("eventKey", eventKey, "is required")
	}
	u := fmt.Sprintf("%s/event/%s/teams/simple", c.baseURL, url.PathEscape(eventKey))
	teams, err := doRequest[[]TBATeam](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *teams, nil
}

func doRequest[T any](ctx context.Context, client *TBAClient, url string) (*T, error) {
	if !client.Enabled() {
		return nil, errs.NewValidationError("TBA_API_KEY", "", "must be set to call The Blue Alliance")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-TBA-Auth-Key", client.apiKey)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, errs.NewNotFoundError("tba resource", url)
	default:
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type TBATeam struct {
	Key        string `json:"key"`
	TeamNumber int    `json:"team_number"`
	Nickname   string `json:"nickname"`
	Name       string `json:"name"`
	City       string `json:"city"`
	StateProv  string `json:"state_prov"`
	Country    string `json:"country"`
}

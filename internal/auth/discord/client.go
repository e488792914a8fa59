package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portos/internal/config"
	"portos/internal/domain"
	"portos/internal/port"
)

const (
	apiBase      = "https://discord.com/api/v10"
	authorizeURL = "https://discord.com/oauth2/authorize"
	cdnBase      = "https://cdn.discordapp.com"
)

// Client talks to the Discord OAuth and guild APIs.
type Client struct {
	cfg        config.DiscordConfig
	httpClient *http.Client
}

// NewClient creates a Discord gateway from the application config.
func NewClient(cfg config.DiscordConfig) port.DiscordGateway {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "identify guilds")
	q.Set("state", state)
	return authorizeURL + "?" + q.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*port.DiscordUser, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrDiscordTokenInvalid
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrDiscordTokenInvalid
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, domain.ErrDiscordTokenInvalid
	}

	return c.fetchUser(ctx, tok.AccessToken)
}

func (c *Client) fetchUser(ctx context.Context, accessToken string) (*port.DiscordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/users/@me", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrDiscordTokenInvalid
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrDiscordTokenInvalid
	}

	var u userResponse
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, domain.ErrDiscordTokenInvalid
	}

	avatar := ""
	if u.Avatar != "" {
		avatar = fmt.Sprintf("%s/avatars/%s/%s.png", cdnBase, u.ID, u.Avatar)
	}
	return &port.DiscordUser{ID: u.ID, Username: u.Username, AvatarURL: avatar}, nil
}

type memberResponse struct {
	Roles []string `json:"roles"`
}

// MemberRoles looks up the guild member through the bot token.
func (c *Client) MemberRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/guilds/%s/members/%s", apiBase, guildID, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating member request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching guild member: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotEnterpriseMember
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord member lookup returned %d", resp.StatusCode)
	}

	var m memberResponse
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding guild member: %w", err)
	}
	return m.Roles, nil
}

package port

import "context"

// DiscordUser is the identity returned by the OAuth code exchange.
type DiscordUser struct {
	ID        string
	Username  string
	AvatarURL string
}

// DiscordGateway abstracts the Discord OAuth and guild member lookups used
// during login.
type DiscordGateway interface {
	// AuthorizeURL builds the OAuth consent URL for the given CSRF state.
	AuthorizeURL(state string) string
	// ExchangeCode trades an authorization code for the member identity.
	ExchangeCode(ctx context.Context, code string) (*DiscordUser, error)
	// MemberRoles lists the Discord role ids the user holds in a guild.
	MemberRoles(ctx context.Context, guildID, userID string) ([]string, error)
}

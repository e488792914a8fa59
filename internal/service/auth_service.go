package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"portos/internal/config"
	"portos/internal/domain"
	"portos/internal/port"
)

// Claims represents the JWT claims carrying the enterprise context.
type Claims struct {
	jwt.RegisteredClaims
	UserID       uuid.UUID   `json:"user_id"`
	EnterpriseID *uuid.UUID  `json:"enterprise_id"`
	DiscordID    string      `json:"discord_id"`
	Role         domain.Role `json:"role"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResult is returned after a successful Discord callback.
type AuthResult struct {
	Tokens *TokenPair   `json:"tokens"`
	User   *domain.User `json:"user"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	// AuthorizeURL builds the Discord consent URL for the given CSRF state.
	AuthorizeURL(state string) string
	// HandleCallback exchanges the OAuth code, resolves the member's role
	// from the enterprise's Discord guild and issues a token pair.
	HandleCallback(ctx context.Context, code, guildID string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       port.UserRepository
	enterpriseRepo port.EnterpriseRepository
	discord        port.DiscordGateway
	cfg            config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	enterpriseRepo port.EnterpriseRepository,
	discord port.DiscordGateway,
	cfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		enterpriseRepo: enterpriseRepo,
		discord:        discord,
		cfg:            cfg,
	}
}

func (s *authService) AuthorizeURL(state string) string {
	return s.discord.AuthorizeURL(state)
}

func (s *authService) HandleCallback(ctx context.Context, code, guildID string) (*AuthResult, error) {
	identity, err := s.discord.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	enterprise, err := s.enterpriseRepo.GetByGuildID(ctx, guildID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotEnterpriseMember
		}
		return nil, fmt.Errorf("auth.HandleCallback: %w", err)
	}
	if !enterprise.IsActive {
		return nil, domain.ErrEnterpriseInactive
	}

	roleIDs, err := s.discord.MemberRoles(ctx, enterprise.GuildID, identity.ID)
	if err != nil {
		return nil, err
	}

	role := resolveRole(enterprise, roleIDs)
	now := time.Now().UTC()

	user := &domain.User{
		ID:              uuid.New(),
		DiscordID:       identity.ID,
		DiscordUsername: identity.Username,
		AvatarURL:       identity.AvatarURL,
		Role:            role,
		EnterpriseID:    &enterprise.ID,
		IsActive:        true,
		LastLogin:       &now,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("auth.HandleCallback: %w", err)
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Tokens: tokens, User: user}, nil
}

// resolveRole maps the member's Discord role ids to the portal role. The
// most privileged configured role wins; members without any configured role
// fall back to employe.
func resolveRole(e *domain.Enterprise, roleIDs []string) domain.Role {
	has := make(map[string]bool, len(roleIDs))
	for _, id := range roleIDs {
		has[id] = true
	}
	switch {
	case e.StaffRoleID != "" && has[e.StaffRoleID]:
		return domain.RoleStaff
	case e.PatronRoleID != "" && has[e.PatronRoleID]:
		return domain.RolePatron
	case e.CoPatronRoleID != "" && has[e.CoPatronRoleID]:
		return domain.RoleCoPatron
	case e.DotRoleID != "" && has[e.DotRoleID]:
		return domain.RoleDot
	}
	return domain.RoleEmploye
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateTokenString(refreshToken, "refresh")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return s.generateTokenPair(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

func (s *authService) generateTokenPair(user *domain.User) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)

	sign := func(expiry time.Time, audience string) (string, error) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.ID.String(),
				Issuer:    s.cfg.Issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiry),
				ID:        uuid.New().String(),
				Audience:  jwt.ClaimStrings{audience},
			},
			UserID:       user.ID,
			EnterpriseID: user.EnterpriseID,
			DiscordID:    user.DiscordID,
			Role:         user.Role,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		return token.SignedString([]byte(s.cfg.Secret))
	}

	accessToken, err := sign(accessExpiry, "access")
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err := sign(refreshExpiry, "refresh")
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	for _, a := range aud {
		if a == audience {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

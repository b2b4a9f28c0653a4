package tokenmanager

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/models"
)

const (
	defaultSigningMethod   = "HS256"
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour

	minSecretLen = 32
)

// Claims carried by both token classes: subject is the user id,
// role rides along so the gate never needs a user lookup
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Identity of the bearer extracted from a verified token
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// Token manager with sensible defaults
type Config struct {
	// Secrets to sign access and refresh tokens.
	// Required, at least 32 bytes each and distinct from each other:
	// a leaked access secret must not make refresh tokens forgeable
	AccessSecret  string
	RefreshSecret string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set then default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set then default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type TokenManager struct {
	accessSecret  string
	refreshSecret string

	alg jwt.SigningMethod

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if len(cfg.AccessSecret) < minSecretLen || len(cfg.RefreshSecret) < minSecretLen {
		return nil, fmt.Errorf("token secrets must be at least %d bytes", minSecretLen)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	return &TokenManager{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		alg:           jwt.GetSigningMethod(cfg.Alg),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}, nil
}

func (m *TokenManager) SignAccess(userID uuid.UUID, role string) (models.IssuedToken, error) {
	return m.sign(userID, role, m.accessSecret, m.accessTTL)
}

func (m *TokenManager) SignRefresh(userID uuid.UUID, role string) (models.IssuedToken, error) {
	return m.sign(userID, role, m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) sign(userID uuid.UUID, role string, secret string, ttl time.Duration) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   userID.String(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			Role: role,
		},
	)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Parse and validate an access token
// Malformed, tampered and expired tokens all come back as the same error:
// verification failures must not give the caller an oracle
func (m *TokenManager) ParseAccess(access string) (Identity, error) {
	identity, err := m.parse(access, m.accessSecret)
	if err != nil {
		return identity, fmt.Errorf("%w: %w", apperrors.ErrInvalidAccessToken, err)
	}
	return identity, nil
}

// Parse and validate a refresh token signature and expiry.
// The ledger check is a separate concern layered on top by the auth service
func (m *TokenManager) ParseRefresh(refresh string) (Identity, error) {
	identity, err := m.parse(refresh, m.refreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return identity, fmt.Errorf("%w: %w", apperrors.ErrRefreshTokenExpired, err)
		}
		return identity, fmt.Errorf("%w: %w", apperrors.ErrRefreshTokenNotFound, err)
	}
	return identity, nil
}

func (m *TokenManager) parse(value string, secret string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		value,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("error parsing token. Err: %w", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("error parsing token subject. Err: %w", err)
	}

	return Identity{UserID: userID, Role: claims.Role}, nil
}

// Hash returns the SHA-256 hex of a raw token: the only form the ledger
// ever stores
func Hash(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/repository"
	"github.com/akozyrev/folio/internal/service/auth/tokenmanager"
)

const minPasswordLen = 8

type Config struct {
	// Hasher to use during registration and login
	// Defaults to BcryptHasher with the default cost
	Hasher PasswordHasher
}

// AuthResult is what register and login hand back to the transport layer
type AuthResult struct {
	User models.User
	Pair models.TokenPair
}

type AuthService struct {
	token   *tokenmanager.TokenManager
	hasher  PasswordHasher
	storage repository.Storage

	// Hash compared against when login hits an unknown email, so both
	// failure paths cost one bcrypt verification and timing stays flat
	decoyHash string
}

func NewService(cfg Config, token *tokenmanager.TokenManager, storage repository.Storage) (*AuthService, error) {
	if token == nil || storage == nil {
		return nil, errors.New("token manager and storage must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("error while preparing decoy hash. Err: %w", err)
	}

	return &AuthService{
		token:     token,
		hasher:    hasher,
		storage:   storage,
		decoyHash: decoy,
	}, nil
}

// Register creates a user and issues the first token pair.
// Role is an explicit parameter: the single-tenant deployment passes
// models.RoleAdmin at the handler, nothing below assumes it
func (s *AuthService) Register(ctx context.Context, email string, password string, name string, role string) (AuthResult, error) {
	var result AuthResult

	if len(password) < minPasswordLen {
		return result, fmt.Errorf("%w: need at least %d characters", apperrors.ErrPasswordTooShort, minPasswordLen)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return result, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	err = s.storage.InTx(ctx, func(st repository.Storage) error {
		user, err := st.User().CreateUser(ctx, email, name, role, hash)
		if err != nil {
			return err
		}

		pair, err := s.issuePair(ctx, st, user.ID, user.Role)
		if err != nil {
			return err
		}

		result = AuthResult{User: user, Pair: pair}
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}

	return result, nil
}

// Login verifies credentials and issues a fresh token pair.
// Unknown email and wrong password are indistinguishable to the caller
func (s *AuthService) Login(ctx context.Context, email string, password string) (AuthResult, error) {
	var result AuthResult

	user, lookupErr := s.storage.User().GetUserByEmail(ctx, email)
	if lookupErr != nil && !errors.Is(lookupErr, apperrors.ErrUserNotFound) {
		// Infrastructure failure, not a credential failure
		return result, fmt.Errorf("error while fetching user. Err: %w", lookupErr)
	}

	hash := user.HashedPassword
	if lookupErr != nil {
		hash = s.decoyHash
	}

	compareErr := s.hasher.Compare(hash, password)
	if lookupErr != nil || compareErr != nil {
		return result, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, s.storage, user.ID, user.Role)
	if err != nil {
		return result, fmt.Errorf("token could not be generated. Err: %w", err)
	}

	return AuthResult{User: user, Pair: pair}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued in one transaction. A replayed token fails even while its
// signature is still valid, because the ledger entry is already revoked
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	identity, err := s.token.ParseRefresh(refresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	err = s.storage.InTx(ctx, func(st repository.Storage) error {
		// Conditional revoke: of concurrent rotations of one token only
		// one sees the entry non-revoked, the rest fail here
		if err := st.Refresh().Revoke(ctx, tokenmanager.Hash(refresh)); err != nil {
			return err
		}

		pair, err = s.issuePair(ctx, st, identity.UserID, identity.Role)
		return err
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	return pair, nil
}

// Logout revokes the ledger entry matching the token.
// Unknown and already revoked tokens succeed the same way, so the endpoint
// does not reveal whether a token ever existed
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	return s.storage.Refresh().RevokeIfPresent(ctx, tokenmanager.Hash(refresh))
}

// Authenticate verifies a bearer access token and returns the identity it
// carries. Pure function of the token and the access secret: access tokens
// are not revocable mid-lifetime, their short TTL bounds the blast radius
func (s *AuthService) Authenticate(ctx context.Context, access string) (tokenmanager.Identity, error) {
	return s.token.ParseAccess(access)
}

func (s *AuthService) issuePair(ctx context.Context, st repository.Storage, userID uuid.UUID, role string) (models.TokenPair, error) {
	access, err := s.token.SignAccess(userID, role)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := s.token.SignRefresh(userID, role)
	if err != nil {
		return models.TokenPair{}, err
	}

	err = st.Refresh().Record(ctx, models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenmanager.Hash(refresh.Value),
		CreatedAt: time.Now().Truncate(time.Second),
		ExpiresAt: refresh.ExpiresAt,
		Revoked:   false,
	})
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

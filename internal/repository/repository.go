package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/akozyrev/folio/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If a user with the email exists already has to return apperrors.ErrEmailTaken
	CreateUser(ctx context.Context, email string, name string, role string, hashedPassword string) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// RefreshToken ledger interface
// Entries hold SHA-256 hashes of raw tokens and are never deleted: rotation
// and logout only flip the revoked flag, which preserves the audit trail
type RefreshTokenRepo interface {
	// Record a ledger entry for a newly issued token
	Record(ctx context.Context, token models.RefreshToken) error

	// Find a non-revoked entry by token hash
	// Expiry is not filtered here: the signed token claim is the source of
	// truth for expiry and is checked before the ledger is consulted
	FindActive(ctx context.Context, tokenHash string) (models.RefreshToken, error)

	// Revoke the entry with the hash if it is still active.
	// Must be conditional: if the entry is already revoked (or unknown) it
	// returns apperrors.ErrRefreshTokenRevoked / ErrRefreshTokenNotFound, so
	// two concurrent rotations of one token cannot both succeed
	Revoke(ctx context.Context, tokenHash string) error

	// Revoke the matching entry if present; unknown hashes are a silent no-op
	// so logout never leaks whether a token ever existed
	RevokeIfPresent(ctx context.Context, tokenHash string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, p models.Project) (models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, id uuid.UUID) (models.Project, error)
	AddComment(ctx context.Context, id uuid.UUID, c models.ProjectComment) (models.Project, error)
}

type PortfolioRepo interface {
	// Get the single portfolio document
	// Must return apperrors.ErrPortfolioNotFound when none exists yet
	Get(ctx context.Context) (models.Portfolio, error)

	// Insert or fully replace the single document
	Upsert(ctx context.Context, p models.Portfolio) (models.Portfolio, error)
}

type ContactRepo interface {
	Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID) (models.ContactMessage, error)
	MarkAllRead(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Storage aggregates all repositories over one connection or transaction
type Storage interface {
	User() UserRepo
	Refresh() RefreshTokenRepo
	Project() ProjectRepo
	Portfolio() PortfolioRepo
	Contact() ContactRepo

	// Run fn with a Storage bound to a single transaction.
	// Commit if fn returns nil, rollback otherwise
	InTx(ctx context.Context, fn func(Storage) error) error
}

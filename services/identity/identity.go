// Package identity hides password hashing, reset tokens and access tokens
// behind one Provider used by the auth service.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	models "LoveForTennis/models/postgres"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenStore keeps reset tokens until they are used or expire.
type TokenStore interface {
	SaveResetToken(ctx context.Context, tokenHash, email string, ttl time.Duration) error
	// TakeResetToken returns and deletes the entry in one step.
	TakeResetToken(ctx context.Context, tokenHash string) (email string, found bool, err error)
}

type Provider interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	IssueResetToken(ctx context.Context, user *models.User) (string, error)
	// ConsumeResetToken validates a token for the email and invalidates it.
	ConsumeResetToken(ctx context.Context, email, token string) (bool, error)
	IssueAccessToken(user *models.User, roles []string) (string, error)
	ParseAccessToken(token string) (*Claims, error)
}

type Options struct {
	JWTSecret     string
	AccessTTL     time.Duration
	ResetTokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type DefaultProvider struct {
	tokens TokenStore
	opts   Options
}

func NewProvider(tokens TokenStore, opts Options) *DefaultProvider {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.AccessTTL == 0 {
		opts.AccessTTL = time.Hour
	}
	if opts.ResetTokenTTL == 0 {
		opts.ResetTokenTTL = time.Hour
	}
	return &DefaultProvider{tokens: tokens, opts: opts}
}

func (p *DefaultProvider) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.opts.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (p *DefaultProvider) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (p *DefaultProvider) IssueResetToken(ctx context.Context, user *models.User) (string, error) {
	token := uuid.NewString()
	if err := p.tokens.SaveResetToken(ctx, hashToken(token), user.Email, p.opts.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

func (p *DefaultProvider) ConsumeResetToken(ctx context.Context, email, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	stored, found, err := p.tokens.TakeResetToken(ctx, hashToken(token))
	if err != nil {
		return false, fmt.Errorf("read reset token: %w", err)
	}
	return found && stored == models.NormalizeEmail(email), nil
}

// Only the digest of a token is persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

var ErrInvalidToken = errors.New("invalid token")

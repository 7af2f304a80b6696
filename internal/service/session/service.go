package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
)

const tokenBytes = 32

type Service interface {
	// Issue creates a session for the user and returns the clear token. The
	// token is never stored; only its digest is.
	Issue(ctx context.Context, userID uuid.UUID) (string, *domain.Session, error)
	// Authenticate returns nil, nil for absent, malformed, unknown, revoked
	// and expired tokens alike.
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
	Revoke(ctx context.Context, token string) error
}

type service struct {
	sessionRepo repository.SessionRepository
	ttl         time.Duration
	now         func() time.Time
}

func NewService(sessionRepo repository.SessionRepository, ttl time.Duration) Service {
	return &service{
		sessionRepo: sessionRepo,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *service) Issue(ctx context.Context, userID uuid.UUID) (string, *domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	sess := &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: HashToken(token),
		ExpiresAt: s.now().Add(s.ttl),
	}

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	return token, sess, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if !wellFormed(token) {
		return nil, nil
	}
	return s.sessionRepo.GetIdentityByTokenHash(ctx, HashToken(token))
}

func (s *service) Revoke(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if !wellFormed(token) {
		return nil
	}
	return s.sessionRepo.DeleteByTokenHash(ctx, HashToken(token))
}

func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func wellFormed(token string) bool {
	if len(token) != tokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"github.com/MuxN4/linkup/internal/repository/redis"
	"gorm.io/gorm"
)

// IdentityService bridges the external identity provider to internal user
// records. It is the only component that creates users.
type IdentityService struct {
	repo  *mysql.UserRepository
	cache *redis.IdentityCache // nil when redis is not configured
}

func NewIdentityService(db *gorm.DB, cache *redis.IdentityCache) *IdentityService {
	return &IdentityService{
		repo:  &mysql.UserRepository{DB: db},
		cache: cache,
	}
}

// ResolveOrCreate maps the provider's claims to a user record, creating one
// on first sight. Concurrent first-sight calls race on the external_id
// unique index; the loser's insert is a no-op and it reads the winner's row.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, claims *pkg.IdentityClaims) (*model.User, error) {
	externalID := claims.ExternalID()
	if externalID == "" {
		return nil, fmt.Errorf("%w: empty external identity", pkg.ErrUnauthenticated)
	}

	if user, err := s.repo.FindByExternalID(ctx, externalID); err == nil {
		s.warmCache(ctx, externalID, user.ID)
		return user, nil
	} else if !pkg.IsNotFound(err) {
		return nil, storeErr("identity resolve", err)
	}

	handle := strings.TrimSpace(claims.Handle)
	if handle == "" {
		handle = emailLocalPart(claims.Email)
	}
	if handle == "" {
		return nil, fmt.Errorf("%w: no handle and no email to derive one from", pkg.ErrInvalidOperation)
	}
	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = handle
	}

	user := &model.User{
		ExternalID: externalID,
		Handle:     handle,
		Name:       name,
		AvatarURL:  claims.AvatarURL,
	}
	if err := s.repo.CreateIdempotent(ctx, user); err != nil && !pkg.IsDuplicateKey(err) {
		return nil, storeErr("identity create", err)
	}
	if user.ID == 0 {
		// The insert was swallowed by a unique index. Either another caller
		// created this identity first (fine, read it back) or the handle is
		// taken by a different identity (a real conflict).
		existing, err := s.repo.FindByExternalID(ctx, externalID)
		if pkg.IsNotFound(err) {
			return nil, fmt.Errorf("%w: handle %q already taken", pkg.ErrConflict, handle)
		}
		if err != nil {
			return nil, storeErr("identity re-read", err)
		}
		user = existing
	}
	s.warmCache(ctx, externalID, user.ID)
	return user, nil
}

// CurrentUserID returns the internal id for the presented external
// identity. No session ("" externalID) is (0, nil), not an error. A session
// whose record is missing is an integrity violation: resolution should have
// materialized the row already.
func (s *IdentityService) CurrentUserID(ctx context.Context, externalID string) (uint64, error) {
	if externalID == "" {
		return 0, nil
	}
	if s.cache != nil {
		if id, err := s.cache.Get(ctx, externalID); err == nil {
			return id, nil
		}
	}
	user, err := s.repo.FindByExternalID(ctx, externalID)
	if pkg.IsNotFound(err) {
		return 0, fmt.Errorf("%w: no user record for resolved identity", pkg.ErrUnauthenticated)
	}
	if err != nil {
		return 0, storeErr("identity lookup", err)
	}
	s.warmCache(ctx, externalID, user.ID)
	return user.ID, nil
}

func (s *IdentityService) warmCache(ctx context.Context, externalID string, userID uint64) {
	if s.cache != nil {
		_ = s.cache.Put(ctx, externalID, userID)
	}
}

func emailLocalPart(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return ""
}

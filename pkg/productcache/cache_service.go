package productcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
)

const (
	// baseTTL is one day; per-source TTLs are multiples of it.
	baseTTL = 24 * time.Hour
	// minTTL keeps the "TTL is always positive" invariant even for
	// zero-confidence external entries.
	minTTL = 1 * time.Hour

	freshConfidenceFloor = 0.8
	stalePenalty         = 0.2
	staleConfidenceFloor = 0.3
)

type (
	// CacheService is the time-boxed product info store keyed by
	// (barcode, user).
	CacheService interface {
		Get(ctx context.Context, barcode string, userID string) (*domain.ProductInfo, bool, error)
		Put(ctx context.Context, userID string, info *domain.ProductInfo) error
		Invalidate(ctx context.Context, barcode string, userID string) error
		Cleanup(ctx context.Context) (int64, error)
		Optimize(ctx context.Context) (int64, int64, error)
	}

	cacheService struct {
		cacheRepository CacheRepository
		now             func() time.Time
	}
)

func NewCacheService(cacheRepository CacheRepository, now func() time.Time) CacheService {
	if now == nil {
		now = time.Now
	}
	return &cacheService{
		cacheRepository: cacheRepository,
		now:             now,
	}
}

// Get returns the latest live entry and whether it is fresh enough to serve
// directly. A snapshot that fails to decode counts as a miss, not an error.
func (s *cacheService) Get(ctx context.Context, barcode string, userID string) (*domain.ProductInfo, bool, error) {
	entry, err := s.cacheRepository.GetLatest(ctx, barcode, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, domain.ErrCacheMiss
		}
		return nil, false, err
	}

	if !entry.ExpiresAt.After(s.now()) {
		return nil, false, domain.ErrCacheMiss
	}

	var info domain.ProductInfo
	if err := json.Unmarshal([]byte(entry.Snapshot), &info); err != nil {
		return nil, false, domain.ErrCacheMiss
	}

	return &info, IsFresh(entry.Source, entry.Confidence), nil
}

func (s *cacheService) Put(ctx context.Context, userID string, info *domain.ProductInfo) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	snapshot, err := json.Marshal(info)
	if err != nil {
		return err
	}

	now := s.now()
	entry := &entities.ProductCache{
		ID:         uuid.New(),
		Barcode:    info.Barcode,
		UserID:     userUUID,
		Snapshot:   string(snapshot),
		Source:     info.Source,
		Confidence: info.Confidence,
		ExpiresAt:  now.Add(ComputeTTL(info.Source, info.Confidence)),
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	return s.cacheRepository.Upsert(ctx, entry)
}

func (s *cacheService) Invalidate(ctx context.Context, barcode string, userID string) error {
	return s.cacheRepository.Delete(ctx, barcode, userID)
}

// Cleanup removes expired rows.
func (s *cacheService) Cleanup(ctx context.Context) (int64, error) {
	return s.cacheRepository.DeleteExpired(ctx, s.now())
}

// Optimize removes expired rows and collapses any duplicated keys down to
// their most recent row.
func (s *cacheService) Optimize(ctx context.Context) (int64, int64, error) {
	expired, err := s.cacheRepository.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, 0, err
	}
	collapsed, err := s.cacheRepository.CollapseDuplicates(ctx)
	if err != nil {
		return expired, 0, err
	}
	return expired, collapsed, nil
}

// ComputeTTL derives an entry lifetime from where the data came from and how
// trustworthy it is. Local and manual entries live a full week; catalog
// entries scale with confidence.
func ComputeTTL(source string, confidence float64) time.Duration {
	var ttl time.Duration
	switch source {
	case domain.SourceLocal, domain.SourceManual:
		ttl = 7 * baseTTL
	case domain.SourceCosmos:
		ttl = time.Duration((1 + confidence) * float64(baseTTL))
	case domain.SourceOpenFood:
		ttl = time.Duration(confidence * float64(baseTTL))
	default:
		ttl = baseTTL
	}

	if ttl < minTTL {
		ttl = minTTL
	}
	return ttl
}

// IsFresh reports whether a live entry can be served without penalty. Local
// and manual data never goes stale while live; external data must clear the
// confidence floor.
func IsFresh(source string, confidence float64) bool {
	if source == domain.SourceLocal || source == domain.SourceManual {
		return true
	}
	return confidence >= freshConfidenceFloor
}

// PenalizeStale discounts an entry served as a last-resort fallback. The
// returned copy has its confidence reduced but never below the floor.
func PenalizeStale(info *domain.ProductInfo) *domain.ProductInfo {
	penalized := *info
	penalized.Confidence -= stalePenalty
	if penalized.Confidence < staleConfidenceFloor {
		penalized.Confidence = staleConfidenceFloor
	}
	return &penalized
}

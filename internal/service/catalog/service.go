package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/cache"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"

	keyBranches = "branches"
)

// Service справочники для публичных эндпоинтов.
// Результаты кэшируются; ошибки кэша не влияют на ответ.
type Service struct {
	catalogRepo CatalogRepository
	cache       Cache
	ttl         time.Duration
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	catalogRepo CatalogRepository,
	cache Cache,
	ttl time.Duration,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		cache:       cache,
		ttl:         ttl,
		metrics:     metrics,
		logger:      logger,
	}
}

// ListBranches возвращает все филиалы
func (s *Service) ListBranches(ctx context.Context) ([]models.BranchResponse, error) {
	var resp []models.BranchResponse
	if s.fromCache(ctx, keyBranches, &resp) {
		return resp, nil
	}

	branches, err := s.catalogRepo.ListBranches(ctx)
	if err != nil {
		s.logger.Error("ListBranches: repository error: %v", err)
		return nil, domain.Persistence(err, "failed to fetch branches")
	}

	resp = models.FromDomainBranches(branches)
	s.toCache(ctx, keyBranches, resp)

	s.logger.Info("ListBranches: fetched %d branches", len(resp))
	return resp, nil
}

// ListCapsters возвращает мастеров филиала
func (s *Service) ListCapsters(ctx context.Context, branchID int64) ([]models.CapsterResponse, error) {
	key := fmt.Sprintf("branches:%d:capsters", branchID)

	var resp []models.CapsterResponse
	if s.fromCache(ctx, key, &resp) {
		return resp, nil
	}

	branch, err := s.getBranch(ctx, "ListCapsters", branchID)
	if err != nil {
		return nil, err
	}

	capsters, err := s.catalogRepo.ListCapstersByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("ListCapsters: repository error for branch=%d: %v", branchID, err)
		return nil, domain.Persistence(err, "failed to fetch capsters for this branch")
	}

	resp = models.FromDomainCapsters(capsters, branch)
	s.toCache(ctx, key, resp)

	s.logger.Info("ListCapsters: fetched %d capsters for branch=%d", len(resp), branchID)
	return resp, nil
}

// ListServices возвращает услуги филиала, включая общие
func (s *Service) ListServices(ctx context.Context, branchID int64) ([]models.ServiceResponse, error) {
	key := fmt.Sprintf("branches:%d:services", branchID)

	var resp []models.ServiceResponse
	if s.fromCache(ctx, key, &resp) {
		return resp, nil
	}

	if _, err := s.getBranch(ctx, "ListServices", branchID); err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.ListServicesByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("ListServices: repository error for branch=%d: %v", branchID, err)
		return nil, domain.Persistence(err, "failed to fetch services for this branch")
	}

	resp = models.FromDomainServices(services)
	s.toCache(ctx, key, resp)

	s.logger.Info("ListServices: fetched %d services for branch=%d", len(resp), branchID)
	return resp, nil
}

func (s *Service) getBranch(ctx context.Context, op string, branchID int64) (*domain.Branch, error) {
	branch, err := s.catalogRepo.GetBranchByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBranchNotFound) {
			s.logger.Warn("%s: branch id=%d not found", op, branchID)
			return nil, domain.NotFound("branch not found").WithDetail("branch_id", branchID)
		}
		s.logger.Error("%s: failed to get branch id=%d: %v", op, branchID, err)
		return nil, domain.Persistence(err, "failed to load branch")
	}
	return branch, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		s.metrics.ObserveCache(cacheHit)
		return true
	case errors.Is(err, cache.ErrMiss):
		s.metrics.ObserveCache(cacheMiss)
	default:
		s.metrics.ObserveCache(cacheError)
		s.logger.Warn("cache: failed to get key=%s: %v", key, err)
	}
	return false
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.metrics.ObserveCache(cacheError)
		s.logger.Warn("cache: failed to set key=%s: %v", key, err)
	}
}

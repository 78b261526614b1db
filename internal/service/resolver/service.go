package resolver

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
)

// References проверенные ссылки бронирования
type References struct {
	Branch     *domain.Branch
	Capster    *domain.Capster
	Services   []*domain.Service // в порядке запроса, без повторов
	ServiceIDs []int64
}

// Service проверяет существование филиала, мастера и услуг.
// Всегда читает из БД напрямую, без кэша.
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса проверки ссылок
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Resolve проверяет филиал, мастера в этом филиале и набор услуг
func (s *Service) Resolve(ctx context.Context, branchID, capsterID int64, serviceIDs []int64) (*References, error) {
	branch, err := s.ResolveBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	capster, err := s.ResolveCapster(ctx, capsterID, branchID)
	if err != nil {
		return nil, err
	}

	services, err := s.ResolveServices(ctx, branchID, serviceIDs)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(services))
	for i, svc := range services {
		ids[i] = svc.ID
	}

	return &References{
		Branch:     branch,
		Capster:    capster,
		Services:   services,
		ServiceIDs: ids,
	}, nil
}

// ResolveBranch получает филиал по ID
func (s *Service) ResolveBranch(ctx context.Context, branchID int64) (*domain.Branch, error) {
	branch, err := s.catalogRepo.GetBranchByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBranchNotFound) {
			s.logger.Warn("Resolve: branch id=%d not found", branchID)
			return nil, domain.NotFound("branch not found").WithDetail("branch_id", branchID)
		}
		s.logger.Error("Resolve: failed to get branch id=%d: %v", branchID, err)
		return nil, domain.Persistence(err, "failed to load branch")
	}
	return branch, nil
}

// ResolveCapster получает мастера; мастер другого филиала считается ненайденным
func (s *Service) ResolveCapster(ctx context.Context, capsterID, branchID int64) (*domain.Capster, error) {
	capster, err := s.catalogRepo.GetCapsterInBranch(ctx, capsterID, branchID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCapsterNotFound) {
			s.logger.Warn("Resolve: capster id=%d not found in branch id=%d", capsterID, branchID)
			return nil, domain.NotFound("capster not found in this branch").
				WithDetail("capster_id", capsterID).
				WithDetail("branch_id", branchID)
		}
		s.logger.Error("Resolve: failed to get capster id=%d: %v", capsterID, err)
		return nil, domain.Persistence(err, "failed to load capster")
	}
	return capster, nil
}

// ResolveServices получает все услуги одним запросом и сообщает, каких не хватает
func (s *Service) ResolveServices(ctx context.Context, branchID int64, serviceIDs []int64) ([]*domain.Service, error) {
	requested := uniqueIDs(serviceIDs)

	found, err := s.catalogRepo.GetServicesByIDs(ctx, requested, &branchID)
	if err != nil {
		s.logger.Error("Resolve: failed to get services %v: %v", requested, err)
		return nil, domain.Persistence(err, "failed to load services")
	}

	byID := make(map[int64]*domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	missing := make([]int64, 0)
	services := make([]*domain.Service, 0, len(requested))
	for _, id := range requested {
		svc, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		services = append(services, svc)
	}

	if len(missing) > 0 {
		s.logger.Warn("Resolve: services %v not found in branch id=%d", missing, branchID)
		return nil, domain.NotFound("services not found: %s", domain.FormatIDs(missing)).
			WithDetail("missing_service_ids", missing)
	}

	return services, nil
}

// uniqueIDs убирает повторы, сохраняя порядок первого появления
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/catalog"
	"github.com/avdeevsv/GBS-QueueService/internal/service/catalog/models"
)

// Service сервис каталога пакетов
type Service struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ListActive возвращает активные пакеты в порядке позиций
func (s *Service) ListActive(ctx context.Context) (*models.PackageListResponse, error) {
	packages, err := s.catalogRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPackageList(packages), nil
}

// Reorder присваивает пакетам позиции по порядку их ID в запросе.
// Все обновления выполняются в одной транзакции.
func (s *Service) Reorder(ctx context.Context, req *models.ReorderRequest) error {
	if len(req.PackageIDs) == 0 {
		s.logger.Warn("Reorder: empty package list")
		return fmt.Errorf("%w: package list is empty", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(req.PackageIDs))
	for _, id := range req.PackageIDs {
		if id == "" {
			return fmt.Errorf("%w: empty package id", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			s.logger.Warn("Reorder: duplicate package id=%s", id)
			return fmt.Errorf("%w: duplicate package id", ErrInvalidInput)
		}
		seen[id] = struct{}{}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.catalogRepo.Reorder(txCtx, req.PackageIDs)
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPackageNotFound) {
			s.logger.Warn("Reorder: one of the packages not found")
			return ErrPackageNotFound
		}
		s.logger.Error("Reorder: repository error: %v", err)
		return fmt.Errorf("%w: Reorder - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reorder: repositioned %d packages", len(req.PackageIDs))
	return nil
}

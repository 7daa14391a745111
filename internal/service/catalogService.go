package service

import (
	"context"

	repository "github.com/solomonczyk/autoservice/internal/database/postgres"
	"github.com/solomonczyk/autoservice/internal/entity"
)

type catalogService struct {
	serviceRepo repository.ServiceRepository
	shopRepo    repository.ShopRepository
}

func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	shopRepo repository.ShopRepository,
) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		shopRepo:    shopRepo,
	}
}

func (s *catalogService) CreateService(ctx context.Context, req *CreateServiceRequest) (*entity.Service, error) {
	if req.DurationMinutes <= 0 {
		return nil, entity.ErrInvalidInput
	}

	svc := &entity.Service{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		BasePrice:       req.BasePrice,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) GetServices(ctx context.Context) ([]*entity.Service, error) {
	return s.serviceRepo.GetAll(ctx)
}

// DeleteService отклоняет удаление услуги, на которую ссылаются записи
func (s *catalogService) DeleteService(ctx context.Context, id int64) error {
	return s.serviceRepo.Delete(ctx, id)
}

func (s *catalogService) GetShops(ctx context.Context) ([]*entity.Shop, error) {
	return s.shopRepo.GetAll(ctx)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solomonczyk/autoservice/internal/entity"
)

func newTestCatalogService() (CatalogService, *fakeServiceRepo) {
	services := newFakeServiceRepo(
		&entity.Service{ID: 1, Name: "Замена масла", DurationMinutes: 60, BasePrice: 2500},
		&entity.Service{ID: 2, Name: "Шиномонтаж", DurationMinutes: 30, BasePrice: 1500},
	)
	shops := newFakeShopRepo(testShop())
	return NewCatalogService(services, shops), services
}

// TestCreateServiceValidation тестирует проверку длительности услуги
func TestCreateServiceValidation(t *testing.T) {
	svc, _ := newTestCatalogService()

	created, err := svc.CreateService(context.Background(), &CreateServiceRequest{
		Name: "Диагностика", DurationMinutes: 90, BasePrice: 4000,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.CreateService(context.Background(), &CreateServiceRequest{
		Name: "Мгновенная услуга", DurationMinutes: 0,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = svc.CreateService(context.Background(), &CreateServiceRequest{
		Name: "Отрицательная услуга", DurationMinutes: -30,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

// TestDeleteServiceGuard тестирует защиту от удаления услуги с записями
func TestDeleteServiceGuard(t *testing.T) {
	svc, services := newTestCatalogService()

	// на услугу 1 ссылаются записи — удаление отклоняется, услуга остаётся
	services.inUse[1] = true
	err := svc.DeleteService(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrServiceInUse)

	remaining, err := svc.GetServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	// свободная услуга удаляется
	require.NoError(t, svc.DeleteService(context.Background(), 2))
	remaining, err = svc.GetServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	// несуществующая услуга
	err = svc.DeleteService(context.Background(), 99)
	assert.ErrorIs(t, err, entity.ErrServiceNotFound)
}

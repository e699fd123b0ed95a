package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Upsert(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func TestProductUsecase_ListProducts_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("List", mock.Anything).Return([]model.Product{{ID: "1"}, {ID: "2"}}, nil)

	out, err := uc.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Len(t, out.Items, 2)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_DBError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("List", mock.Anything).Return(nil, errors.New("boom"))

	_, err := uc.ListProducts(context.Background())
	assertErrContains(t, err, "db error")
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestProductUsecase_GetProductDetail_InvalidID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.GetProductDetail(context.Background(), "  ")
	assertErrContains(t, err, "invalid product id")
}

func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, "99").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(context.Background(), "99")
	assertErrContains(t, err, "not found")
	assertStatus(t, err, http.StatusNotFound)
}

func TestProductUsecase_GetProductDetail_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, "1").Return(model.Product{ID: "1", Name: "Teak Chair"}, nil)

	p, err := uc.GetProductDetail(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, "Teak Chair", p.Name)

	pRepo.AssertExpectations(t)
}

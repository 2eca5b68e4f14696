package usecase

import (
	"context"
	"net/http"
	"testing"

	"cosmeshop/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateCategory_DuplicateNameConflicts(t *testing.T) {
	categories := new(mockCategoryRepo)
	uc := NewCategoryUsecase(categories)

	categories.On("ExistsByName", mock.Anything, "Skincare").Return(true, nil)

	_, err := uc.Create(context.Background(), adminActor(), CategoryInput{Name: "Skincare"})

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestCreateCategory_TrimsName(t *testing.T) {
	categories := new(mockCategoryRepo)
	uc := NewCategoryUsecase(categories)

	categories.On("ExistsByName", mock.Anything, "Makeup").Return(false, nil)
	categories.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == "Makeup" && c.IsActive
	})).Return(model.Category{ID: 1, Name: "Makeup", IsActive: true}, nil)

	got, err := uc.Create(context.Background(), adminActor(), CategoryInput{Name: "  Makeup  "})

	assert.NoError(t, err)
	assert.Equal(t, "Makeup", got.Name)
}

func TestUpdateCategory_SameNameSkipsDupCheck(t *testing.T) {
	categories := new(mockCategoryRepo)
	uc := NewCategoryUsecase(categories)

	existing := model.Category{ID: 1, Name: "Skincare", IsActive: true}
	categories.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	categories.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Update(context.Background(), adminActor(), 1,
		CategoryInput{Name: "Skincare", Description: "updated"})

	assert.NoError(t, err)
	categories.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
}

func TestCreateBrand_DuplicateNameConflicts(t *testing.T) {
	brands := new(mockBrandRepo)
	uc := NewBrandUsecase(brands)

	brands.On("ExistsByName", mock.Anything, "Lumière").Return(true, nil)

	_, err := uc.Create(context.Background(), adminActor(), BrandInput{Name: "Lumière"})

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestDeleteCategory_SoftDelete(t *testing.T) {
	categories := new(mockCategoryRepo)
	uc := NewCategoryUsecase(categories)

	categories.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1, IsActive: true}, nil)
	categories.On("SetActive", mock.Anything, int64(1), false).Return(nil)

	err := uc.Delete(context.Background(), adminActor(), 1)

	assert.NoError(t, err)
	categories.AssertCalled(t, "SetActive", mock.Anything, int64(1), false)
}

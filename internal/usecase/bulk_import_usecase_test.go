package usecase

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"cosmeshop/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"name", "description", "price", "discount_price", "stock_quantity"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func newImportUsecase() (*BulkImportUsecase, *MockProductRepository) {
	products := new(MockProductRepository)
	return NewBulkImportUsecase(products, new(mockCategoryRepo), new(mockBrandRepo)), products
}

func TestImportProducts_MixedRows(t *testing.T) {
	uc, products := newImportUsecase()

	buf := buildImportSheet(t, [][]interface{}{
		{"Rose Hand Cream", "moisturizing", "1200.00", "", "30"},
		{"", "name missing", "500", "", "10"},
		{"Broken Price", "", "abc", "", "10"},
		{"Aloe Gel", "", "900", "700", "50"},
	})

	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.IsActive
	})).Return(model.Product{ID: 1}, nil)

	result, err := uc.ImportProducts(context.Background(), adminActor(), buf)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Failed)

	// 行ごとにエラー理由が残る
	assert.False(t, result.Rows[1].Success)
	assert.Contains(t, result.Rows[1].Error, "name")
	assert.False(t, result.Rows[2].Success)
	assert.Contains(t, result.Rows[2].Error, "price")

	products.AssertNumberOfCalls(t, "Create", 2)
}

func TestImportProducts_NonAdminForbidden(t *testing.T) {
	uc, _ := newImportUsecase()

	_, err := uc.ImportProducts(context.Background(), customer(7), strings.NewReader("whatever"))

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusForbidden, he.Status)
}

func TestImportProducts_NotAnXlsx(t *testing.T) {
	uc, _ := newImportUsecase()

	_, err := uc.ImportProducts(context.Background(), adminActor(), strings.NewReader("this is not xlsx"))

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestImportProducts_MissingRequiredColumn(t *testing.T) {
	uc, _ := newImportUsecase()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"description", "stock_quantity"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"no name or price", "5"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := uc.ImportProducts(context.Background(), adminActor(), &buf)

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Contains(t, he.Message, "name")
}

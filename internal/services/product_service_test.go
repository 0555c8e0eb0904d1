// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/cache"
	"github.com/georgeY2002/E-Commerce/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
	ctx     context.Context
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	// Disabled cache: every method short-circuits on a nil client
	s.service = NewProductService(s.db, &cache.Cache{})
	s.ctx = context.Background()
}

func (s *ProductServiceTestSuite) TestCreateSyncsStockFlag() {
	stock := 0
	product, err := s.service.CreateProduct(s.ctx, &CreateProductRequest{
		Name:          "Display Model",
		Description:   "showcase only",
		Price:         2500,
		Category:      models.CategoryWatches,
		Brand:         "Testbrand",
		Material:      "Gold",
		StockQuantity: &stock,
	})
	s.Require().NoError(err)
	s.Equal(0, product.StockQuantity)
	s.False(product.InStock)
}

func (s *ProductServiceTestSuite) TestCreateDefaultsToSingleUnit() {
	product, err := s.service.CreateProduct(s.ctx, &CreateProductRequest{
		Name:        "One Off",
		Description: "unique piece",
		Price:       9000,
		Category:    models.CategoryJewelry,
		Brand:       "Testbrand",
		Material:    "Platinum",
	})
	s.Require().NoError(err)
	s.Equal(1, product.StockQuantity)
	s.True(product.InStock)
}

func (s *ProductServiceTestSuite) TestCreateRejectsBadCategory() {
	_, err := s.service.CreateProduct(s.ctx, &CreateProductRequest{
		Name:        "Mystery Item",
		Description: "???",
		Price:       10,
		Category:    "gadgets",
		Brand:       "Testbrand",
		Material:    "Plastic",
	})
	s.ErrorIs(err, ErrValidation)
}

func (s *ProductServiceTestSuite) TestUpdateStockKeepsFlagConsistent() {
	product := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	zero := 0
	updated, err := s.service.UpdateProduct(s.ctx, product.ID, &UpdateProductRequest{
		StockQuantity: &zero,
	})
	s.Require().NoError(err)
	s.Equal(0, updated.StockQuantity)
	s.False(updated.InStock)

	ten := 10
	updated, err = s.service.UpdateProduct(s.ctx, product.ID, &UpdateProductRequest{
		StockQuantity: &ten,
	})
	s.Require().NoError(err)
	s.Equal(10, updated.StockQuantity)
	s.True(updated.InStock)
}

func (s *ProductServiceTestSuite) TestListFiltersByCategoryAndSearch() {
	createTestProduct(s.T(), s.db, "Submariner Diver", 8500, 5)
	ring := createTestProduct(s.T(), s.db, "Solitaire Ring", 4000, 5)
	s.Require().NoError(s.db.Model(ring).Update("category", models.CategoryJewelry).Error)

	watches, err := s.service.ListProducts(s.ctx, ProductFilter{Category: "watches"})
	s.Require().NoError(err)
	s.Equal(int64(1), watches.Total)

	found, err := s.service.ListProducts(s.ctx, ProductFilter{Search: "diver"})
	s.Require().NoError(err)
	s.Equal(int64(1), found.Total)

	_, err = s.service.ListProducts(s.ctx, ProductFilter{Category: "spaceships"})
	s.ErrorIs(err, ErrValidation)
}

func (s *ProductServiceTestSuite) TestListFiltersByFeatured() {
	star := createTestProduct(s.T(), s.db, "Featured Piece", 100, 5)
	s.Require().NoError(s.db.Model(star).Update("featured", true).Error)
	createTestProduct(s.T(), s.db, "Ordinary Piece", 100, 5)

	featured := true
	result, err := s.service.ListProducts(s.ctx, ProductFilter{Featured: &featured})
	s.Require().NoError(err)
	s.Equal(int64(1), result.Total)
}

func (s *ProductServiceTestSuite) TestGetUnknownProduct() {
	_, err := s.service.GetProduct(s.ctx, uuid.New())
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestDeleteUnknownProduct() {
	err := s.service.DeleteProduct(s.ctx, uuid.New())
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestVariantStockPerColor() {
	product := createTestProduct(s.T(), s.db, "Runner Sneaker", 700, 5)
	s.Require().NoError(s.db.Model(product).Update("variants", models.VariantList{
		{
			Color: "black",
			Sizes: []models.VariantSize{
				{Size: "42", InStock: true},
				{Size: "43", InStock: false},
			},
		},
		{
			Color: "white",
			Sizes: []models.VariantSize{
				{Size: "42", InStock: false},
			},
		},
	}).Error)

	stock, err := s.service.GetVariantStock(s.ctx, product.ID)
	s.Require().NoError(err)
	s.True(stock.InStock)
	s.Require().Len(stock.Variants, 2)
	s.True(stock.Variants[0].InStock)
	s.False(stock.Variants[1].InStock)
}

func (s *ProductServiceTestSuite) TestVariantStockGatedByProductStock() {
	product := createTestProduct(s.T(), s.db, "Runner Sneaker", 700, 0)
	s.Require().NoError(s.db.Model(product).Update("variants", models.VariantList{
		{
			Color: "black",
			Sizes: []models.VariantSize{{Size: "42", InStock: true}},
		},
	}).Error)

	stock, err := s.service.GetVariantStock(s.ctx, product.ID)
	s.Require().NoError(err)
	s.False(stock.InStock)
	s.Require().Len(stock.Variants, 1)
	s.False(stock.Variants[0].InStock)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

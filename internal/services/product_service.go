// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/cache"
	"github.com/georgeY2002/E-Commerce/internal/models"
	"github.com/georgeY2002/E-Commerce/internal/utils"
)

const productCachePrefix = "products:"

type ProductService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewProductService(db *gorm.DB, c *cache.Cache) *ProductService {
	return &ProductService{db: db, cache: c}
}

type ProductFilter struct {
	Category string
	Featured *bool
	Search   string
	utils.PaginationParams
}

type CreateProductRequest struct {
	Name               string             `json:"name" validate:"required,max=255"`
	Description        string             `json:"description" validate:"required"`
	Price              float64            `json:"price" validate:"required,gt=0"`
	OriginalPrice      *float64           `json:"originalPrice,omitempty"`
	DiscountPercentage *float64           `json:"discountPercentage,omitempty"`
	Category           models.Category    `json:"category" validate:"required"`
	Brand              string             `json:"brand" validate:"required,max=100"`
	Material           string             `json:"material" validate:"required,max=100"`
	Dimensions         *models.Dimensions `json:"dimensions,omitempty"`
	Weight             float64            `json:"weight"`
	Images             []string           `json:"images"`
	StockQuantity      *int               `json:"stockQuantity,omitempty"`
	Featured           bool               `json:"featured"`
	Variants           models.VariantList `json:"variants,omitempty"`
}

type UpdateProductRequest struct {
	Name               *string            `json:"name,omitempty"`
	Description        *string            `json:"description,omitempty"`
	Price              *float64           `json:"price,omitempty"`
	OriginalPrice      *float64           `json:"originalPrice,omitempty"`
	DiscountPercentage *float64           `json:"discountPercentage,omitempty"`
	Category           *models.Category   `json:"category,omitempty"`
	Brand              *string            `json:"brand,omitempty"`
	Material           *string            `json:"material,omitempty"`
	Dimensions         *models.Dimensions `json:"dimensions,omitempty"`
	Weight             *float64           `json:"weight,omitempty"`
	Images             []string           `json:"images,omitempty"`
	StockQuantity      *int               `json:"stockQuantity,omitempty"`
	Featured           *bool              `json:"featured,omitempty"`
	Variants           models.VariantList `json:"variants,omitempty"`
}

// productListing is the cacheable shape of a catalog page. PaginationResult
// holds its data as interface{}, which does not survive a JSON round trip
// with its concrete type, so the cache stores this instead.
type productListing struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// ListProducts returns a filtered, sorted, paginated slice of the catalog.
// Results are cached per filter combination; any product mutation or stock
// movement invalidates the whole listing namespace.
func (s *ProductService) ListProducts(ctx context.Context, filter ProductFilter) (*utils.PaginationResult, error) {
	filter.Normalize()
	featured := "any"
	if filter.Featured != nil {
		featured = fmt.Sprintf("%t", *filter.Featured)
	}
	cacheKey := fmt.Sprintf("%slist:%s:%s:%s:%s:%s:%d:%d",
		productCachePrefix, filter.Category, featured, filter.Search,
		filter.Sort, filter.Order, filter.Page, filter.Limit)

	var cached productListing
	if s.cache.Get(ctx, cacheKey, &cached) {
		result := utils.CreatePaginationResult(cached.Products, cached.Total, filter.PaginationParams)
		return &result, nil
	}

	query := s.db.Model(&models.Product{})

	if filter.Category != "" {
		if !models.Category(filter.Category).Valid() {
			return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, filter.Category)
		}
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSorts := []string{"created_at", "price", "name", "rating"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSorts)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	s.cache.Set(ctx, cacheKey, productListing{Products: products, Total: total})

	result := utils.CreatePaginationResult(products, total, filter.PaginationParams)
	return &result, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	cacheKey := productCachePrefix + "id:" + id.String()

	var cached models.Product
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.cache.Set(ctx, cacheKey, product)
	return &product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, req.Category)
	}

	stock := 1
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
		}
		stock = *req.StockQuantity
	}

	product := &models.Product{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		OriginalPrice:      req.OriginalPrice,
		DiscountPercentage: req.DiscountPercentage,
		Category:           req.Category,
		Brand:              req.Brand,
		Material:           req.Material,
		Dimensions:         req.Dimensions,
		Weight:             req.Weight,
		Images:             pq.StringArray(req.Images),
		StockQuantity:      stock,
		Featured:           req.Featured,
		Variants:           req.Variants,
	}
	product.SyncStockFlag()

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.cache.InvalidatePrefix(ctx, productCachePrefix)

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"category":   product.Category,
	}).Info("Product created")

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.DiscountPercentage != nil {
		product.DiscountPercentage = req.DiscountPercentage
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, *req.Category)
		}
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Material != nil {
		product.Material = *req.Material
	}
	if req.Dimensions != nil {
		product.Dimensions = req.Dimensions
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Images != nil {
		product.Images = pq.StringArray(req.Images)
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
		}
		product.StockQuantity = *req.StockQuantity
		product.SyncStockFlag()
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Variants != nil {
		product.Variants = req.Variants
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.InvalidatePrefix(ctx, productCachePrefix)

	return &product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := s.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	s.cache.InvalidatePrefix(ctx, productCachePrefix)

	logrus.WithField("product_id", id).Info("Product deleted")
	return nil
}

// VariantStock is the per-color availability view for a single product.
type VariantStock struct {
	ProductID uuid.UUID           `json:"productId"`
	InStock   bool                `json:"inStock"`
	Variants  []ColorAvailability `json:"variants"`
}

type ColorAvailability struct {
	Color   string               `json:"color"`
	InStock bool                 `json:"inStock"`
	Sizes   []models.VariantSize `json:"sizes"`
}

// GetVariantStock reports availability per color variant. A color counts as
// in stock when any of its sizes is, and only while the product itself has
// stock on hand.
func (s *ProductService) GetVariantStock(ctx context.Context, id uuid.UUID) (*VariantStock, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &VariantStock{
		ProductID: product.ID,
		InStock:   product.InStock,
	}

	for _, variant := range product.Variants {
		colorInStock := false
		for _, size := range variant.Sizes {
			if size.InStock {
				colorInStock = true
				break
			}
		}
		result.Variants = append(result.Variants, ColorAvailability{
			Color:   variant.Color,
			InStock: product.InStock && colorInStock,
			Sizes:   variant.Sizes,
		})
	}

	return result, nil
}

// InvalidateListings drops cached product listings. Called by the order flow
// after stock movements so availability shown to shoppers stays current.
func (s *ProductService) InvalidateListings(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, productCachePrefix)
}

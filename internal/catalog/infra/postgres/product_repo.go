package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clothstore/storefront/internal/catalog/app"
	"github.com/clothstore/storefront/internal/catalog/domain"
)

type productRecord struct {
	ID            string `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Category      string `gorm:"index"`
	Color         string
	Size          string
	Material      string
	Brand         string
	SKU           string `gorm:"column:sku"`
	Description   string
	Price         float64 `gorm:"not null"`
	ImageURL      string  `gorm:"column:image_url"`
	ImageURLs     string  `gorm:"column:image_urls"` // pipe-separated, small bounded lists
	StockQuantity int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (productRecord) TableName() string { return "products" }

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Migrate creates or updates the products table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&productRecord{})
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	rec := toRecord(p)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Product{}, err
	}
	return toDomain(rec), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var rec productRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return toDomain(rec), nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	rec := toRecord(p)
	res := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"name":           rec.Name,
		"category":       rec.Category,
		"color":          rec.Color,
		"size":           rec.Size,
		"material":       rec.Material,
		"brand":          rec.Brand,
		"sku":            rec.SKU,
		"description":    rec.Description,
		"price":          rec.Price,
		"image_url":      rec.ImageURL,
		"image_urls":     rec.ImageURLs,
		"stock_quantity": rec.StockQuantity,
		"is_active":      rec.IsActive,
		"updated_at":     rec.UpdatedAt,
	})
	if res.Error != nil {
		return domain.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Product{}, app.ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomain(rec))
	}
	return out, nil
}

func toRecord(p domain.Product) productRecord {
	return productRecord{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Color:         p.Color,
		Size:          p.Size,
		Material:      p.Material,
		Brand:         p.Brand,
		SKU:           p.SKU,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		ImageURLs:     strings.Join(p.ImageURLs, "|"),
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toDomain(rec productRecord) domain.Product {
	var urls []string
	if rec.ImageURLs != "" {
		urls = strings.Split(rec.ImageURLs, "|")
	}
	return domain.Product{
		ID:            rec.ID,
		Name:          rec.Name,
		Category:      rec.Category,
		Color:         rec.Color,
		Size:          rec.Size,
		Material:      rec.Material,
		Brand:         rec.Brand,
		SKU:           rec.SKU,
		Description:   rec.Description,
		Price:         rec.Price,
		ImageURL:      rec.ImageURL,
		ImageURLs:     urls,
		StockQuantity: rec.StockQuantity,
		IsActive:      rec.IsActive,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

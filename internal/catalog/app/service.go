package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/clothstore/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" || p.Price < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// UpdateProduct replaces the stored product. The path id wins over whatever
// id the payload carries.
func (s *Service) UpdateProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	if strings.TrimSpace(p.Name) == "" || p.Price < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListProducts loads the catalog and runs it through the filter/sort engine.
func (s *Service) ListProducts(ctx context.Context, criteria domain.Criteria) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return criteria.Apply(products), nil
}

// MatchProducts serves the stylist helper: products matching a category and
// color pair.
func (s *Service) MatchProducts(ctx context.Context, category, color string) ([]domain.Product, error) {
	category = strings.TrimSpace(category)
	color = strings.TrimSpace(color)
	if category == "" && color == "" {
		return nil, ErrInvalidInput
	}

	c := domain.NewCriteria()
	if category != "" {
		c.ToggleCategory(category)
	}
	c.Color = color

	return s.ListProducts(ctx, c)
}

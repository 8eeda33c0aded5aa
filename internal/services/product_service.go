package services

import (
	"context"
	"fmt"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/rs/zerolog/log"
)

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductUpdate carries the fields of a full product update. A nil
// Availability keeps the stored value.
type ProductUpdate struct {
	Name         string
	Price        float64
	Availability *bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new, available product.
func (s *ProductService) CreateProduct(ctx context.Context, name string, price float64) (*models.Product, error) {
	product := &models.Product{
		Name:         name,
		Price:        price,
		Availability: true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(models.NewProductEvent(models.ProductCreated, product.ID, product))
	return product, nil
}

// UpdateProduct overwrites the mutable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = update.Name
	product.Price = update.Price
	if update.Availability != nil {
		product.Availability = *update.Availability
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(models.NewProductEvent(models.ProductUpdated, product.ID, product))
	return product, nil
}

// ToggleAvailability flips the availability of an existing product.
func (s *ProductService) ToggleAvailability(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAvailability(ctx, id, !product.Availability); err != nil {
		return nil, fmt.Errorf("toggle availability: %w", err)
	}

	// Reload so the response carries the timestamps the store just wrote.
	product, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(models.NewProductEvent(models.ProductAvailabilityChanged, product.ID, product))
	return product, nil
}

// DeleteProduct deletes an existing product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(models.NewProductEvent(models.ProductDeleted, id, nil))
	return nil
}

// publish never fails the caller; a lost event is only logged.
func (s *ProductService) publish(event models.ProductEvent) {
	if s.publisher == nil {
		log.Debug().Str("event", string(event.Type)).Msg("no event publisher configured, skipping")
		return
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		log.Warn().Err(err).
			Str("event", string(event.Type)).
			Uint("product_id", event.ProductID).
			Msg("failed to publish product event")
	}
}

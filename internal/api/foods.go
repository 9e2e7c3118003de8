package api

import (
	"context"
	"fmt"

	"gorestaurant/internal/models"
)

const foodsPath = "/foods"

// FoodsService wraps the /foods collection endpoints
type FoodsService struct {
	client *Client
}

// NewFoodsService creates a typed view of the /foods resource
func NewFoodsService(client *Client) *FoodsService {
	return &FoodsService{client: client}
}

// createRequest is the create payload; the server assigns the id
type createRequest struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// List retrieves every plate in server order
func (s *FoodsService) List(ctx context.Context) ([]models.FoodPlate, error) {
	resp, err := s.client.Get(ctx, foodsPath)
	if err != nil {
		return nil, err
	}

	foods := []models.FoodPlate{}
	if err := resp.Decode(&foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// Create sends a new plate and returns the stored record
func (s *FoodsService) Create(ctx context.Context, plate models.FoodPlate) (models.FoodPlate, error) {
	resp, err := s.client.Post(ctx, foodsPath, createRequest{
		Name:        plate.Name,
		Image:       plate.Image,
		Price:       plate.Price,
		Description: plate.Description,
		Available:   plate.Available,
	})
	if err != nil {
		return models.FoodPlate{}, err
	}

	var created models.FoodPlate
	if err := resp.Decode(&created); err != nil {
		return models.FoodPlate{}, err
	}
	return created, nil
}

// Update replaces the plate stored under id
func (s *FoodsService) Update(ctx context.Context, id uint, plate models.FoodPlate) (models.FoodPlate, error) {
	resp, err := s.client.Put(ctx, foodPath(id), plate)
	if err != nil {
		return models.FoodPlate{}, err
	}

	var updated models.FoodPlate
	if err := resp.Decode(&updated); err != nil {
		return models.FoodPlate{}, err
	}
	return updated, nil
}

// Delete removes the plate stored under id. The response body is ignored.
func (s *FoodsService) Delete(ctx context.Context, id uint) error {
	_, err := s.client.Delete(ctx, foodPath(id))
	return err
}

func foodPath(id uint) string {
	return fmt.Sprintf("%s/%d", foodsPath, id)
}

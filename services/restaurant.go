package services

import (
	"context"

	"food-orders/db"
	"food-orders/models"
)

func ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(location, ''), COALESCE(description, ''), rating,
			COALESCE(image, ''), is_active
		FROM restaurants
		WHERE is_active
		ORDER BY rating DESC, id`,
	)
	if err != nil {
		return nil, storageErr("list restaurants", err)
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Location, &r.Description, &r.Rating,
			&r.Image, &r.Active); err != nil {
			return nil, storageErr("scan restaurant", err)
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

type CreateRestaurantInput struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
}

func (in CreateRestaurantInput) validate() error {
	if in.Name == "" {
		return errInvalidInput("name is required")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return errInvalidInput("rating must be between 0 and 5")
	}
	return nil
}

func CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (*models.Restaurant, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO restaurants (name, location, description, rating, image)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, NULLIF($5, ''))
		RETURNING id`,
		in.Name, in.Location, in.Description, in.Rating, in.Image,
	).Scan(&id)
	if err != nil {
		return nil, storageErr("create restaurant", err)
	}
	return &models.Restaurant{
		ID: id, Name: in.Name, Location: in.Location, Description: in.Description,
		Rating: in.Rating, Image: in.Image, Active: true,
	}, nil
}

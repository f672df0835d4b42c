// models/service.go
package models

import "time"

// Service is a catalog item representing an offered detailing service.
type Service struct {
	ID          string    `bson:"_id" json:"_id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Duration    int       `bson:"duration" json:"duration"` // minutes
	ImageURL    string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// ServiceInput is the admin payload for creating a catalog entry.
type ServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	ImageURL    string  `json:"imageUrl"`
}

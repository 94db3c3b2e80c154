package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateGeneric = "generic product created successfully"
	MessageSuccessGetGenerics   = "generic products retrieved successfully"
	MessageSuccessMatchGeneric  = "generic product matched successfully"

	MessageFailedCreateGeneric = "failed to create generic product"
	MessageFailedGetGenerics   = "failed to retrieve generic products"
	MessageFailedMatchGeneric  = "failed to match generic product"

	ErrGenericProductNotFound = errors.New("generic product not found")
	ErrNoGenericMatch         = errors.New("no generic product cleared the matching threshold")
)

type (
	CreateGenericProductRequest struct {
		Name     string `json:"name" validate:"required,max=255"`
		Category string `json:"category" validate:"omitempty,max=100"`
	}

	GenericProductResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Category  string    `json:"category,omitempty"`
		IsDefault bool      `json:"is_default"`
		CreatedAt time.Time `json:"created_at"`
	}

	MatchGenericProductRequest struct {
		Name     string `json:"name" validate:"required"`
		Category string `json:"category"`
	}
)

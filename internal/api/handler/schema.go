package handler

import (
	"time"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the central error handler.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminView struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  adminView `json:"user"`
}

// --- Admin management ---

type approveResponse struct {
	Message string        `json:"message"`
	Admin   *domain.Admin `json:"admin"`
}

// --- Products ---

type productRequest struct {
	Name        string         `json:"name"        validate:"required"`
	Price       *float64       `json:"price"       validate:"required,gte=0"`
	Image       string         `json:"image"       validate:"required"`
	Category    string         `json:"category"    validate:"required"`
	Tags        domain.TagList `json:"tags"`
	Description string         `json:"description" validate:"required"`
	InStock     *bool          `json:"inStock"`
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// --- Store status ---

type storeStatusRequest struct {
	Status string `json:"status"`
}

type storeStatusResponse struct {
	Status    domain.StoreState `json:"status"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type storeStatusUpdatedResponse struct {
	Message string            `json:"message"`
	Status  domain.StoreState `json:"status"`
}

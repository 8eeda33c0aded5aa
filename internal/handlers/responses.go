package handlers

import "productapi/internal/models"

// Client-facing messages.
const (
	MsgProductNotFound = "Producto no encontrado"
	MsgProductDeleted  = "Producto Eliminado"
	MsgInternalError   = "Hubo un error"
)

// ProductResponse wraps a single product.
type ProductResponse struct {
	Data models.Product `json:"data"`
}

// ProductListResponse wraps a list of products.
type ProductListResponse struct {
	Data []models.Product `json:"data"`
}

// MessageResponse wraps a confirmation message.
type MessageResponse struct {
	Data string `json:"data"`
}

// ErrorResponse carries a single error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ProductRequest documents the body accepted on create and update. Handlers
// read the validated input rather than binding this type, so prices sent
// as numeric strings are accepted too.
type ProductRequest struct {
	Name         string  `json:"name" example:"Monitor Curvo 49 Pulgadas"`
	Price        float64 `json:"price" example:"399"`
	Availability *bool   `json:"availability,omitempty" example:"true"`
}

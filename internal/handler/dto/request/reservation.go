package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" binding:"required"`
	Adults       int       `json:"adults" binding:"required,min=1"`
	Children     int       `json:"children" binding:"min=0"`
	Datetime     time.Time `json:"datetime" binding:"required"`
}

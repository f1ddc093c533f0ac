package api

import (
	"errors"
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/lock"
	"tablebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	booking commands.BookingCommands
}

func NewReservationHandler(booking commands.BookingCommands) *ReservationHandler {
	return &ReservationHandler{booking: booking}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.booking.CreateReservation(c.Request.Context(), commands.CreateReservationParams{
		RestaurantID: req.RestaurantID,
		Adults:       req.Adults,
		Children:     req.Children,
		At:           req.Datetime,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
		case errors.Is(err, commands.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid reservation request",
			})
		case errors.Is(err, commands.ErrNoAvailability):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No tables available for the requested slot",
			})
		case errors.Is(err, lock.ErrConcurrentReservation):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Another reservation for this slot is being processed",
			})
		case errors.Is(err, commands.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "The requested slot was just taken",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateResult(result))
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := h.booking.CancelReservation(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

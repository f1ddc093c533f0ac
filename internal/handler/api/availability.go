package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

func (h *AvailabilityHandler) AvailableDates(c *gin.Context) {
	restaurantID, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	var req reqdto.AvailableDatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	from, err := time.ParseInLocation(dateLayout, req.From, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid from date",
		})
		return
	}
	to, err := time.ParseInLocation(dateLayout, req.To, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid to date",
		})
		return
	}

	dates, err := h.availability.AvailableDates(c.Request.Context(), restaurantID, from, to, req.Adults, req.Children)
	if err != nil {
		abortAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailableDatesResponse{Dates: dates})
}

func (h *AvailabilityHandler) AvailableTimes(c *gin.Context) {
	restaurantID, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	var req reqdto.AvailableTimesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date",
		})
		return
	}

	day, err := h.availability.AvailableTimes(c.Request.Context(), restaurantID, date, req.Adults, req.Children)
	if err != nil {
		abortAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDayAvailability(day))
}

func (h *AvailabilityHandler) Check(c *gin.Context) {
	restaurantID, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.availability.Check(c.Request.Context(), queries.CheckAvailabilityRequest{
		RestaurantID: restaurantID,
		At:           req.Datetime,
		Adults:       req.Adults,
		Children:     req.Children,
	})
	if err != nil {
		abortAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func restaurantIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func abortAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Restaurant not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

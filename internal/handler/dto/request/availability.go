package request

import "time"

// Availability query parameters; dates use 2006-01-02.
type AvailableDatesRequest struct {
	From     string `form:"from" binding:"required"`
	To       string `form:"to" binding:"required"`
	Adults   int    `form:"adults" binding:"required,min=1"`
	Children int    `form:"children" binding:"min=0"`
}

type AvailableTimesRequest struct {
	Date     string `form:"date" binding:"required"`
	Adults   int    `form:"adults" binding:"required,min=1"`
	Children int    `form:"children" binding:"min=0"`
}

type CheckAvailabilityRequest struct {
	Datetime time.Time `form:"datetime" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Adults   int       `form:"adults" binding:"required,min=1"`
	Children int       `form:"children" binding:"min=0"`
}

package response

import "tablebook/internal/usecase/queries"

type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}

type AvailableTimesResponse struct {
	Date   string                 `json:"date"`
	Closed bool                   `json:"closed"`
	Times  []queries.TimeSlotView `json:"times"`
}

func FromDayAvailability(d *queries.DayAvailability) AvailableTimesResponse {
	return AvailableTimesResponse{
		Date:   d.Date,
		Closed: d.Closed,
		Times:  d.Times,
	}
}

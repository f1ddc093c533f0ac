package response

import (
	"time"

	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID             uuid.UUID           `json:"id"`
	StartsAt       time.Time           `json:"starts_at"`
	PartySize      int                 `json:"party_size"`
	AllocationType string              `json:"allocation_type"`
	Tables         []queries.TableView `json:"tables"`
}

func FromCreateResult(r *commands.CreateReservationResult) ReservationResponse {
	return ReservationResponse{
		ID:             r.ReservationID,
		StartsAt:       r.StartsAt,
		PartySize:      r.PartySize,
		AllocationType: r.AllocationType,
		Tables:         r.Tables,
	}
}

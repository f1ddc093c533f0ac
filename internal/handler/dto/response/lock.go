package response

import (
	"time"

	"tablebook/internal/lock"
)

type LockResponse struct {
	Key        string    `json:"key"`
	Token      string    `json:"token"`
	AcquiredAt time.Time `json:"acquired_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type LockListResponse struct {
	Locks []LockResponse `json:"locks"`
}

func FromLockInfos(infos []lock.Info) LockListResponse {
	out := LockListResponse{Locks: make([]LockResponse, len(infos))}
	for i, info := range infos {
		out.Locks[i] = LockResponse{
			Key:        info.Key,
			Token:      info.Token,
			AcquiredAt: info.AcquiredAt,
			ExpiresAt:  info.ExpiresAt,
		}
	}
	return out
}

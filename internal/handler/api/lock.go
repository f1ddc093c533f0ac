package api

import (
	"net/http"

	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/lock"

	"github.com/gin-gonic/gin"
)

// LockHandler exposes the operator view of the slot locks. Listing and
// force-unlocking are diagnostics for stuck locks, not part of the booking
// flow.
type LockHandler struct {
	locks *lock.Manager
}

func NewLockHandler(locks *lock.Manager) *LockHandler {
	return &LockHandler{locks: locks}
}

func (h *LockHandler) ListLocks(c *gin.Context) {
	infos := h.locks.ActiveLocks(c.Request.Context())
	c.JSON(http.StatusOK, resdto.FromLockInfos(infos))
}

func (h *LockHandler) GetLock(c *gin.Context) {
	key := c.Param("key")
	locked, err := h.locks.IsLocked(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":    key,
		"locked": locked,
	})
}

func (h *LockHandler) ForceUnlock(c *gin.Context) {
	key := c.Param("key")
	forced, err := h.locks.ForceUnlock(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if !forced {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Lock not held",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

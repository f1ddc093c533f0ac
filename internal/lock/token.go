package lock

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewToken builds a globally unique owner token. Host, pid, goroutine id
// and timestamp make tokens traceable in operator output; the uuid tail
// guarantees uniqueness even for the same goroutine within one nanosecond.
func NewToken() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%d-%d-%d-%s",
		host, os.Getpid(), goroutineID(), time.Now().UnixNano(), uuid.NewString()[:8])
}

// goroutineID parses the numeric id from the runtime stack header
// ("goroutine 12 [running]:"). Worth it here: the id lets release refusals
// name the competing owner in logs.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

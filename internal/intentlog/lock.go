package intentlog

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrLocked is returned when another live process holds the drain lock.
var ErrLocked = errors.New("intent log is locked by another process")

var findProcessFunc = ps.FindProcess

// AcquireLock takes the drain lockfile so two processes cannot retry the
// same intents concurrently. A lockfile whose PID no longer maps to a live
// process is treated as stale and replaced. The returned release func
// removes the lock.
func AcquireLock(path string) (release func(), err error) {
	if data, readErr := os.ReadFile(path); readErr == nil {
		pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if parseErr == nil && pidAlive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		// Stale lock from a dead process.
		_ = os.Remove(path)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return func() { _ = os.Remove(path) }, nil
}

func pidAlive(pid int) bool {
	proc, err := findProcessFunc(pid)
	return err == nil && proc != nil
}

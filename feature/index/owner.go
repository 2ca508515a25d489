package index

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// processOwner names the running process as "host/pid".
func processOwner() string {
	return fmt.Sprintf("%s/%d", hostname(), os.Getpid())
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

// processAlive reports whether pid is a live process on this host.
var processAlive = func(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// ownerGone reports whether the process recorded in owner has certainly exited.
// A run owned by another host cannot be checked and is never gone. A run without
// an owner was written before owners were recorded and is always gone.
func ownerGone(owner string) bool {
	if owner == "" {
		return true
	}
	host, pidText, ok := strings.Cut(owner, "/")
	if !ok || host != hostname() {
		return false
	}
	pid, err := strconv.Atoi(pidText)
	if err != nil {
		return true
	}
	return !processAlive(pid)
}

package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrInstanceRunning indicates another coach already holds the lock.
var ErrInstanceRunning = errors.New("another coach instance is running")

const (
	minPort = 20000
	maxPort = 39999
)

// InstanceGuard holds the single-instance lock for the desktop coach.
// Only one coach per session drives the speakers at a time.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", PortFor(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstanceRunning, err)
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound address, or "" once released.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// PortFor maps appName onto a stable port in [minPort, maxPort].
func PortFor(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}

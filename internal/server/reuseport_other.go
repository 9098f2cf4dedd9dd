//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package server

import (
	"errors"
	"syscall"
)

func reusePortControl(network, address string, c syscall.RawConn) error {
	return errors.New("reuse_port is not supported on this platform")
}

//go:build unix

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// terminalSize returns the dimensions of the terminal attached to fd.
func terminalSize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("reading terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

//go:build !unix

package main

import "errors"

func terminalSize(fd int) (width, height int, err error) {
	return 0, 0, errors.New("reading terminal size is not supported on this platform")
}

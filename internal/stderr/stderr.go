//go:build unix

// Package stderr captures output that C audio libraries (ALSA in
// particular) write straight to file descriptor 2, where it would
// corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe and calls handle with every non-empty
// line written to it. It must run before the audio device is opened.
// On error nothing is redirected and the program can continue.
func Start(handle func(line string)) error {
	mu.Lock()
	defer mu.Unlock()
	if origStderr >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})

	go func(r *os.File, done chan struct{}) {
		defer close(done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				handle(line)
			}
		}
	}(r, done)

	return nil
}

// WriteOriginal writes to the terminal's stderr, bypassing capture.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		fd = int(os.Stderr.Fd())
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores fd 2 and waits until every captured line was handled.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if origStderr < 0 {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	// fd 2 no longer refers to the pipe; closing the last write end
	// lets the reader drain and exit.
	pipeWrite.Close()
	<-done
	pipeRead.Close()
}

//go:build !unix

package stderr

import "os"

func Start(func(line string)) error {
	return nil
}

func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func Stop() {}

// Package util holds small helpers shared by the commands and views.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify formats a count with the matching noun form: "1 frame", "57 frames".
func Quantify(count int, singular, plural string) string {
	noun := plural
	if count == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", count, noun)
}

// TerminalSize reports the size of the terminal attached to stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FileStem strips the directory and extension: scripts/decades.lua becomes decades.
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PrintErasable writes msg on the current line and returns a function blanking it.
func PrintErasable(msg string) (erase func()) {
	fmt.Fprint(os.Stdout, "\r"+msg)
	return func() {
		fmt.Fprint(os.Stdout, "\r"+strings.Repeat(" ", len(msg))+"\r")
	}
}

// Ignore calls f and drops its error. Meant for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

func Clamp[T constraints.Ordered](v, lower, upper T) T {
	return min(max(v, lower), upper)
}

// Max returns the largest item, or the zero value when there are none.
func Max[T constraints.Ordered](items ...T) (largest T) {
	for i, item := range items {
		if i == 0 || item > largest {
			largest = item
		}
	}
	return
}

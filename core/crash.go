package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

var crashScreen atomic.Pointer[tcell.Screen]

// RegisterScreen sets the screen HandleCrash restores before printing; nil unregisters
func RegisterScreen(s tcell.Screen) {
	if s == nil {
		crashScreen.Store(nil)
		return
	}
	crashScreen.Store(&s)
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state before anything hits stderr
	if s := crashScreen.Swap(nil); s != nil {
		(*s).Fini()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

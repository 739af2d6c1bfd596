// Package terminal puts the controlling tty into raw mode and exposes a
// small ring-buffered keyboard reader for the VM's blocking/non-blocking
// key instructions (RCHR, RSTR, IPOLL). The ring-buffer-plus-status-bit
// shape is adapted from the teacher's MMIO terminal device
// (_teacher_ref/terminal_io.go): a fixed-size byte ring with head/tail/len
// counters, read from a background goroutine so KbReady never blocks.
package terminal

import (
	"bufio"
	"os"
	"sync"

	"golang.org/x/term"
)

// Keyboard polls stdin in raw mode and buffers bytes so Ready can answer
// instantly and ReadBlocking only blocks when the ring is genuinely
// empty.
type Keyboard struct {
	mu      sync.Mutex
	buf     [1024]byte
	head    int
	tail    int
	len     int
	restore func()
	avail   chan struct{}
}

// Open enters raw mode on stdin (if it is a terminal) and starts the
// background reader. Call Close to restore cooked mode.
func Open() (*Keyboard, error) {
	k := &Keyboard{avail: make(chan struct{}, 1)}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		k.restore = func() { _ = term.Restore(fd, old) }
	} else {
		k.restore = func() {}
	}
	go k.pump()
	return k, nil
}

func (k *Keyboard) pump() {
	r := bufio.NewReader(os.Stdin)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		k.push(b)
	}
}

func (k *Keyboard) push(b byte) {
	k.mu.Lock()
	if k.len < len(k.buf) {
		k.buf[k.tail] = b
		k.tail = (k.tail + 1) % len(k.buf)
		k.len++
	}
	k.mu.Unlock()
	select {
	case k.avail <- struct{}{}:
	default:
	}
}

// Ready reports whether a byte is available without consuming it.
func (k *Keyboard) Ready() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.len > 0
}

// ReadBlocking consumes and returns the next byte, blocking until one
// arrives.
func (k *Keyboard) ReadBlocking() byte {
	for {
		k.mu.Lock()
		if k.len > 0 {
			b := k.buf[k.head]
			k.head = (k.head + 1) % len(k.buf)
			k.len--
			k.mu.Unlock()
			return b
		}
		k.mu.Unlock()
		<-k.avail
	}
}

// Close restores cooked mode.
func (k *Keyboard) Close() {
	if k.restore != nil {
		k.restore()
	}
}

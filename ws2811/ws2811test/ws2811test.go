// Package ws2811test is meant to be used to test drivers over a fake
// full-duplex port.
package ws2811test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/coreman2200/ws2811spi/ws2811"
)

// Record implements ws2811.FullDuplex and records every byte accepted.
type Record struct {
	sync.Mutex
	// W is the bytes accepted so far.
	W []byte
	// FailAt is the 1-based Send call that returns Err. 0 never fails.
	FailAt int
	// Err is returned by the failing Send.
	Err error
	// Busy is how many times Send returns ws2811.ErrWouldBlock before
	// accepting each byte.
	Busy int

	// Sends counts Send calls that did not return ws2811.ErrWouldBlock.
	Sends int
	// Attempts counts every Send call.
	Attempts int
	// Reads counts Read calls.
	Reads int

	busy    int
	pending bool
}

// Send implements ws2811.FullDuplex.
func (r *Record) Send(b byte) error {
	r.Lock()
	defer r.Unlock()
	r.Attempts++
	if r.busy < r.Busy {
		r.busy++
		return ws2811.ErrWouldBlock
	}
	r.busy = 0
	r.Sends++
	if r.FailAt != 0 && r.Sends == r.FailAt {
		return r.Err
	}
	r.W = append(r.W, b)
	r.pending = true
	return nil
}

// Read implements ws2811.FullDuplex. It echoes the last byte sent.
func (r *Record) Read() (byte, error) {
	r.Lock()
	defer r.Unlock()
	r.Reads++
	if !r.pending {
		return 0, ws2811.ErrWouldBlock
	}
	r.pending = false
	return r.W[len(r.W)-1], nil
}

// Reset clears the recorded trace and counters, keeping the fault settings.
func (r *Record) Reset() {
	r.Lock()
	defer r.Unlock()
	r.W = nil
	r.Sends = 0
	r.Attempts = 0
	r.Reads = 0
	r.busy = 0
	r.pending = false
}

// Decode converts an encoded stream back to the channel bytes it carries.
func Decode(w []byte) ([]byte, error) {
	if len(w)%ws2811.BytesPerChannel != 0 {
		return nil, fmt.Errorf("ws2811test: stream length %d is not a multiple of %d", len(w), ws2811.BytesPerChannel)
	}
	out := make([]byte, 0, len(w)/ws2811.BytesPerChannel)
	for i := 0; i < len(w); i += ws2811.BytesPerChannel {
		var b byte
		for j, s := range w[i : i+ws2811.BytesPerChannel] {
			for _, n := range [2]byte{s >> 4, s & 0xF} {
				b <<= 1
				switch n {
				case 0b1000:
				case 0b1100:
					b |= 1
				default:
					return nil, fmt.Errorf("ws2811test: invalid symbol %04b at byte %d", n, i+j)
				}
			}
		}
		out = append(out, b)
	}
	return out, nil
}

var errTail = errors.New("ws2811test: missing reset gap")

// SplitFrame strips the zero runs a Dev emits around a frame and returns the
// encoded data between them.
func SplitFrame(w []byte, idleHigh bool) ([]byte, error) {
	zeros := make([]byte, ws2811.ResetBytes)
	if idleHigh {
		if !bytes.HasPrefix(w, zeros) {
			return nil, errors.New("ws2811test: missing leading zero run")
		}
		w = w[ws2811.ResetBytes:]
	}
	if !bytes.HasSuffix(w, zeros) {
		return nil, errTail
	}
	return w[:len(w)-ws2811.ResetBytes], nil
}

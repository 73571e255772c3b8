package ws2811

import "errors"

// ErrWouldBlock is returned by a FullDuplex port that cannot accept or
// produce a byte yet. It is never returned by Write.
var ErrWouldBlock = errors.New("ws2811: operation would block")

// FullDuplex is a byte oriented full-duplex serial port, like the transmit
// and receive registers of a microcontroller SPI peripheral.
//
// Both methods may return ErrWouldBlock; any other error is a hard failure.
type FullDuplex interface {
	// Send shifts out one byte.
	Send(b byte) error
	// Read returns the byte shifted in during the last Send.
	Read() (byte, error)
}

// TransportError is the only error returned by Dev.Write. It wraps the port
// error as is.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "ws2811: transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// send spins until p accepts b.
func send(p FullDuplex, b byte) error {
	for {
		err := p.Send(b)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrWouldBlock) {
			return &TransportError{Err: err}
		}
	}
}

package serial

import (
	"io"
)

// Callback is invoked with every byte sent over the link. It
// returns the byte received in exchange, or false if nothing
// answered.
type Callback func(sent uint8) (received uint8, ok bool)

// Printer returns a Callback that writes each sent byte to w as
// a character. Many test ROMs report their results this way.
// Nothing is sent back.
func Printer(w io.Writer) Callback {
	return func(sent uint8) (uint8, bool) {
		_, _ = w.Write([]byte{sent})
		return 0, false
	}
}

// Loopback returns a Callback that echoes every byte back.
func Loopback() Callback {
	return func(sent uint8) (uint8, bool) {
		return sent, true
	}
}

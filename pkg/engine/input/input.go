package input

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin cannot be put into raw mode.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// readByte reads a single byte from stdin in raw mode
func readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return buf[0], err
}

// tryReadArrowKey attempts to read an arrow key escape sequence after ESC.
// A lone ESC reads as "escape".
func tryReadArrowKey() string {
	b2, err := readByte()
	if err != nil {
		return "escape"
	}
	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}
	b3, err := readByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	// Unknown escape sequence - discard it
	return ""
}

// codeForByte names a single raw-mode byte
func codeForByte(b byte) string {
	switch {
	case b == 3:
		return "ctrl_c"
	case b == '\r' || b == '\n':
		return "enter"
	case b == '\t':
		return "tab"
	case b == ' ':
		return "space"
	case b >= 'A' && b <= 'Z':
		return string(rune(b - 'A' + 'a'))
	case b >= 33 && b < 127:
		return string(rune(b))
	default:
		return ""
	}
}

// ReadKey puts the terminal into raw mode, reads one key press and returns its code.
// Unknown keys return an empty code.
func ReadKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(fd, oldState)

	b, err := readByte()
	if err != nil {
		return "", err
	}
	if b == 0x1b {
		return tryReadArrowKey(), nil
	}
	return codeForByte(b), nil
}

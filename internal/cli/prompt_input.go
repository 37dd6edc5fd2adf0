package cli

import (
	"fmt"
	"io"
	"strings"
)

// promptYesNo prints message and reads a y/yes answer. Anything else,
// including EOF, is a no.
func promptYesNo(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprint(out, message)

	text, err := readPromptLine(in)
	if err != nil && text == "" {
		return false
	}
	text = strings.TrimSpace(strings.ToLower(text))
	return text == "y" || text == "yes"
}

// readInputLine reads one line and trims surrounding whitespace.
func readInputLine(in io.Reader) (string, error) {
	line, err := readPromptLine(in)
	return strings.TrimSpace(line), err
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/renato-web/Profluxo/internal/service"
)

func promptYesNoIO(in io.Reader, out io.Writer, message string) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}

	text, err := readPromptLine(in)
	if err != nil && text == "" {
		return false
	}

	switch strings.TrimSpace(strings.ToLower(text)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
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

// lineConfirmer asks on out and reads the answer from in.
func lineConfirmer(in io.Reader, out io.Writer) service.Confirmer {
	return service.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		return promptYesNoIO(in, out, prompt+" [s/N]: "), nil
	})
}

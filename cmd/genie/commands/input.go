package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/genie/internal/adapters/detector" //nolint:depguard // Terminal detection for prompts
	"go.trai.ch/zerr"
)

// secretReader reads passwords from the CLI input. Terminals get a hidden prompt; anything else
// is read line by line.
type secretReader struct {
	in     io.Reader
	prompt io.Writer
	lines  *bufio.Reader
	// plain disables the hidden prompt even on terminals.
	plain bool
}

func newSecretReader(in io.Reader, prompt io.Writer) *secretReader {
	return &secretReader{in: in, prompt: prompt}
}

func (r *secretReader) read(label string) (string, error) {
	if f, ok := r.in.(*os.File); ok && !r.plain && detector.IsInteractive(f) {
		_, _ = fmt.Fprint(r.prompt, label+": ")
		secret, err := detector.ReadSecret(f)
		_, _ = fmt.Fprintln(r.prompt)
		if err != nil {
			return "", zerr.Wrap(err, "failed to read "+label)
		}
		return secret, nil
	}

	if r.lines == nil {
		r.lines = bufio.NewReader(r.in)
	}
	line, err := r.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", zerr.Wrap(err, "failed to read "+label)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Prompt asks yes/no questions on a line based input
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Confirm blocks until a line is read.
// y/yes confirms, n/no declines, an empty line or EOF takes defaultValue,
// everything else declines.
func (p *Prompt) Confirm(message string, defaultValue bool) (bool, error) {
	hint := "[y/N]"
	if defaultValue {
		hint = "[Y/n]"
	}
	if _, err := fmt.Fprintf(p.out, "%s %s: ", message, hint); err != nil {
		return false, errors.Wrap(err, "unable to write prompt")
	}
	answer, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, errors.Wrap(err, "unable to read answer")
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(p.out)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

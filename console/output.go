package console

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Style describes how a line is presented to the operator
type Style int

const (
	Info Style = iota
	Comment
	Warning
)

const reset = "\033[0m"

var colors = map[Style]string{
	Info:    "\033[32m",
	Comment: "\033[33m",
	Warning: "\033[30;43m",
}

// Output writes styled lines, colors are only used on terminals
type Output struct {
	w       io.Writer
	colored bool
}

// NewOutput wraps w, colors are enabled if w is a terminal
func NewOutput(w io.Writer) *Output {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = term.IsTerminal(int(f.Fd()))
	}
	return &Output{w: w, colored: colored}
}

// NewPlainOutput never emits escape sequences
func NewPlainOutput(w io.Writer) *Output {
	return &Output{w: w}
}

func (o *Output) WriteLine(text string, style Style) error {
	if style == Warning {
		text = "[WARNING] " + text
	}
	if o.colored {
		text = colors[style] + text + reset
	}
	_, err := fmt.Fprintln(o.w, text)
	return err
}

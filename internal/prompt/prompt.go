// Package prompt asks the operator yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when input ends before a valid answer was given
var ErrNoAnswer = errors.New("no answer: input closed")

// Console reads answers line by line. Questions block until an answer arrives.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console reading from in and writing questions to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Confirm asks question until the operator answers y/yes or n/no (any case)
func (c *Console) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(c.out, "%s [y/n]: ", question)

		line, err := c.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if err != nil {
			fmt.Fprintln(c.out)
			if errors.Is(err, io.EOF) {
				return false, ErrNoAnswer
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		fmt.Fprintln(c.out, "Please answer y or n.")
	}
}

// Static answers every question the same way without asking
type Static bool

// Confirm returns the fixed answer
func (s Static) Confirm(string) (bool, error) {
	return bool(s), nil
}

package agents

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Human prints each observation and reads one line as the action.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ Agent = (*Human)(nil)

// NewHuman creates a human agent reading actions from in.
func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

func (h *Human) Act(ctx context.Context, observation string) (string, error) {
	fmt.Fprintln(h.out, observation)
	fmt.Fprint(h.out, "> ")
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read action: %w", err)
		}
		return "", io.EOF
	}
	return h.in.Text(), nil
}

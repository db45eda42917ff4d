package emulator

import (
	"bufio"
	"errors"
	"io"
)

// Resumer releases a machine from a debug pause. Resume blocks until
// the operator (or a test harness) allows execution to continue.
type Resumer interface {
	Resume() error
}

// LineResumer resumes when a line of input arrives. End of input
// also resumes.
type LineResumer struct {
	Input io.Reader

	reader *bufio.Reader
}

func (lr *LineResumer) Resume() (err error) {
	if lr.reader == nil {
		lr.reader = bufio.NewReader(lr.Input)
	}

	_, err = lr.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		err = nil
	}

	return
}

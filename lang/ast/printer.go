package ast

import (
	"fmt"
	"io"
)

// Printer pretty-prints expression ASTs, one per line, generalizing the
// teacher's configurable-output Printer to this package's flat Node set.
type Printer struct {
	Output io.Writer
}

// Print writes n's String() form followed by a newline.
func (p *Printer) Print(n Node) error {
	_, err := fmt.Fprintln(p.Output, n.String())
	return err
}

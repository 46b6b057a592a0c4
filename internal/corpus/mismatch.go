package corpus

import (
	"fmt"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Mismatch is reported for a case whose recorded value differs from the computed one
type Mismatch struct {
	Index   int
	Case    Case
	Actual  string
	Encoder string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("case %v (%v): %v expected %q, got %q", m.Index, m.Case, m.Encoder, m.Case.Encoded, m.Actual)
}

// Mismatches extracts all the mismatches from the error returned by Corpus.Check
func Mismatches(err error) []*Mismatch {
	if err == nil {
		return nil
	}

	var errs []error
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.Errors
	} else {
		errs = []error{err}
	}

	res := make([]*Mismatch, 0, len(errs))
	for _, e := range errs {
		var m *Mismatch
		if errors.As(e, &m) {
			res = append(res, m)
		}
	}
	return res
}

package tracker

import "errors"

// ErrIncompleteMonthBlock means the rows of a new month were inserted but
// writing their labels failed, leaving an unlabeled block at the top of the
// sheet that has to be fixed (or deleted) by hand.
var ErrIncompleteMonthBlock = errors.New("month block inserted but labels were not written")

// SetupError wraps failures that leave the session unusable: missing
// configuration or credentials, an unreachable spreadsheet, or a month grid
// that could not be built. Everything else is reported and the menu resumes.
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

func setupErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *SetupError
	if errors.As(err, &se) {
		return err
	}
	return &SetupError{Op: op, Err: err}
}

// IsSetup reports whether err should end the process.
func IsSetup(err error) bool {
	var se *SetupError
	return errors.As(err, &se)
}

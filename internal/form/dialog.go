// Package form holds the mutation dialogs of the panel: the open/submit state
// machine shared by every dialog and the create, edit and delete forms.
package form

import "errors"

var ErrInvalidTransition = errors.New("invalid dialog transition")

type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

// Dialog tracks one modal form. While Submitting it refuses another submit
// and cannot be cancelled; the pending request resolves it with Succeed or
// Fail.
type Dialog struct {
	state State
	err   error
}

func (d *Dialog) State() State { return d.state }

func (d *Dialog) IsOpen() bool { return d.state != Closed }

func (d *Dialog) Submitting() bool { return d.state == Submitting }

// Err is the failure of the last submit, cleared by the next submit.
func (d *Dialog) Err() error { return d.err }

func (d *Dialog) Open() error {
	if d.state != Closed {
		return ErrInvalidTransition
	}
	d.state = Open
	d.err = nil
	return nil
}

func (d *Dialog) Submit() error {
	if d.state != Open {
		return ErrInvalidTransition
	}
	d.state = Submitting
	d.err = nil
	return nil
}

func (d *Dialog) Succeed() error {
	if d.state != Submitting {
		return ErrInvalidTransition
	}
	d.state = Closed
	return nil
}

// Fail returns the dialog to Open so the user can correct and resubmit.
func (d *Dialog) Fail(err error) error {
	if d.state != Submitting {
		return ErrInvalidTransition
	}
	d.state = Open
	d.err = err
	return nil
}

func (d *Dialog) Cancel() error {
	if d.state != Open {
		return ErrInvalidTransition
	}
	d.state = Closed
	d.err = nil
	return nil
}

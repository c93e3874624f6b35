// Package intake implements the symptom and water report forms as small
// state machines: Editing, then Submitting, then Closed.
package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"healthmon/internal/domain"
)

// State is the lifecycle position of a form instance.
type State int

const (
	Editing State = iota
	Submitting
	Closed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Closed:
		return "closed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// NotificationSeverity tells the caller how loudly to announce a result.
type NotificationSeverity string

const (
	SeverityHighPriority NotificationSeverity = "high_priority"
	SeverityNormal       NotificationSeverity = "normal"
)

// Notification is the message emitted when a form closes.
type Notification struct {
	Severity NotificationSeverity `json:"severity"`
	Title    string               `json:"title"`
	Message  string               `json:"message"`
}

// Result is the outcome of a completed submission.
type Result struct {
	Flagged      bool         `json:"flagged"`
	Notification Notification `json:"notification"`
}

// machine holds the state shared by every form type. Field data lives on
// the concrete form and is guarded by mu.
type machine struct {
	mu      sync.Mutex
	state   State
	timeout time.Duration
	result  *Result
}

// State returns the current state.
func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Result returns the submission result once the form is Closed.
func (m *machine) Result() (*Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result, m.result != nil
}

// editable must be called with mu held.
func (m *machine) editable() error {
	switch m.state {
	case Editing:
		return nil
	case Submitting:
		return domain.ErrOperationInFlight
	default:
		return fmt.Errorf("form is %s: %w", m.state, domain.ErrInvalidTransition)
	}
}

// cancel must be called with mu held.
func (m *machine) cancel() error {
	if m.state != Editing {
		return fmt.Errorf("cancel from %s: %w", m.state, domain.ErrInvalidTransition)
	}
	m.state = Cancelled
	return nil
}

// run drives Submitting. validate and flag are called with mu held; sink is
// called without it so reads of the form stay possible while it runs. A nil
// sink error commits the submission even if the deadline passed meanwhile.
func (m *machine) run(ctx context.Context, validate func() error, sink func(context.Context) error, finish func() Result) (*Result, error) {
	m.mu.Lock()
	if err := m.editable(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if err := validate(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.state = Submitting
	m.mu.Unlock()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	err := sink(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = Editing
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", domain.ErrSubmitTimeout, err)
		}
		return nil, err
	}
	res := finish()
	m.result = &res
	m.state = Closed
	return &res, nil
}

func notify(flagged bool, title, flaggedMsg, normalMsg string) Notification {
	if flagged {
		return Notification{Severity: SeverityHighPriority, Title: title, Message: flaggedMsg}
	}
	return Notification{Severity: SeverityNormal, Title: title, Message: normalMsg}
}

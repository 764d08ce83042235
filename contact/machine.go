package contact

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

const (
	// DefaultSiteKey is the public Turnstile site key of the landing page.
	DefaultSiteKey = "0x4AAAAAACZVXJynMwwtsllP"
	// ChallengeScriptURL loads the Turnstile API for explicit rendering.
	ChallengeScriptURL = "https://challenges.cloudflare.com/turnstile/v0/api.js?render=explicit"
)

// ChallengeOptions configures a challenge widget. The callbacks may be
// invoked synchronously from within Execute.
type ChallengeOptions struct {
	SiteKey   string
	Size      string
	OnSuccess func(token string)
	OnExpired func()
	OnError   func()
}

// Challenge is the bot-challenge widget capability.
type Challenge interface {
	// Render creates a widget in container and returns its id. An empty id
	// means the widget is unavailable.
	Render(container string, opts ChallengeOptions) string
	// Reset invalidates the widget's current token.
	Reset(widgetID string)
	// Execute asks the widget for a fresh token, delivered to OnSuccess.
	Execute(widgetID string)
}

// State is a phase of a submission attempt.
type State int

const (
	Idle State = iota
	Validating
	AwaitingChallenge
	Submitting
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case AwaitingChallenge:
		return "awaiting_challenge"
	case Submitting:
		return "submitting"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is the user-facing result of a finished attempt.
type Outcome struct {
	Success bool
	Message string
}

// ReadyToSubmit is the transition out of AwaitingChallenge: a pending attempt
// proceeds once a token is present and no submission is in flight.
func ReadyToSubmit(pending bool, token string, submitting bool) bool {
	return pending && token != "" && !submitting
}

// Machine drives one form instance through
// Idle → Validating → AwaitingChallenge → Submitting → Done. It owns the
// form's challenge widget: the widget is rendered at most once and its token
// is cleared after every submission, successful or not.
type Machine struct {
	challenge Challenge
	submitter Submitter
	siteKey   string
	container string
	log       *zap.Logger

	mu         sync.Mutex
	widgetID   string
	token      string
	pending    bool
	submitting bool
	state      State
	form       Form
	outcome    Outcome
	ctx        context.Context
	settled    chan struct{}
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

func WithSiteKey(key string) MachineOption {
	return func(m *Machine) {
		if key != "" {
			m.siteKey = key
		}
	}
}

// WithContainer names the element the widget renders into.
func WithContainer(id string) MachineOption {
	return func(m *Machine) {
		if id != "" {
			m.container = id
		}
	}
}

func WithMachineLogger(l *zap.Logger) MachineOption {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMachine creates an idle machine. challenge may be nil when no widget is
// available; submissions then fail until a token can be obtained.
func NewMachine(challenge Challenge, submitter Submitter, opts ...MachineOption) *Machine {
	m := &Machine{
		challenge: challenge,
		submitter: submitter,
		siteKey:   DefaultSiteKey,
		container: "turnstile",
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mount renders the challenge widget if it has not been rendered yet.
func (m *Machine) Mount() {
	m.mu.Lock()
	if m.challenge == nil || m.widgetID != "" {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	id := m.challenge.Render(m.container, ChallengeOptions{
		SiteKey:   m.siteKey,
		Size:      "invisible",
		OnSuccess: m.onToken,
		OnExpired: m.onExpired,
		OnError:   m.onChallengeError,
	})

	m.mu.Lock()
	if m.widgetID == "" {
		m.widgetID = id
	}
	m.mu.Unlock()
}

// State returns the current phase.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Outcome returns the result of the last finished attempt.
func (m *Machine) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome
}

// Form returns the current field values. They are cleared after a
// successful submission.
func (m *Machine) Form() Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// Submit starts an attempt with f. It is ignored while a submission is in
// flight. When no token is available yet the attempt is deferred and the
// widget is executed; the submission then proceeds from the token callback
// using ctx. The returned state reflects the machine after the call.
func (m *Machine) Submit(ctx context.Context, f Form) State {
	m.mu.Lock()
	if m.submitting {
		s := m.state
		m.mu.Unlock()
		return s
	}
	m.state = Validating
	m.pending = false
	m.outcome = Outcome{}
	m.form = f.Normalized()
	m.ctx = ctx
	m.settled = make(chan struct{})

	if err := Validate(m.form); err != nil {
		var verr *ValidationError
		msg := MsgFailure
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		m.settleLocked(Outcome{Message: msg})
		m.mu.Unlock()
		return Done
	}

	if m.token != "" {
		run := m.beginLocked()
		m.mu.Unlock()
		run()
		return m.State()
	}

	m.pending = true
	widget := m.widgetID
	if m.challenge == nil || widget == "" {
		m.pending = false
		m.settleLocked(Outcome{Message: MsgChallengeNotReady})
		m.mu.Unlock()
		m.log.Warn("Challenge widget unavailable")
		return Done
	}
	m.state = AwaitingChallenge
	m.mu.Unlock()

	m.challenge.Execute(widget)
	return m.State()
}

// Wait blocks until the current attempt finishes or ctx is done.
func (m *Machine) Wait(ctx context.Context) (Outcome, error) {
	m.mu.Lock()
	settled := m.settled
	m.mu.Unlock()
	if settled == nil {
		return Outcome{}, errors.New("contact: no submission in progress")
	}
	select {
	case <-settled:
		return m.Outcome(), nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (m *Machine) onToken(token string) {
	m.mu.Lock()
	m.token = token
	if !ReadyToSubmit(m.pending, m.token, m.submitting) {
		m.mu.Unlock()
		return
	}
	run := m.beginLocked()
	m.mu.Unlock()
	run()
}

func (m *Machine) onExpired() {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
}

// onChallengeError clears the token. A deferred attempt cannot complete
// without one, so it fails.
func (m *Machine) onChallengeError() {
	m.mu.Lock()
	m.token = ""
	if !m.pending || m.submitting {
		m.mu.Unlock()
		return
	}
	m.pending = false
	m.settleLocked(Outcome{Message: MsgChallengeNotReady})
	widget := m.widgetID
	m.mu.Unlock()
	m.log.Warn("Challenge failed while a submission was pending")
	m.resetWidget(widget)
}

// beginLocked moves to Submitting and returns the function that performs the
// delivery. It must be called with mu held; the returned function must be
// called without it.
func (m *Machine) beginLocked() func() {
	m.submitting = true
	m.state = Submitting
	form, token, ctx := m.form, m.token, m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() {
		var out Outcome
		if m.submitter == nil {
			out = Outcome{Message: MsgFailure}
		} else {
			out = m.submitter.Submit(ctx, form, token)
		}
		m.finish(out)
	}
}

func (m *Machine) finish(out Outcome) {
	m.mu.Lock()
	m.submitting = false
	m.pending = false
	m.token = ""
	if out.Success {
		m.form = Form{}
	}
	m.settleLocked(out)
	widget := m.widgetID
	m.mu.Unlock()
	m.resetWidget(widget)
}

func (m *Machine) settleLocked(out Outcome) {
	m.state = Done
	m.outcome = out
	m.ctx = nil
	if m.settled != nil {
		select {
		case <-m.settled:
		default:
			close(m.settled)
		}
	}
}

func (m *Machine) resetWidget(id string) {
	if m.challenge != nil && id != "" {
		m.challenge.Reset(id)
	}
}

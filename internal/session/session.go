package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avelora/subsift/pkg/models"
)

// State is a step in the scan conversation. Transitions are strictly ordered:
// AwaitingDomain -> AwaitingMode -> AwaitingConfirmation -> Scanning.
type State int

const (
	StateAwaitingDomain State = iota
	StateAwaitingMode
	StateAwaitingConfirmation
	StateScanning
)

func (s State) String() string {
	switch s {
	case StateAwaitingDomain:
		return "awaiting_domain"
	case StateAwaitingMode:
		return "awaiting_mode"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateScanning:
		return "scanning"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session holds one caller's progress through the conversation. Fields are
// only written through Store transitions.
type Session struct {
	State     State
	Domain    models.Domain
	Mode      models.Mode
	CreatedAt time.Time
}

// Store keeps sessions keyed by caller identity. All methods are safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *logrus.Logger
}

func NewStore(logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Start creates a fresh session for caller, replacing any existing one.
func (st *Store) Start(caller string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := &Session{State: StateAwaitingDomain, CreatedAt: time.Now()}
	st.sessions[caller] = s
	st.logger.Debugf("Session started for %s", caller)
	return s
}

func (st *Store) Get(caller string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[caller]
	return s, ok
}

func (st *Store) Delete(caller string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, caller)
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// SetDomain validates raw and advances AwaitingDomain -> AwaitingMode.
func (st *Store) SetDomain(caller, raw string) (models.Domain, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[caller]
	if !ok {
		return "", fmt.Errorf("no session for caller %s", caller)
	}
	if s.State != StateAwaitingDomain {
		return "", fmt.Errorf("cannot set domain in state %s", s.State)
	}
	d, err := models.ParseDomain(raw)
	if err != nil {
		return "", err
	}
	s.Domain = d
	s.State = StateAwaitingMode
	return d, nil
}

// SetMode parses raw and advances AwaitingMode -> AwaitingConfirmation.
func (st *Store) SetMode(caller, raw string) (models.Mode, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[caller]
	if !ok {
		return 0, fmt.Errorf("no session for caller %s", caller)
	}
	if s.State != StateAwaitingMode {
		return 0, fmt.Errorf("cannot set mode in state %s", s.State)
	}
	m, err := models.ParseMode(raw)
	if err != nil {
		return 0, err
	}
	s.Mode = m
	s.State = StateAwaitingConfirmation
	return m, nil
}

// Confirm advances AwaitingConfirmation -> Scanning and returns the scan
// parameters. The caller owns running the scan and deleting the session after.
func (st *Store) Confirm(caller string) (models.Domain, models.Mode, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[caller]
	if !ok {
		return "", 0, fmt.Errorf("no session for caller %s", caller)
	}
	if s.State != StateAwaitingConfirmation {
		return "", 0, fmt.Errorf("cannot confirm in state %s", s.State)
	}
	s.State = StateScanning
	return s.Domain, s.Mode, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/renato-web/Profluxo/internal/analytics"
	"github.com/renato-web/Profluxo/internal/domain"
	"github.com/renato-web/Profluxo/internal/repository"
	"github.com/renato-web/Profluxo/internal/session"
)

// DeleteConfirmPrompt is shown before an entry is removed.
const DeleteConfirmPrompt = "ATENÇÃO: Tem certeza que deseja excluir este registro permanentemente?"

// DefaultRecentLimit is how many of the user's own entries RecentOwn shows.
const DefaultRecentLimit = 5

// Phase is the form state of the current session.
type Phase string

const (
	PhaseLoggedOut  Phase = "logged_out"
	PhaseCollecting Phase = "collecting"
	PhaseSubmitted  Phase = "submitted"
)

// Controller owns the session, the day's draft and the in-memory copy of
// the task logs. Store calls run without holding the lock, so a slow read
// never blocks rendering; the last successful read wins.
type Controller struct {
	store       repository.RowStore
	sessions    SessionStore
	catalog     *domain.Catalog
	managerHash []byte
	observer    UseCaseObserver
	now         func() time.Time

	mu    sync.Mutex
	state session.State
	logs  []domain.TaskLog
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithCatalog overrides the embedded catalog.
func WithCatalog(cat *domain.Catalog) ControllerOption {
	return func(c *Controller) { c.catalog = cat }
}

// WithObserver sets the use-case observer.
func WithObserver(obs UseCaseObserver) ControllerOption {
	return func(c *Controller) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// NewController creates a Controller. managerHash is the bcrypt hash the
// manager password is checked against.
func NewController(store repository.RowStore, sessions SessionStore, managerHash []byte, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:       store,
		sessions:    sessions,
		catalog:     domain.DefaultCatalog(),
		managerHash: managerHash,
		observer:    NoopUseCaseObserver{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore loads the persisted session. Call once at startup.
func (c *Controller) Restore() error {
	st, err := c.sessions.Load()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
	return nil
}

// Now returns the controller's clock reading.
func (c *Controller) Now() time.Time { return c.now() }

// Catalog returns the task catalog in use.
func (c *Controller) Catalog() *domain.Catalog { return c.catalog }

// Session returns a copy of the active session, or nil when logged out.
func (c *Controller) Session() *domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Session == nil {
		return nil
	}
	s := *c.state.Session
	return &s
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.state.Draft
	d.Tasks = append([]string(nil), d.Tasks...)
	return d
}

// Phase reports the form state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phaseLocked()
}

func (c *Controller) phaseLocked() Phase {
	switch {
	case c.state.Session == nil:
		return PhaseLoggedOut
	case c.state.Draft.Submitted:
		return PhaseSubmitted
	default:
		return PhaseCollecting
	}
}

// Logs returns a copy of the last successful read.
func (c *Controller) Logs() []domain.TaskLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.TaskLog(nil), c.logs...)
}

// AvailableTasks returns the catalog tasks for the session's job title.
func (c *Controller) AvailableTasks() ([]string, error) {
	sess := c.Session()
	if sess == nil {
		return nil, ErrNoSession
	}
	if sess.IsManager() {
		return nil, ErrNotCollaborator
	}
	return c.catalog.TasksFor(sess.Job), nil
}

// Login starts a session. The draft is reset to no tasks and today's date.
func (c *Controller) Login(ctx context.Context, role domain.UserRole, name string, job domain.JobTitle) (err error) {
	startedAt := time.Now()
	defer func() {
		c.observe(ctx, "login", startedAt, err, map[string]any{"role": string(role), "user": name})
	}()

	switch role {
	case domain.RoleCollaborator, domain.RoleManager:
	default:
		return fmt.Errorf("%w %q", ErrUnknownRole, role)
	}
	if name == "" {
		return fmt.Errorf("login: name is required")
	}
	if !domain.ValidJobTitle(job) {
		return fmt.Errorf("login: unknown job title %q", job)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Session != nil {
		return ErrAlreadyLoggedIn
	}

	now := c.now()
	next := session.State{
		Session: &domain.Session{
			ID:         uuid.New().String(),
			Name:       name,
			Role:       role,
			Job:        job,
			LoggedInAt: now.UTC(),
		},
		Draft: domain.Draft{Date: domain.LocalDay(now)},
	}
	return c.saveLocked(next)
}

// LoginManager checks the shared manager password and logs in as the
// executive board.
func (c *Controller) LoginManager(ctx context.Context, password string) error {
	if err := bcrypt.CompareHashAndPassword(c.managerHash, []byte(password)); err != nil {
		c.observe(ctx, "login", time.Now(), ErrInvalidPassword, map[string]any{"role": string(domain.RoleManager)})
		return ErrInvalidPassword
	}
	m := c.catalog.Manager
	return c.Login(ctx, domain.RoleManager, m.Name, m.Job)
}

// LoginCollaborator logs in a roster member with their job title.
func (c *Controller) LoginCollaborator(ctx context.Context, name string) error {
	person, ok := c.catalog.FindCollaborator(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollaborator, name)
	}
	return c.Login(ctx, domain.RoleCollaborator, person.Name, person.Job)
}

// Logout clears the session and its persisted copy. Logging out twice is
// not an error.
func (c *Controller) Logout(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer func() { c.observe(ctx, "logout", startedAt, err, nil) }()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = session.State{}
	c.logs = nil
	return c.sessions.Clear()
}

// ToggleTask flips task in the draft and reports whether it is now selected.
func (c *Controller) ToggleTask(task string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireCollectingLocked(); err != nil {
		return false, err
	}
	if !c.catalog.HasTask(c.state.Session.Job, task) {
		return false, fmt.Errorf("%w: %q", ErrTaskNotInCatalog, task)
	}

	next := c.cloneStateLocked()
	selected := next.Draft.Toggle(task)
	if err := c.saveLocked(next); err != nil {
		return false, err
	}
	return selected, nil
}

// SetDate sets the draft date. Future dates are rejected.
func (c *Controller) SetDate(date string) error {
	d, err := domain.ParseDay(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireCollectingLocked(); err != nil {
		return err
	}
	today, _ := domain.ParseDay(domain.LocalDay(c.now()))
	if d.After(today) {
		return fmt.Errorf("%w: %s is after today", ErrInvalidDate, date)
	}

	next := c.cloneStateLocked()
	next.Draft.Date = date
	return c.saveLocked(next)
}

// Submit writes the draft as a new entry. Validation failures never reach
// the store. On success the logs are re-read and the form moves to
// PhaseSubmitted; a failed re-read keeps the previous logs.
func (c *Controller) Submit(ctx context.Context) (entry domain.NewTaskLog, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { c.observe(ctx, "submit", startedAt, err, fields) }()

	c.mu.Lock()
	if err = c.requireCollectingLocked(); err != nil {
		c.mu.Unlock()
		return domain.NewTaskLog{}, err
	}
	if len(c.state.Draft.Tasks) == 0 {
		c.mu.Unlock()
		return domain.NewTaskLog{}, ErrEmptyDraft
	}
	sess := *c.state.Session
	entry = domain.NewTaskLog{
		Date:              c.state.Draft.Date,
		User:              sess.Name,
		Role:              sess.Job,
		Tasks:             append([]string(nil), c.state.Draft.Tasks...),
		ProductivityScore: domain.DefaultProductivityScore,
	}
	c.mu.Unlock()

	fields["user"] = entry.User
	fields["task_count"] = len(entry.Tasks)
	if err = entry.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidDay) {
			return domain.NewTaskLog{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
		}
		return domain.NewTaskLog{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	if err = c.store.InsertOne(ctx, entry); err != nil {
		return domain.NewTaskLog{}, err
	}

	c.mu.Lock()
	// The session may have ended while the insert was in flight.
	if c.state.Session != nil && c.state.Session.ID == sess.ID {
		next := c.cloneStateLocked()
		next.Draft.Submitted = true
		err = c.saveLocked(next)
	}
	c.mu.Unlock()
	if err != nil {
		return domain.NewTaskLog{}, err
	}

	if rerr := c.Refresh(ctx); rerr != nil {
		fields["refresh_error"] = rerr.Error()
	}
	return entry, nil
}

// NewRecord starts another entry after a submission. The date is kept.
func (c *Controller) NewRecord() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phaseLocked() {
	case PhaseLoggedOut:
		return ErrNoSession
	case PhaseCollecting:
		return ErrNotSubmitted
	}
	next := c.cloneStateLocked()
	next.Draft.Reset()
	return c.saveLocked(next)
}

// Refresh re-reads every entry from the store. On failure the previous
// logs are kept.
func (c *Controller) Refresh(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { c.observe(ctx, "refresh", startedAt, err, fields) }()

	logs, err := c.store.SelectAll(ctx)
	if err != nil {
		return err
	}
	fields["entries"] = len(logs)

	c.mu.Lock()
	c.logs = logs
	c.mu.Unlock()
	return nil
}

// DeleteEntry removes an entry after confirm approves it. Collaborators may
// only delete their own entries. It reports whether the entry was deleted;
// a declined confirmation is not an error.
func (c *Controller) DeleteEntry(ctx context.Context, id string, confirm Confirmer) (deleted bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() {
		fields["deleted"] = deleted
		c.observe(ctx, "delete-entry", startedAt, err, fields)
	}()

	sess := c.Session()
	if sess == nil {
		return false, ErrNoSession
	}

	entry, ok := c.findLog(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if !sess.IsManager() && entry.User != sess.Name {
		return false, ErrNotOwner
	}

	approved, err := confirm.Confirm(ctx, DeleteConfirmPrompt)
	if err != nil || !approved {
		return false, err
	}

	if err = c.store.DeleteOne(ctx, id); err != nil {
		return false, err
	}

	c.mu.Lock()
	c.logs = removeLog(c.logs, id)
	c.mu.Unlock()
	return true, nil
}

// RecentOwn returns the session user's entries in store order, newest
// first, capped at limit (DefaultRecentLimit when limit <= 0).
func (c *Controller) RecentOwn(limit int) ([]domain.TaskLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Session == nil {
		return nil, ErrNoSession
	}

	var own []domain.TaskLog
	for _, l := range c.logs {
		if l.User != c.state.Session.Name {
			continue
		}
		own = append(own, l)
		if len(own) == limit {
			break
		}
	}
	return own, nil
}

// Dashboard derives the manager view from the last successful read.
func (c *Controller) Dashboard(p analytics.Params) (analytics.View, error) {
	sess := c.Session()
	if sess == nil {
		return analytics.View{}, ErrNoSession
	}
	if !sess.IsManager() {
		return analytics.View{}, ErrNotManager
	}
	return analytics.Build(c.Logs(), p, c.now()), nil
}

func (c *Controller) requireCollectingLocked() error {
	switch {
	case c.state.Session == nil:
		return ErrNoSession
	case c.state.Session.IsManager():
		return ErrNotCollaborator
	case c.state.Draft.Submitted:
		return ErrAlreadySubmitted
	}
	return nil
}

// cloneStateLocked copies the state so a failed save leaves it untouched.
func (c *Controller) cloneStateLocked() session.State {
	next := c.state
	if c.state.Session != nil {
		s := *c.state.Session
		next.Session = &s
	}
	next.Draft.Tasks = append([]string(nil), c.state.Draft.Tasks...)
	return next
}

func (c *Controller) saveLocked(next session.State) error {
	if err := c.sessions.Save(next); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	c.state = next
	return nil
}

func (c *Controller) findLog(id string) (domain.TaskLog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.logs {
		if l.ID == id {
			return l, true
		}
	}
	return domain.TaskLog{}, false
}

func removeLog(logs []domain.TaskLog, id string) []domain.TaskLog {
	out := make([]domain.TaskLog, 0, len(logs))
	for _, l := range logs {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

func (c *Controller) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	c.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

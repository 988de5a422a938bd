package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/khabaroff/jwt-auth-web/src/models"
	"github.com/khabaroff/jwt-auth-web/src/services"
)

// FetchUsersFailed is shown when the API gives no message of its own
const FetchUsersFailed = "Failed to fetch users"

// createdAtLayout renders dates as M/D/YYYY
const createdAtLayout = "1/2/2006"

// displayLocation is the zone created dates are shown in, not the offset
// the API sent
var displayLocation = time.Local

// Phase is the load state of the admin user list
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// LoadState is a snapshot of the admin view's fetch
type LoadState struct {
	Phase Phase
	Users []models.UserRecord
	Error string
}

// Loading reports whether the fetch is still in flight
func (s LoadState) Loading() bool { return s.Phase == PhaseIdle || s.Phase == PhaseLoading }

// Ready reports whether the user list loaded
func (s LoadState) Ready() bool { return s.Phase == PhaseReady }

// UserRow is one rendered table row
type UserRow struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt string
}

// UserLister is the read side of the user directory used by the view
type UserLister interface {
	ListUsers(ctx context.Context, token string) ([]models.UserRecord, error)
}

// tokenSource is implemented by sessions that carry an API token
type tokenSource interface {
	APIToken() string
}

// AdminDashboardView lists every user. Its state moves
// Idle -> Loading -> Ready|Failed exactly once per instance.
type AdminDashboardView struct {
	session Session
	users   UserLister

	once   sync.Once
	done   chan struct{}
	cancel context.CancelFunc

	mu       sync.Mutex
	state    LoadState
	disposed bool
}

// NewAdminDashboardView creates an idle view
func NewAdminDashboardView(session Session, users UserLister) *AdminDashboardView {
	return &AdminDashboardView{
		session: session,
		users:   users,
		done:    make(chan struct{}),
	}
}

// Initialize starts the single user-list fetch. Later calls do nothing.
func (v *AdminDashboardView) Initialize(ctx context.Context) {
	v.once.Do(func() {
		v.mu.Lock()
		if v.disposed {
			v.mu.Unlock()
			close(v.done)
			return
		}
		fetchCtx, cancel := context.WithCancel(ctx)
		v.cancel = cancel
		v.state = LoadState{Phase: PhaseLoading}
		v.mu.Unlock()

		go v.fetch(fetchCtx)
	})
}

func (v *AdminDashboardView) fetch(ctx context.Context) {
	defer close(v.done)

	var token string
	if ts, ok := v.session.(tokenSource); ok {
		token = ts.APIToken()
	}

	users, err := v.users.ListUsers(ctx, token)
	if err == nil && ctx.Err() != nil {
		// Deadline or caller cancellation before Dispose counts as a failed fetch
		err = ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	if err != nil {
		v.state = LoadState{Phase: PhaseFailed, Error: services.ServerMessage(err, FetchUsersFailed)}
		return
	}
	if users == nil {
		users = []models.UserRecord{}
	}
	v.state = LoadState{Phase: PhaseReady, Users: users}
}

// Wait blocks until the fetch settles or ctx is done, then returns the state
func (v *AdminDashboardView) Wait(ctx context.Context) LoadState {
	select {
	case <-v.done:
	case <-ctx.Done():
	}
	return v.State()
}

// State returns the current snapshot
func (v *AdminDashboardView) State() LoadState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Dispose cancels an in-flight fetch; any later result is dropped.
// A fetch that ends because its own context expired before Dispose moves
// the view to Failed instead.
func (v *AdminDashboardView) Dispose() {
	v.mu.Lock()
	v.disposed = true
	cancel := v.cancel
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Heading is the users section title
func (v *AdminDashboardView) Heading() string {
	return fmt.Sprintf("All Users (%d)", len(v.State().Users))
}

// Welcome greets the admin by name
func (v *AdminDashboardView) Welcome() string {
	return fmt.Sprintf("Welcome, %s! You have administrative access.", profileOf(v.session).Name)
}

// Rows formats the loaded users for the table. Empty unless Ready.
func (v *AdminDashboardView) Rows() []UserRow {
	state := v.State()
	if state.Phase != PhaseReady {
		return nil
	}
	rows := make([]UserRow, 0, len(state.Users))
	for _, u := range state.Users {
		row := UserRow{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  string(u.Role),
		}
		if !u.CreatedAt.IsZero() {
			row.CreatedAt = u.CreatedAt.In(displayLocation).Format(createdAtLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

// OnUserDashboardRequested navigates to the user dashboard
func (v *AdminDashboardView) OnUserDashboardRequested(nav Navigator) {
	nav.Navigate(RouteDashboard)
}

// OnLogoutRequested logs out and navigates to the login page
func (v *AdminDashboardView) OnLogoutRequested(nav Navigator) {
	logout(v.session, nav)
}

// AdminPage is the render data for the admin template
type AdminPage struct {
	Welcome string
	Heading string
	State   LoadState
	Rows    []UserRow
}

// Page snapshots the view for rendering
func (v *AdminDashboardView) Page() AdminPage {
	return AdminPage{
		Welcome: v.Welcome(),
		Heading: v.Heading(),
		State:   v.State(),
		Rows:    v.Rows(),
	}
}

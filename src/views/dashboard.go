package views

import "github.com/khabaroff/jwt-auth-web/src/templates"

// UserDashboardView renders the signed-in user's profile and features.
// It is a pure function of the session.
type UserDashboardView struct {
	session Session
	content templates.DashboardContent
}

// NewUserDashboardView creates the view for session
func NewUserDashboardView(session Session, content templates.DashboardContent) *UserDashboardView {
	return &UserDashboardView{session: session, content: content}
}

// Profile returns the user's fields, empty when there is no user
func (v *UserDashboardView) Profile() Profile {
	return profileOf(v.session)
}

// ShowAdminPanel reports whether the admin navigation affordance is shown
func (v *UserDashboardView) ShowAdminPanel() bool {
	return v.session.IsAdmin()
}

// Features lists the feature cards; the admin card only for admins
func (v *UserDashboardView) Features() []templates.FeatureCard {
	cards := make([]templates.FeatureCard, 0, len(v.content.Features)+1)
	cards = append(cards, v.content.Features...)
	if v.session.IsAdmin() {
		cards = append(cards, v.content.AdminFeature)
	}
	return cards
}

// OnAdminPanelRequested navigates to the admin dashboard
func (v *UserDashboardView) OnAdminPanelRequested(nav Navigator) error {
	if !v.session.IsAdmin() {
		return ErrAdminRequired
	}
	nav.Navigate(RouteAdmin)
	return nil
}

// OnLogoutRequested logs out and navigates to the login page
func (v *UserDashboardView) OnLogoutRequested(nav Navigator) {
	logout(v.session, nav)
}

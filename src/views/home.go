package views

import "github.com/khabaroff/jwt-auth-web/src/templates"

// Link is a navigation target rendered as an anchor
type Link struct {
	Label string
	Href  string
	Class string
}

// HomeView is the static landing page
type HomeView struct {
	Title    string
	Tagline  string
	Actions  []Link
	Features []string
}

// NewHomeView builds the landing page from content
func NewHomeView(content templates.HomeContent) HomeView {
	return HomeView{
		Title:   content.Title,
		Tagline: content.Tagline,
		Actions: []Link{
			{Label: "Login", Href: RouteLogin, Class: "btn-primary"},
			{Label: "Register", Href: RouteRegister, Class: "btn-secondary"},
		},
		Features: content.Features,
	}
}

package sessionguard

import "github.com/Bini-2002/campuscraft/pkg/campusclient"

// Route is an application view path.
type Route string

const (
	// RouteHome is the public landing page, also the logout destination.
	RouteHome Route = "/"

	// RouteLogin is where unauthenticated users are sent.
	RouteLogin Route = "/login"

	// RouteStudentDashboard is the student landing page after login.
	RouteStudentDashboard Route = "/dashboard"

	// RouteCompanyDashboard is the company landing page after login.
	RouteCompanyDashboard Route = "/company-dashboard"
)

// LandingRoute returns the post-login destination for a role. Unknown roles
// land on the public home page.
func LandingRoute(userType string) Route {
	switch userType {
	case campusclient.UserTypeStudent:
		return RouteStudentDashboard
	case campusclient.UserTypeCompany:
		return RouteCompanyDashboard
	default:
		return RouteHome
	}
}

// Navigator receives the redirects the guard mandates: the role landing page
// after login, the public home page after logout.
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route Route)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(route Route) { f(route) }

package sessionguard

// DecisionState classifies an authorization check.
type DecisionState int

const (
	// DecisionLoading means the guard has not finished restoring persisted
	// session state; render nothing and check again once initialized.
	DecisionLoading DecisionState = iota

	// DecisionGranted admits the user to the view.
	DecisionGranted

	// DecisionDeniedNoSession means nobody is logged in. Redirect points at
	// the login route.
	DecisionDeniedNoSession

	// DecisionDeniedWrongRole means a user is logged in but the view belongs
	// to the other role. Redirect points at the user's own landing route,
	// never at login.
	DecisionDeniedWrongRole
)

// String returns a stable name for logging and test failure messages.
func (s DecisionState) String() string {
	switch s {
	case DecisionLoading:
		return "loading"
	case DecisionGranted:
		return "granted"
	case DecisionDeniedNoSession:
		return "denied_no_session"
	case DecisionDeniedWrongRole:
		return "denied_wrong_role"
	default:
		return "unknown"
	}
}

// Decision is the outcome of an authorization check. Redirect is only set on
// denials; the caller performs the navigation.
type Decision struct {
	State    DecisionState
	Redirect Route
}

// Granted reports whether the view may render.
func (d Decision) Granted() bool {
	return d.State == DecisionGranted
}

// Package clientstate holds the client's UI state as finite-state
// containers: one per concern, each advanced only through a pure transition
// function over the previous state and an action value. States are treated
// as immutable; every reduction returns a fresh value.
package clientstate

import "github.com/rocketscienceinc/tictactoe-web/pkg/apiclient"

// AuthState - the identity/session container: who is signed in, with what
// token, and the last error shown to the user.
type AuthState struct {
	User          *apiclient.User
	Token         string
	Authenticated bool
	Err           string
}

type AuthAction interface {
	isAuthAction()
}

type AuthSucceeded struct {
	User  *apiclient.User
	Token string
}

type AuthFailed struct {
	Message string
}

type LoggedOut struct{}

type UserUpdated struct {
	User *apiclient.User
}

type AuthErrorSet struct {
	Message string
}

type AuthErrorCleared struct{}

func (AuthSucceeded) isAuthAction()    {}
func (AuthFailed) isAuthAction()       {}
func (LoggedOut) isAuthAction()        {}
func (UserUpdated) isAuthAction()      {}
func (AuthErrorSet) isAuthAction()     {}
func (AuthErrorCleared) isAuthAction() {}

// ReduceAuth - the auth transition function. Unknown actions return the
// previous state unchanged.
func ReduceAuth(state AuthState, action AuthAction) AuthState {
	switch action := action.(type) {
	case AuthSucceeded:
		return AuthState{User: action.User, Token: action.Token, Authenticated: true}
	case AuthFailed:
		return AuthState{Err: action.Message}
	case LoggedOut:
		return AuthState{}
	case UserUpdated:
		next := state
		next.User = action.User
		return next
	case AuthErrorSet:
		next := state
		next.Err = action.Message
		return next
	case AuthErrorCleared:
		next := state
		next.Err = ""
		return next
	default:
		return state
	}
}

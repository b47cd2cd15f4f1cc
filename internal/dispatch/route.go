package dispatch

import (
	"errors"
	"fmt"
)

// Component is the kind of object a command acts on.
type Component string

const (
	Network Component = "network"
	Member  Component = "member"
	Message Component = "message"
)

// Action is what a command does to its component.
type Action string

const (
	Create Action = "create"
	List   Action = "list"
	Update Action = "update"
	Delete Action = "delete"
)

// Components and Actions list the accepted values in help order.
var (
	Components = []Component{Network, Member, Message}
	Actions    = []Action{Create, List, Update, Delete}
)

// Route identifies a command.
type Route struct {
	Component Component
	Action    Action
}

func (r Route) String() string {
	return string(r.Component) + " " + string(r.Action)
}

var (
	// ErrNotSupported is wrapped by UnsupportedError.
	ErrNotSupported = errors.New("not yet supported")
	// ErrAliasRequired is returned by updates run without --alias.
	ErrAliasRequired = errors.New("alias missing, set it with --alias")
	// ErrEmptyMessage is returned by message create with no text.
	ErrEmptyMessage = errors.New("no message to send")
)

// UnsupportedError reports a route with no handler.
type UnsupportedError struct {
	Route Route
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is %s", e.Route, ErrNotSupported)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrNotSupported
}

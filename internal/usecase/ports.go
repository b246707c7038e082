package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"movie-catalog/internal/data/entity"
)

// Dialog presents a confirmation or alert and blocks until the user
// resolves it. accepted is true only for the primary button; cancel and
// close both yield false.
type Dialog interface {
	Present(ctx context.Context, req entity.DialogRequest) (accepted bool, err error)
}

// Navigator moves the presentation to another route. Fire and forget.
type Navigator interface {
	GoTo(route string)
}

// UI bundles the presentation collaborators of one workflow instance.
type UI struct {
	Dialog    Dialog
	Navigator Navigator
}

// Routes builds the navigation targets from the listing route.
type Routes struct {
	List string
}

func NewRoutes(list string) Routes {
	list = "/" + strings.Trim(list, "/")
	return Routes{List: list}
}

func (r Routes) NewEditor() string {
	return r.List + "/register"
}

func (r Routes) Editor(id int64) string {
	return fmt.Sprintf("%s/register/%d", r.List, id)
}

func (r Routes) Viewer(id int64) string {
	return fmt.Sprintf("%s/%d", r.List, id)
}

type Screen string

const (
	ScreenList   Screen = "list"
	ScreenEditor Screen = "editor"
	ScreenViewer Screen = "viewer"
)

// Target is a parsed route. ID is nil for the listing and for a new editor.
type Target struct {
	Screen Screen
	ID     *int64
}

// Parse maps a route built by Routes back to its screen.
func (r Routes) Parse(route string) (Target, bool) {
	route = "/" + strings.Trim(route, "/")
	if route == r.List {
		return Target{Screen: ScreenList}, true
	}

	rest, ok := strings.CutPrefix(route, r.List+"/")
	if !ok {
		return Target{}, false
	}

	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1 && parts[0] == "register":
		return Target{Screen: ScreenEditor}, true
	case len(parts) == 2 && parts[0] == "register":
		id, ok := parseID(parts[1])
		return Target{Screen: ScreenEditor, ID: id}, ok
	case len(parts) == 1:
		id, ok := parseID(parts[0])
		return Target{Screen: ScreenViewer, ID: id}, ok
	}
	return Target{}, false
}

func parseID(s string) (*int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return nil, false
	}
	return &id, true
}

package present

import "time"

// State is a View that keeps the resulting UI state, for rendering a page
// after the lookup has finished
type State struct {
	Loading      bool
	ErrorVisible bool
	Error        string
	Current      *CurrentView
	Cards        []Card

	// Zone is the viewer's time zone, nil for the server default
	Zone *time.Location

	// loads counts ShowLoading calls
	loads int
}

func (s *State) ShowLoading() {
	s.Loading = true
	s.loads++
}

func (s *State) HideLoading() {
	s.Loading = false
}

func (s *State) ShowError(message string) {
	s.Error = message
	s.ErrorVisible = true
}

func (s *State) HideError() {
	s.ErrorVisible = false
}

func (s *State) Render(current CurrentView, cards []Card) {
	s.Current = &current
	s.Cards = cards
}

// Location returns the viewer's zone
func (s *State) Location() *time.Location {
	return s.Zone
}

// Loads reports how many times loading was entered
func (s *State) Loads() int {
	return s.loads
}

var _ View = (*State)(nil)

package service

// SectionState is the presentation state of one section.
type SectionState struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Visible     bool   `json:"visible"`
	Expanded    bool   `json:"expanded"`
	LastVisible bool   `json:"last_visible"`
}

// accordion tracks expanded and visible flags per section. Toggles are
// independent: opening one section never closes another.
type accordion struct {
	order    []string
	visible  map[string]bool
	expanded map[string]bool
	last     string
}

func newAccordion(sections []SectionSpec) *accordion {
	a := &accordion{
		visible:  make(map[string]bool, len(sections)),
		expanded: make(map[string]bool, len(sections)),
	}
	for i, s := range sections {
		a.order = append(a.order, s.ID)
		a.visible[s.ID] = s.Capability == ""
		a.expanded[s.ID] = i == 0
	}
	a.recompute()
	return a
}

func (a *accordion) has(id string) bool {
	_, ok := a.visible[id]
	return ok
}

func (a *accordion) toggle(id string) {
	a.expanded[id] = !a.expanded[id]
}

// setVisible changes visibility and refreshes the last-visible marker.
func (a *accordion) setVisible(id string, v bool) {
	if a.visible[id] == v {
		return
	}
	a.visible[id] = v
	a.recompute()
}

func (a *accordion) recompute() {
	a.last = LastVisible(a.order, a.visible)
}

func (a *accordion) states(sections []SectionSpec) []SectionState {
	out := make([]SectionState, 0, len(sections))
	for _, s := range sections {
		out = append(out, SectionState{
			ID:          s.ID,
			Title:       s.Title,
			Visible:     a.visible[s.ID],
			Expanded:    a.expanded[s.ID],
			LastVisible: s.ID == a.last,
		})
	}
	return out
}

// LastVisible returns the id of the last visible section in display order,
// or "" when nothing is visible.
func LastVisible(order []string, visible map[string]bool) string {
	for i := len(order) - 1; i >= 0; i-- {
		if visible[order[i]] {
			return order[i]
		}
	}
	return ""
}

package gallery

// CodeViewer is the tab state of a detail view's source section. Exactly
// one tab is active whenever the viewer has artifacts.
type CodeViewer struct {
	Artifacts []Artifact
	active    int
}

// NewCodeViewer returns a viewer with the first tab active, or nil when
// there is nothing to show.
func NewCodeViewer(artifacts []Artifact) *CodeViewer {
	if len(artifacts) == 0 {
		return nil
	}
	return &CodeViewer{Artifacts: artifacts}
}

// Active returns the index of the active tab.
func (v *CodeViewer) Active() int { return v.active }

// IsActive reports whether tab i is the active one.
func (v *CodeViewer) IsActive(i int) bool { return v.active == i }

// Select activates tab i and deactivates the others. Out-of-range indexes
// leave the viewer unchanged and report false.
func (v *CodeViewer) Select(i int) bool {
	if i < 0 || i >= len(v.Artifacts) {
		return false
	}
	v.active = i
	return true
}

// Clone copies the viewer so a published view is not affected by later
// tab changes.
func (v *CodeViewer) Clone() *CodeViewer {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

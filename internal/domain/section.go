package domain

import "strings"

// Section is one fixed page of the portfolio.
// Sections are defined at startup and never mutated.
type Section struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`       // Nav bar text (defaults to upper-cased ID)
	Filename string `yaml:"filename" json:"filename"` // Shown in the modal title bar
	Source   string `yaml:"source" json:"source"`     // Fake source code typed into the modal
	Markup   string `yaml:"markup" json:"markup"`     // Real content, markdown
}

// DisplayLabel returns the nav label, falling back to the upper-cased ID
func (s Section) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return strings.ToUpper(s.ID)
}

// BuildStatus is the visual phase of a single build target
type BuildStatus int

const (
	BuildPending  BuildStatus = iota // Materialized but invisible
	BuildRevealed                    // Visible as raw, uncompiled text
	BuildMorphed                     // Final rendered appearance
)

func (s BuildStatus) String() string {
	switch s {
	case BuildPending:
		return "pending"
	case BuildRevealed:
		return "revealed"
	case BuildMorphed:
		return "morphed"
	default:
		return "unknown"
	}
}

// StatusKind selects the status bar color scheme
type StatusKind int

const (
	StatusNormal StatusKind = iota
	StatusBusy
	StatusError
)

package memo

import "strings"

// DefaultDepartments is the list of departments and units memos move between.
var DefaultDepartments = []string{
	"DG/CE",
	"SA",
	"TA",
	"Transport School",
	"Training Department",
	"Transport Research & Intelligence Department",
	"Transport Technology Centre (TTC)",
	"Consultancy Services Department",
	"Library & Information Services Department",
	"Registry",
	"Bursary",
	"Internal Audit",
	"PPP, Partnership & Collaboration Unit",
	"Legal Services Unit",
	"Press & Public Relations Unit",
	"Procurement Unit",
	"Physical Planning Unit",
	"SERVICOM",
	"ACTU – Anti-Corruption & Transparency Unit",
	"Medical Center",
}

// Directory is a set of known departments.
type Directory struct {
	names []string
}

// NewDirectory builds a directory; an empty list falls back to the defaults.
func NewDirectory(names []string) *Directory {
	if len(names) == 0 {
		names = DefaultDepartments
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return &Directory{names: out}
}

// Names returns the departments in configured order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Resolve returns the canonical spelling of name, matching case-insensitively.
func (d *Directory) Resolve(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, n := range d.names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

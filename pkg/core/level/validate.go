package level

import (
	"errors"
	"fmt"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
)

// Definition is everything needed to generate one level.
type Definition struct {
	Name      string
	Templates []*room.Template
	Graphs    []*roomgraph.Graph
}

// Severity grades a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one finding of Validate.
type Diagnostic struct {
	Severity Severity
	Subject  string // level, template or graph id the finding is about
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Subject, d.Message)
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks a level definition before generation. Errors make
// generation pointless; warnings flag content that will make some or all
// attempts fail.
func Validate(def Definition) []Diagnostic {
	var ds []Diagnostic
	add := func(sev Severity, subject, format string, args ...any) {
		ds = append(ds, Diagnostic{Severity: sev, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	if def.Name == "" {
		add(SeverityWarning, "level", "name is empty")
	}
	name := def.Name
	if name == "" {
		name = "level"
	}
	if len(def.Templates) == 0 {
		add(SeverityError, name, "no room templates")
	}
	if len(def.Graphs) == 0 {
		add(SeverityError, name, "no room graphs")
	}
	if HasErrors(ds) {
		return ds
	}

	have := make(map[room.Type]bool)
	for _, t := range def.Templates {
		if t == nil {
			add(SeverityError, name, "template list contains an empty entry")
			continue
		}
		if err := t.Validate(); err != nil {
			add(SeverityError, t.ID, "%v", err)
		}
		have[t.Type] = true
	}
	for _, want := range []room.Type{room.TypeCorridorEW, room.TypeCorridorNS, room.TypeEntrance} {
		if !have[want] {
			add(SeverityWarning, name, "no %s template", want)
		}
	}

	for _, g := range def.Graphs {
		if g == nil {
			add(SeverityError, name, "graph list contains an empty entry")
			continue
		}
		if err := roomgraph.Validate(g); err != nil {
			for _, e := range unjoin(err) {
				add(graphSeverity(e), g.ID(), "%v", e)
			}
		}
		for _, n := range g.Nodes() {
			switch n.Type {
			case room.TypeEntrance, room.TypeCorridor, room.TypeCorridorNS, room.TypeCorridorEW, room.TypeNone:
				continue
			}
			if !have[n.Type] {
				add(SeverityWarning, g.ID(), "no %s template for node %s", n.Type, n.ID)
			}
		}
	}
	return ds
}

// graphSeverity grades a roomgraph.Validate finding. A graph that is not a
// tree rooted at a single entrance would leave rooms unplaced, so those
// findings are errors. A missing entrance stays a warning: generation
// reports it per attempt as NO_ENTRANCE_NODE.
func graphSeverity(err error) Severity {
	switch {
	case errors.Is(err, roomgraph.ErrCycle),
		errors.Is(err, roomgraph.ErrUnreachable),
		errors.Is(err, roomgraph.ErrEntranceHasParent),
		errors.Is(err, roomgraph.ErrMultipleEntrances):
		return SeverityError
	}
	return SeverityWarning
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// ErrInvalidDefinition is returned by Definition.Check when Validate
// reports errors.
var ErrInvalidDefinition = errors.New("invalid level definition")

// Check runs Validate and turns error diagnostics into an error.
func (def Definition) Check() ([]Diagnostic, error) {
	ds := Validate(def)
	if !HasErrors(ds) {
		return ds, nil
	}
	var errs []error
	for _, d := range ds {
		if d.Severity == SeverityError {
			errs = append(errs, errors.New(d.String()))
		}
	}
	return ds, fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(errs...))
}

package directive

import (
	"fmt"

	"github.com/rikushoney/abc-cmake/internal/diag"
)

// ParseState is the validator's position inside the directive stream.
type ParseState uint8

const (
	// StateStart is the default state, outside any list region.
	StateStart ParseState = iota
	// StateDefinedInBegin means a Defined-in-start is open and unclosed.
	StateDefinedInBegin
)

func (s ParseState) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateDefinedInBegin:
		return "DefinedInBegin"
	}
	return "Unknown"
}

// Validate sequences one file's directives through the two-state machine
// enforcing Defined-in-start / Defined-in-end pairing. Regions do not
// nest. A consumed DefinedInEnd is dropped from the output: it carries no
// information once its pairing is checked. The stream must end in Start;
// the parser's region search guarantees that, so ending otherwise is an
// internal invariant violation.
func Validate(directives []Directive, reporter diag.Reporter) ([]Directive, bool) {
	state := StateStart
	kept := make([]Directive, 0, len(directives))

	for _, d := range directives {
		switch d := d.(type) {
		case *DefinedInList:
			if state == StateDefinedInBegin {
				fail(reporter, diag.DirNestedList, d, "nesting Defined-in-start is not allowed")
				return nil, false
			}
			state = StateDefinedInBegin
			kept = append(kept, d)

		case *DefinedInEnd:
			if state != StateDefinedInBegin {
				fail(reporter, diag.DirUnmatchedEnd, d, "unmatched Defined-in-end")
				return nil, false
			}
			state = StateStart
			// dropped: pairing is all it carried

		case *AliasOf:
			kept = append(kept, d)
		case *BasedOn:
			kept = append(kept, d)
		case *DefinedIn:
			kept = append(kept, d)

		default:
			panic(fmt.Sprintf("unhandled directive %T", d))
		}
	}

	if state != StateStart {
		// unreachable while the parser requires a region end; defend anyway
		fail(reporter, diag.DirUnclosedList, directives[len(directives)-1],
			"directive stream ended inside a Defined-in-start region")
		return nil, false
	}
	return kept, true
}

func fail(reporter diag.Reporter, code diag.Code, d Directive, msg string) {
	if reporter == nil {
		return
	}
	notes := []diag.Note{{Span: d.Span(), Msg: fmt.Sprintf("while validating directive %q", d.Raw())}}
	reporter.Report(code, diag.SevError, d.Span(), msg, notes)
}

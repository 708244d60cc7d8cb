package payment

// SubjectOutcome is the evaluation state of one taxable subject. A rule pass
// leaves subjects it never touched at SubjectUntouched; the "continue while
// any subject survives" contract treats Untouched and Passed alike.
type SubjectOutcome int

const (
	SubjectUntouched SubjectOutcome = iota
	SubjectPassed
	SubjectFailed
)

// Subject tracks pass/fail state plus failure provenance for one taxable
// subject. Provenance is the failing rule's registry name rather than a
// pointer, so it survives serialization and rule reloads.
type Subject struct {
	Outcome    SubjectOutcome `json:"outcome"`
	FailedRule string         `json:"failed_rule,omitempty"`
}

// Fail marks the subject failed by the named rule. The first failure wins;
// later failures do not overwrite provenance.
func (s *Subject) Fail(rule string) {
	if s.Outcome == SubjectFailed {
		return
	}
	s.Outcome = SubjectFailed
	s.FailedRule = rule
}

// Pass marks the subject passed unless it already failed.
func (s *Subject) Pass() {
	if s.Outcome != SubjectFailed {
		s.Outcome = SubjectPassed
	}
}

// Failed reports whether the subject carries a failure.
func (s *Subject) Failed() bool {
	return s.Outcome == SubjectFailed
}

// Package pipeline defines the two lifecycle state machines of the portal:
// the job posting lifecycle and the candidate hiring pipeline.
package pipeline

// Job lifecycle states.
const (
	JobDraft     = "draft"
	JobPublished = "published"
	JobClosed    = "closed"
)

// Candidate pipeline stages, in funnel order.
const (
	CandidateApplied    = "applied"
	CandidateScreening  = "screening"
	CandidateAssessment = "assessment"
	CandidateInterview  = "interview"
	CandidateSelected   = "selected"
	CandidateRejected   = "rejected"
)

// jobTransitions lists the reachable states per current state. Closed is
// terminal; draft cannot be closed without publishing first.
var jobTransitions = map[string][]string{
	JobDraft:     {JobPublished},
	JobPublished: {JobClosed},
}

var candidateStages = []string{
	CandidateApplied,
	CandidateScreening,
	CandidateAssessment,
	CandidateInterview,
	CandidateSelected,
	CandidateRejected,
}

// ValidJobStatus reports whether s is a known job lifecycle state.
func ValidJobStatus(s string) bool {
	switch s {
	case JobDraft, JobPublished, JobClosed:
		return true
	}
	return false
}

// CanTransitionJob reports whether a job may move from one lifecycle state
// to another. Deleting a job is not a transition and is not checked here.
func CanTransitionJob(from, to string) bool {
	for _, s := range jobTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidCandidateStatus reports whether s is a known pipeline stage.
func ValidCandidateStatus(s string) bool {
	for _, stage := range candidateStages {
		if stage == s {
			return true
		}
	}
	return false
}

// CanTransitionCandidate reports whether a candidate may move between two
// stages. Any known stage is reachable from any other: admins reassign
// statuses freely rather than walking the funnel strictly forward. This is
// deliberate, not an oversight.
func CanTransitionCandidate(from, to string) bool {
	return ValidCandidateStatus(from) && ValidCandidateStatus(to)
}

// CandidateStages returns the pipeline stages in funnel order.
func CandidateStages() []string {
	out := make([]string, len(candidateStages))
	copy(out, candidateStages)
	return out
}

// InProcess reports whether a candidate status counts toward the "in
// process" dashboard figure: past intake but not yet decided.
func InProcess(status string) bool {
	switch status {
	case CandidateScreening, CandidateAssessment, CandidateInterview:
		return true
	}
	return false
}

// TerminalCandidate reports whether a candidate status is a final outcome.
func TerminalCandidate(status string) bool {
	return status == CandidateSelected || status == CandidateRejected
}

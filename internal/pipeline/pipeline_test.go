package pipeline_test

import (
	"testing"

	"github.com/hireboard/hireboard/internal/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionJob_PublishFlow(t *testing.T) {
	assert.True(t, pipeline.CanTransitionJob(pipeline.JobDraft, pipeline.JobPublished))
	assert.True(t, pipeline.CanTransitionJob(pipeline.JobPublished, pipeline.JobClosed))
}

func TestCanTransitionJob_DraftCannotClose(t *testing.T) {
	assert.False(t, pipeline.CanTransitionJob(pipeline.JobDraft, pipeline.JobClosed))
}

func TestCanTransitionJob_ClosedIsTerminal(t *testing.T) {
	assert.False(t, pipeline.CanTransitionJob(pipeline.JobClosed, pipeline.JobPublished))
	assert.False(t, pipeline.CanTransitionJob(pipeline.JobClosed, pipeline.JobDraft))
}

func TestCanTransitionJob_NoSelfTransitions(t *testing.T) {
	for _, s := range []string{pipeline.JobDraft, pipeline.JobPublished, pipeline.JobClosed} {
		assert.False(t, pipeline.CanTransitionJob(s, s), "self transition %s", s)
	}
}

func TestValidJobStatus(t *testing.T) {
	assert.True(t, pipeline.ValidJobStatus("draft"))
	assert.True(t, pipeline.ValidJobStatus("published"))
	assert.True(t, pipeline.ValidJobStatus("closed"))
	assert.False(t, pipeline.ValidJobStatus("archived"))
	assert.False(t, pipeline.ValidJobStatus(""))
}

func TestCanTransitionCandidate_AnyStageToAnyStage(t *testing.T) {
	stages := pipeline.CandidateStages()
	for _, from := range stages {
		for _, to := range stages {
			assert.True(t, pipeline.CanTransitionCandidate(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionCandidate_RejectsUnknownStage(t *testing.T) {
	assert.False(t, pipeline.CanTransitionCandidate("applied", "hired"))
	assert.False(t, pipeline.CanTransitionCandidate("onboarding", "applied"))
}

func TestCandidateStages_Order(t *testing.T) {
	want := []string{"applied", "screening", "assessment", "interview", "selected", "rejected"}
	assert.Equal(t, want, pipeline.CandidateStages())
}

func TestInProcess(t *testing.T) {
	assert.False(t, pipeline.InProcess("applied"))
	assert.True(t, pipeline.InProcess("screening"))
	assert.True(t, pipeline.InProcess("assessment"))
	assert.True(t, pipeline.InProcess("interview"))
	assert.False(t, pipeline.InProcess("selected"))
	assert.False(t, pipeline.InProcess("rejected"))
}

func TestTerminalCandidate(t *testing.T) {
	assert.True(t, pipeline.TerminalCandidate("selected"))
	assert.True(t, pipeline.TerminalCandidate("rejected"))
	assert.False(t, pipeline.TerminalCandidate("interview"))
}

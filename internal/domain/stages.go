package domain

import (
	"errors"
	"fmt"
)

// StageSet is an ordered list of workflow stages. The last stage is terminal:
// records in it are no longer active.
type StageSet struct {
	stages []Status
	index  map[Status]int
}

// DefaultStages is the seven-stage procurement workflow.
var DefaultStages = []Status{
	StatusDraft,
	StatusInternalReview,
	StatusPublished,
	StatusQA,
	StatusSubmissionClosed,
	StatusEvaluation,
	StatusAwarded,
}

// DefaultStageSet returns the seven-stage procurement workflow.
func DefaultStageSet() StageSet {
	set, _ := NewStageSet(DefaultStages)
	return set
}

// NewStageSet builds a StageSet from an ordered list of non-empty, unique stages.
func NewStageSet(stages []Status) (StageSet, error) {
	if len(stages) == 0 {
		return StageSet{}, errors.New("stage set must contain at least one stage")
	}
	index := make(map[Status]int, len(stages))
	for i, s := range stages {
		if s == "" {
			return StageSet{}, fmt.Errorf("stage %d is empty", i)
		}
		if _, dup := index[s]; dup {
			return StageSet{}, fmt.Errorf("duplicate stage %q", s)
		}
		index[s] = i
	}
	cp := make([]Status, len(stages))
	copy(cp, stages)
	return StageSet{stages: cp, index: index}, nil
}

// Stages returns a copy of the ordered stages.
func (s StageSet) Stages() []Status {
	cp := make([]Status, len(s.stages))
	copy(cp, s.stages)
	return cp
}

// Len returns the number of stages.
func (s StageSet) Len() int { return len(s.stages) }

// Contains reports whether status belongs to the set.
func (s StageSet) Contains(status Status) bool {
	_, ok := s.index[status]
	return ok
}

// Index returns the position of status, or -1 when it is not in the set.
func (s StageSet) Index(status Status) int {
	if i, ok := s.index[status]; ok {
		return i
	}
	return -1
}

// Terminal returns the last stage, or "" for an empty set.
func (s StageSet) Terminal() Status {
	if len(s.stages) == 0 {
		return ""
	}
	return s.stages[len(s.stages)-1]
}

// IsTerminal reports whether status is the terminal stage.
func (s StageSet) IsTerminal(status Status) bool {
	return len(s.stages) > 0 && status == s.Terminal()
}

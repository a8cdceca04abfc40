package model

type stepType string

const (
	NormalStepType   stepType = "step"
	UnionStepType    stepType = "union"
	PipelineStepType stepType = "pipeline"
	MemberStepType   stepType = "member"
)

// StepInfo describes a step inside a pipeline.
type StepInfo struct {
	Type  stepType
	Name  string
	Index int
	// Parent is the name of the union a member belongs to.
	Parent string
}

// KeySeparator joins the name of a union and the name of one of its members.
const KeySeparator = "/"

// Key identifies the step within its pipeline: its name, or "<union>/<member>" for a
// union member. Graph nodes carry the same key.
func (s *StepInfo) Key() string {
	if s.Parent == "" {
		return s.Name
	}

	return s.Parent + KeySeparator + s.Name
}

// Source and Sink are the names of the nodes a pipeline graph starts and ends with.
const (
	Source = "x"
	Sink   = "y"
)

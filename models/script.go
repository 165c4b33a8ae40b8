package models

// Ops understood in an edit script.
const (
	OpEdit   = "edit"
	OpAdd    = "add"
	OpRemove = "remove"
)

// ScriptStep is one recorded change to the ingredient list. A row is addressed
// either by Id or, case-insensitively, by Name.
type ScriptStep struct {
	Op    string `yaml:"op"`
	Id    string `yaml:"id,omitempty"`
	Name  string `yaml:"name,omitempty"`
	Field string `yaml:"field,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Only used by add: initial amounts for the new row.
	Weight     string `yaml:"weight,omitempty"`
	Percentage string `yaml:"percentage,omitempty"`
}

// EditScript is a replayable sequence of edits. FlourWeight, when set, is
// applied to the flour row before any step.
type EditScript struct {
	FlourWeight string       `yaml:"flour_weight,omitempty"`
	Mode        string       `yaml:"mode,omitempty"`
	Steps       []ScriptStep `yaml:"steps"`
}

// DefaultOp fills in the op for steps that only carry a field and value.
func (s *ScriptStep) DefaultOp() {
	if s.Op == "" {
		s.Op = OpEdit
	}
}

func (e *EditScript) DefaultOp() {
	for i := range e.Steps {
		e.Steps[i].DefaultOp()
	}
}

// Package evaluation decides whether a submitted answer matches the
// authoritative key of a question. Every function here is pure.
package evaluation

// Mechanic is the declared question type. It governs both rendering and the
// grading rule applied to a submission.
type Mechanic string

const (
	MechanicSingleChoice    Mechanic = "single_choice"
	MechanicMultiSelect     Mechanic = "multi_select"
	MechanicOrdering        Mechanic = "ordering"
	MechanicMatching        Mechanic = "matching"
	MechanicGrouping        Mechanic = "grouping"
	MechanicClassification  Mechanic = "classification"
	MechanicTrueFalseReason Mechanic = "true_false_reason"
	MechanicCloze           Mechanic = "cloze"
	MechanicSelectErrors    Mechanic = "select_errors"
	MechanicTwoStep         Mechanic = "two_step"
	MechanicMatrix          Mechanic = "matrix"
	MechanicBestExample     Mechanic = "best_example"
	MechanicScenario        Mechanic = "scenario"
	MechanicConstruct       Mechanic = "construct"
)

// Mechanics lists every mechanic the dispatcher grades.
var Mechanics = []Mechanic{
	MechanicSingleChoice,
	MechanicMultiSelect,
	MechanicOrdering,
	MechanicMatching,
	MechanicGrouping,
	MechanicClassification,
	MechanicTrueFalseReason,
	MechanicCloze,
	MechanicSelectErrors,
	MechanicTwoStep,
	MechanicMatrix,
	MechanicBestExample,
	MechanicScenario,
	MechanicConstruct,
}

// MatrixMode selects how a tabular question is answered.
type MatrixMode string

const (
	MatrixSingle MatrixMode = "single"
	MatrixMulti  MatrixMode = "multi"
)

// ScenarioAction declares what a scenario question asks the learner to do.
type ScenarioAction string

const (
	ScenarioChoice ScenarioAction = "choice"
	ScenarioOrder  ScenarioAction = "order"
	ScenarioMatch  ScenarioAction = "match"
)

// Question is the closed set of question variants. Each variant routes itself
// to the matching method of a visitor, so a new variant does not compile until
// every visitor (the dispatcher and the key inspector) handles it.
type Question interface {
	Mechanic() Mechanic
	accept(v visitor) bool
}

type visitor interface {
	singleChoice(q *SingleChoice) bool
	multiSelect(q *MultiSelect) bool
	ordering(q *Ordering) bool
	matching(q *Matching) bool
	grouping(q *Grouping) bool
	classification(q *Classification) bool
	trueFalseReason(q *TrueFalseReason) bool
	cloze(q *Cloze) bool
	selectErrors(q *SelectErrors) bool
	twoStep(q *TwoStep) bool
	matrix(q *Matrix) bool
	bestExample(q *BestExample) bool
	scenario(q *Scenario) bool
	construct(q *Construct) bool
}

type SingleChoice struct {
	Options []string `json:"options" validate:"min=2,dive,required"`
}

type MultiSelect struct {
	Options []string `json:"options" validate:"min=2,dive,required"`
}

type Ordering struct {
	Items []string `json:"items" validate:"min=2,dive,required"`
}

type Matching struct {
	LeftItems  []string `json:"left_items" validate:"min=1,dive,required"`
	RightItems []string `json:"right_items" validate:"min=1,dive,required"`
}

type Grouping struct {
	Groups []string `json:"groups" validate:"min=1,dive,required"`
	Items  []string `json:"items" validate:"min=1,dive,required"`
}

type Classification struct {
	Classes []string `json:"classes" validate:"min=1,dive,required"`
	Items   []string `json:"items" validate:"min=1,dive,required"`
}

type TrueFalseReason struct {
	Statement string   `json:"statement" validate:"required"`
	Reasons   []string `json:"reasons" validate:"min=1,dive,required"`
}

// Cloze is a text with dropdown gaps; Gaps[i] holds the options of gap i.
type Cloze struct {
	Text string     `json:"text" validate:"required"`
	Gaps [][]string `json:"gaps" validate:"min=1,dive,min=1"`
}

type SelectErrors struct {
	Spans []string `json:"spans" validate:"min=1,dive,required"`
}

type TwoStep struct {
	Step1Options []string   `json:"step1_options" validate:"min=1,dive,required"`
	Step2Options [][]string `json:"step2_options"`
}

type Matrix struct {
	Rows    []string   `json:"rows" validate:"min=1,dive,required"`
	Columns []string   `json:"columns" validate:"min=1,dive,required"`
	Mode    MatrixMode `json:"mode" validate:"omitempty,oneof=single multi"`
}

type BestExample struct {
	Options []string `json:"options" validate:"min=2,dive,required"`
}

type Scenario struct {
	Situation  string         `json:"situation" validate:"required"`
	Action     ScenarioAction `json:"action" validate:"required,oneof=choice order match"`
	Options    []string       `json:"options,omitempty" validate:"required_unless=Action match,dive,required"`
	LeftItems  []string       `json:"left_items,omitempty" validate:"required_if=Action match,dive,required"`
	RightItems []string       `json:"right_items,omitempty" validate:"required_if=Action match,dive,required"`
}

type Construct struct {
	Blocks []string `json:"blocks" validate:"min=1,dive,required"`
}

func (*SingleChoice) Mechanic() Mechanic    { return MechanicSingleChoice }
func (*MultiSelect) Mechanic() Mechanic     { return MechanicMultiSelect }
func (*Ordering) Mechanic() Mechanic        { return MechanicOrdering }
func (*Matching) Mechanic() Mechanic        { return MechanicMatching }
func (*Grouping) Mechanic() Mechanic        { return MechanicGrouping }
func (*Classification) Mechanic() Mechanic  { return MechanicClassification }
func (*TrueFalseReason) Mechanic() Mechanic { return MechanicTrueFalseReason }
func (*Cloze) Mechanic() Mechanic           { return MechanicCloze }
func (*SelectErrors) Mechanic() Mechanic    { return MechanicSelectErrors }
func (*TwoStep) Mechanic() Mechanic         { return MechanicTwoStep }
func (*Matrix) Mechanic() Mechanic          { return MechanicMatrix }
func (*BestExample) Mechanic() Mechanic     { return MechanicBestExample }
func (*Scenario) Mechanic() Mechanic        { return MechanicScenario }
func (*Construct) Mechanic() Mechanic       { return MechanicConstruct }

func (q *SingleChoice) accept(v visitor) bool    { return v.singleChoice(q) }
func (q *MultiSelect) accept(v visitor) bool     { return v.multiSelect(q) }
func (q *Ordering) accept(v visitor) bool        { return v.ordering(q) }
func (q *Matching) accept(v visitor) bool        { return v.matching(q) }
func (q *Grouping) accept(v visitor) bool        { return v.grouping(q) }
func (q *Classification) accept(v visitor) bool  { return v.classification(q) }
func (q *TrueFalseReason) accept(v visitor) bool { return v.trueFalseReason(q) }
func (q *Cloze) accept(v visitor) bool           { return v.cloze(q) }
func (q *SelectErrors) accept(v visitor) bool    { return v.selectErrors(q) }
func (q *TwoStep) accept(v visitor) bool         { return v.twoStep(q) }
func (q *Matrix) accept(v visitor) bool          { return v.matrix(q) }
func (q *BestExample) accept(v visitor) bool     { return v.bestExample(q) }
func (q *Scenario) accept(v visitor) bool        { return v.scenario(q) }
func (q *Construct) accept(v visitor) bool       { return v.construct(q) }

// New returns an empty question of the given mechanic, ready to be filled from
// its JSON definition. ok is false for an unknown mechanic.
func New(m Mechanic) (Question, bool) {
	switch m {
	case MechanicSingleChoice:
		return &SingleChoice{}, true
	case MechanicMultiSelect:
		return &MultiSelect{}, true
	case MechanicOrdering:
		return &Ordering{}, true
	case MechanicMatching:
		return &Matching{}, true
	case MechanicGrouping:
		return &Grouping{}, true
	case MechanicClassification:
		return &Classification{}, true
	case MechanicTrueFalseReason:
		return &TrueFalseReason{}, true
	case MechanicCloze:
		return &Cloze{}, true
	case MechanicSelectErrors:
		return &SelectErrors{}, true
	case MechanicTwoStep:
		return &TwoStep{}, true
	case MechanicMatrix:
		return &Matrix{}, true
	case MechanicBestExample:
		return &BestExample{}, true
	case MechanicScenario:
		return &Scenario{}, true
	case MechanicConstruct:
		return &Construct{}, true
	default:
		return nil, false
	}
}

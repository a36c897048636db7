package core

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// MaxID is the largest record ID.  FoldDigit stops there instead of
// overflowing.
const MaxID = math.MaxInt32

// Action is something a Transition does when it's taken.
//
// Actions are a closed set so that a Graph stays inspectable (and
// serializable).  An Action only touches Accumulators.  It never
// influences which Transition is taken.
type Action int

const (
	NoAction  Action = iota
	ResetID          // Set the current ID to zero.
	FoldDigit        // Make the symbol the new ones place of the current ID.
	Flag             // Queue the current ID as flagged.
)

var actionNames = [...]string{
	NoAction:  "",
	ResetID:   "reset",
	FoldDigit: "digit",
	Flag:      "flag",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "action(" + strconv.Itoa(int(a)) + ")"
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return Action(a), nil
		}
	}
	return NoAction, errors.New("unknown action " + strconv.Quote(s))
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Action) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	x, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = x
	return nil
}

func (a Action) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// Exec performs the action against the given Accumulators.
//
// FoldDigit assumes the Transition's Comparator already checked that
// sym is a digit.  An ID with too many digits saturates at MaxID, so
// a flagged ID is never negative.
func (a Action) Exec(acc *Accumulators, sym byte) {
	switch a {
	case ResetID:
		acc.ID = 0
	case FoldDigit:
		d := int(sym - '0')
		if acc.ID > (MaxID-d)/10 {
			acc.ID = MaxID
			return
		}
		acc.ID = acc.ID*10 + d
	case Flag:
		acc.Flagged = append(acc.Flagged, acc.ID)
	}
}

// Accumulators are the caller-owned values that Actions update.
//
// The engine never keeps a reference to Accumulators between calls.
type Accumulators struct {
	// ID is the numeric ID of the current record.
	ID int `json:"id"`

	// Flagged is the queue of flagged record IDs in the order
	// they were flagged.
	Flagged []int `json:"flagged,omitempty"`
}

// NewAccumulators makes zeroed Accumulators.
func NewAccumulators() *Accumulators {
	return &Accumulators{
		Flagged: make([]int, 0, 16),
	}
}

// Drain returns the flagged IDs in FIFO order and empties the queue.
func (acc *Accumulators) Drain() []int {
	ids := acc.Flagged
	acc.Flagged = nil
	return ids
}

package game

import "fmt"

// ActionKind is one of the four betting decisions.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is a decision submitted for the active seat. For a Raise, Amount is
// the increment over the current bet; zero means the minimum raise.
type Action struct {
	Kind   ActionKind
	Amount int
}

func (a Action) String() string {
	if a.Kind == Raise {
		return fmt.Sprintf("raise %d", a.Amount)
	}
	return a.Kind.String()
}

// FoldAction, CheckAction and CallAction are the amount-less actions.
var (
	FoldAction  = Action{Kind: Fold}
	CheckAction = Action{Kind: Check}
	CallAction  = Action{Kind: Call}
)

// RaiseBy returns a raise of amount over the current bet.
func RaiseBy(amount int) Action {
	return Action{Kind: Raise, Amount: amount}
}

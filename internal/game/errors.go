package game

import "errors"

var (
	// ErrInvalidConfig is returned when a table is created with bad settings.
	ErrInvalidConfig = errors.New("invalid game config")
	// ErrNotYourTurn is returned when a seat other than the active one acts.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrIllegalAction covers actions the rules do not allow, such as a
	// check while a call is owed or an undersized raise.
	ErrIllegalAction = errors.New("illegal action")
	// ErrHandInProgress is returned by StartHand before the previous hand ended.
	ErrHandInProgress = errors.New("hand in progress")
	// ErrNoHandInProgress is returned by ApplyAction outside a betting round.
	ErrNoHandInProgress = errors.New("no hand in progress")
	// ErrTableFinished is returned when fewer than two seats have chips.
	ErrTableFinished = errors.New("table finished")
)

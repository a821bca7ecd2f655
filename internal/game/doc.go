// Package game implements the Texas Hold'em rules engine.
//
// A table is a GameState snapshot created by NewTable. The Engine turns one
// snapshot into the next: StartHand moves the button, deals and posts the
// blinds, and ApplyAction applies a decision for the active seat. Neither
// modifies its input, so a failed call leaves the caller's snapshot intact
// and any earlier snapshot can be kept for replay or undo.
//
// # Basic Usage
//
//	state, err := game.NewTable(game.DefaultConfig())
//	engine := game.NewEngine(randutil.New(42))
//	state, err = engine.StartHand(state)
//	state, err = engine.ApplyAction(state, state.ActivePlayerIndex, game.CallAction)
//
// After every call the hand has been advanced as far as it can go: the next
// seat to act is in ActivePlayerIndex, or the hand is over and Phase is
// GameOver with WinnerIDs set.
//
// # Limitations
//
// There are no side pots. All contenders compete for the whole pot however
// much they put in, and a pot split between several winners is divided by
// integer division with the remainder left unawarded. Hand scores do not
// separate kickers beyond what each category formula encodes, so such hands
// split the pot.
package game

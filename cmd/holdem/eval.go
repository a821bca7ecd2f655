package main

import (
	"fmt"

	"github.com/lox/holdem/internal/evaluator"
)

type EvalCmd struct {
	Cards string `arg:"" help:"Five to seven cards, e.g. 'AsKsQsJsTs9h8h'"`
}

func (c *EvalCmd) Run() error {
	cards, err := parseCardArg("cards", c.Cards)
	if err != nil {
		return err
	}
	hv, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", headerStyle.Render("cards"), formatCards(cards))
	fmt.Printf("%s  %s\n", headerStyle.Render("best"), handStyle.Render(formatCards(hv.Cards)))
	fmt.Printf("%s  %s %s\n", headerStyle.Render("hand"), winStyle.Render(hv.Name()), dimStyle.Render(fmt.Sprintf("(score %d)", hv.Score)))
	return nil
}

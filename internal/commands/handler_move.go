package commands

import (
	"context"

	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/game"
)

const defaultPlace = "middle of nowhere"

func (h *Handler) walk(ctx context.Context, req *Request) (game.Status, error) {
	return h.travel(req, "walk", 1, 5)
}

func (h *Handler) run(ctx context.Context, req *Request) (game.Status, error) {
	return h.travel(req, "run", 3, 10)
}

// travel moves the player and costs between lo and hi hunger.
func (h *Handler) travel(req *Request, verb string, lo, hi int) (game.Status, error) {
	place := req.Arg
	if place == "" {
		place = defaultPlace
	}
	req.Printf("You %s to the %s.", verb, place)
	req.Player.AdjustHunger(-dice.Between(h.roller, lo, hi))
	return game.StatusSuccess | game.StatusMoved, nil
}

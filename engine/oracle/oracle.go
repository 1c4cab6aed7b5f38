// Package oracle maps free-form player input onto the engine's canonical
// command grammar using an external language model. The engine depends only
// on the Mapper interface; a failure or an unusable answer is always
// equivalent to "no mapping found".
package oracle

import (
	"context"
	"errors"
)

// ErrNoMapping reports that the oracle could not produce a usable command.
var ErrNoMapping = errors.New("no command mapping")

// Request carries everything the oracle may use to pick a command.
type Request struct {
	// Input is the raw player text that the parser could not handle.
	Input string
	// Commands are the canonical templates the answer must be drawn from.
	Commands []string
	// Context describes the player's current surroundings.
	Context []string
	// History holds the previous turn's input and output, oldest first.
	History []string
}

// Mapper turns unparseable input into a canonical command.
type Mapper interface {
	// MapCommand returns a single command string from the request's
	// template list with placeholders filled in. Any error means the
	// input stays unmapped.
	MapCommand(ctx context.Context, req Request) (string, error)
}

// Disabled is a Mapper that never maps anything. Used when no oracle is
// configured.
type Disabled struct{}

func (Disabled) MapCommand(context.Context, Request) (string, error) {
	return "", ErrNoMapping
}

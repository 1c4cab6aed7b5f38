// Package cli provides the plain terminal front end: a prompt loop over
// Engine.Step with script-playback support.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/lorelock/engine"
	"github.com/nathoo/lorelock/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine, reading stdin and writing
// stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop: intro, then prompt → input → step → output
// until input ends, the player quits, or the story signals an exit.
func (c *CLI) Run() {
	for _, line := range c.Engine.Intro() {
		c.printLine(line)
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		lower := strings.ToLower(input)
		if lower == "quit" || lower == "q" {
			c.printLine("Goodbye.")
			return
		}

		// "again" / "g" repeats the last command.
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		res := c.Engine.Step(input)
		c.printResult(res)

		switch res.Signal {
		case types.SignalWon:
			return
		case types.SignalMenu:
			c.printLine("Goodbye.")
			return
		}
	}
}

func (c *CLI) printResult(res types.Result) {
	for _, line := range res.Output {
		c.printLine(line)
	}
	c.printLine("")
}

func (c *CLI) printLine(s string) {
	fmt.Fprintln(c.Out, s)
}

func (c *CLI) print(s string) {
	fmt.Fprint(c.Out, s)
}

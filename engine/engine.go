// Package engine runs a loaded story: it owns the world, the rulebook, the
// undo history, and the turn loop, and exposes a single Step entry point to
// the frontends.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/nathoo/lorelock/engine/oracle"
	"github.com/nathoo/lorelock/engine/parser"
	"github.com/nathoo/lorelock/engine/rules"
	"github.com/nathoo/lorelock/engine/snapshot"
	"github.com/nathoo/lorelock/engine/world"
	"github.com/nathoo/lorelock/types"
)

const undoLimit = 10

// Engine drives one story session.
type Engine struct {
	World  *world.World
	Rules  *rules.Rulebook
	Oracle oracle.Mapper

	history *snapshot.History
	store   *snapshot.Store
	log     *slog.Logger

	turn       int
	won        bool
	lastInput  string
	lastOutput []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithOracle sets the NLU fallback. Without it the engine uses the disabled
// mapper.
func WithOracle(m oracle.Mapper) Option {
	return func(e *Engine) { e.Oracle = m }
}

// WithSaveDir enables save and load, storing slots under dir.
func WithSaveDir(dir string) Option {
	return func(e *Engine) { e.store = snapshot.NewStore(dir) }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New builds an engine for a story.
func New(story *types.StoryDef, opts ...Option) *Engine {
	w := world.New(story)
	e := &Engine{
		World:   w,
		Rules:   rules.New(w),
		Oracle:  oracle.Disabled{},
		history: snapshot.NewHistory(undoLimit),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Intro returns the opening text: title, intro passage, and the first room
// description.
func (e *Engine) Intro() []string {
	var out []string
	if e.World.Story.Title != "" {
		out = append(out, e.World.Story.Title)
	}
	if e.World.Story.Intro != "" {
		out = append(out, e.World.Story.Intro)
	}
	return append(out, e.World.Look()...)
}

// Turn reports the number of completed turns.
func (e *Engine) Turn() int {
	return e.turn
}

// Won reports whether the win condition has been met.
func (e *Engine) Won() bool {
	return e.won
}

// Step processes one line of player input and returns the turn's output.
func (e *Engine) Step(input string) types.Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Result{Output: []string{"Beg your pardon?"}}
	}

	cmd := parser.Parse(input)
	res := e.dispatch(input, cmd, true)

	e.turn++
	e.lastInput = input
	e.lastOutput = res.Output
	return res
}

func (e *Engine) dispatch(input string, cmd parser.Command, allowOracle bool) types.Result {
	switch cmd.Kind {
	case parser.KindMeta:
		return e.runMeta(cmd.Verb)
	case parser.KindDirection:
		e.history.Push(snapshot.Capture(e.World, e.turn))
		out := e.World.MovePlayer(cmd.Direction)
		return e.checkWin(types.Result{Output: out})
	case parser.KindAction:
		return e.runAction(input, cmd, allowOracle)
	default:
		return e.fallback(input, allowOracle, "I didn't understand that.")
	}
}

func (e *Engine) runMeta(verb string) types.Result {
	switch verb {
	case "look":
		return types.Result{Output: e.World.Look()}
	case "inventory":
		return types.Result{Output: e.World.Inventory()}
	case "wait":
		return types.Result{Output: []string{"Time passes."}}
	case "help":
		return types.Result{Output: e.helpText()}
	case "menu":
		return types.Result{Signal: types.SignalMenu}
	case "undo":
		st, ok := e.history.Pop()
		if !ok {
			return types.Result{Output: []string{"Nothing to undo."}}
		}
		snapshot.Restore(e.World, st)
		return types.Result{Output: append([]string{"Undone."}, e.World.Look()...)}
	case "save":
		if e.store == nil {
			return types.Result{Output: []string{"Saving is not available."}}
		}
		if err := e.store.Save(snapshot.Capture(e.World, e.turn)); err != nil {
			e.log.Error("save failed", "error", err)
			return types.Result{Output: []string{"The save failed."}}
		}
		return types.Result{Output: []string{"Saved."}}
	case "load":
		if e.store == nil {
			return types.Result{Output: []string{"Loading is not available."}}
		}
		st, err := e.store.Load(e.World.Story.ID)
		if err != nil {
			if errors.Is(err, snapshot.ErrNoSave) {
				return types.Result{Output: []string{"No save file found."}}
			}
			e.log.Error("load failed", "error", err)
			return types.Result{Output: []string{"The load failed."}}
		}
		snapshot.Restore(e.World, st)
		e.turn = st.Turn
		return types.Result{Output: append([]string{"Loaded."}, e.World.Look()...)}
	}
	return types.Result{Output: []string{"Beg your pardon?"}}
}

func (e *Engine) runAction(input string, cmd parser.Command, allowOracle bool) types.Result {
	// Unresolvable nouns on a known verb read as a scope miss; an unknown
	// verb reads as gibberish.
	missMsg := "You can't see any such thing."
	if !e.Rules.Knows(cmd.Verb) {
		missMsg = "I didn't understand that."
	}

	a := world.Action{Verb: cmd.Verb, Topic: cmd.Topic}
	if cmd.Noun != "" {
		a.Noun = e.World.FindByName(cmd.Noun)
		if a.Noun == nil {
			return e.fallback(input, allowOracle, missMsg)
		}
	}
	if cmd.Second != "" {
		a.Second = e.World.FindByName(cmd.Second)
		if a.Second == nil {
			return e.fallback(input, allowOracle, missMsg)
		}
	}

	e.history.Push(snapshot.Capture(e.World, e.turn))
	handled, out := e.Rules.Process(a)
	if !handled {
		// The capture is stale if the fallback re-dispatches; drop it so
		// undo stays one-snapshot-per-effective-turn.
		e.history.Pop()
		res := e.fallback(input, allowOracle, "I didn't understand that.")
		res.Output = append(out, res.Output...)
		return res
	}
	return e.checkWin(types.Result{Output: out})
}

// fallback hands unparseable input to the oracle once. A mapping identical
// to the input is rejected so a parroting model cannot loop the parser.
func (e *Engine) fallback(input string, allowOracle bool, failMsg string) types.Result {
	if !allowOracle {
		return types.Result{Output: []string{failMsg}}
	}

	req := oracle.Request{
		Input:    input,
		Commands: e.commandTemplates(),
		Context:  e.World.Context(),
	}
	if e.lastInput != "" {
		req.History = append([]string{"> " + e.lastInput}, e.lastOutput...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	mapped, err := e.Oracle.MapCommand(ctx, req)
	if err != nil {
		return types.Result{Output: []string{failMsg}}
	}
	mapped = strings.TrimSpace(mapped)
	if strings.EqualFold(mapped, input) {
		return types.Result{Output: []string{"I understand, but I can't do that right now."}}
	}

	e.log.Debug("oracle mapped input", "input", input, "command", mapped)
	return e.dispatch(mapped, parser.Parse(mapped), false)
}

// commandTemplates builds the canonical grammar shown to the oracle:
// the standard verbs plus any verb an authored rule responds to.
func (e *Engine) commandTemplates() []string {
	templates := []string{"go [direction]"}
	known := map[string]bool{}
	for _, v := range e.Rules.Verbs() {
		known[v] = true
		switch v {
		case "look", "inventory":
			templates = append(templates, v)
		case "put":
			templates = append(templates, "put [item] in [container]", "put [item] on [supporter]")
		case "lock", "unlock":
			templates = append(templates, v+" [item] with [key]")
		case "ask", "tell":
			templates = append(templates, v+" [person] about [topic]")
		default:
			templates = append(templates, v+" [item]")
		}
	}
	var authored []string
	for _, ent := range e.World.Entities {
		for _, r := range ent.Rules {
			if r.Verb != "" && !known[r.Verb] {
				known[r.Verb] = true
				authored = append(authored, r.Verb)
			}
		}
	}
	sort.Strings(authored)
	for _, v := range authored {
		templates = append(templates, v+" [item]")
	}
	return templates
}

func (e *Engine) helpText() []string {
	return []string{
		"Move with compass directions (north, n, south, up...).",
		"Common actions: take, drop, put X in Y, open, close, lock/unlock X with Y,",
		"examine, wear, eat, enter, push, pull, ask X about Y.",
		"Meta commands: look, inventory, save, load, undo, wait, help, menu.",
	}
}

// checkWin appends the victory banner when the story's win condition holds.
func (e *Engine) checkWin(res types.Result) types.Result {
	if e.won || e.World.Story.Win == nil {
		return res
	}
	win := e.World.Story.Win
	met := false
	switch win.Type {
	case "location":
		room := e.World.PlayerRoom()
		met = room != nil && room.ID == win.Target
	case "carried":
		t := e.World.Get(win.Target)
		met = t != nil && t.Location == world.PlayerID
	}
	if met {
		e.won = true
		res.Output = append(res.Output, "", "*** You have won ***")
		res.Signal = types.SignalWon
	}
	return res
}

package rules

import (
	"fmt"

	"github.com/nathoo/lorelock/engine/world"
)

// standardVerbs builds the verb table. Every entry is explicit; there is no
// name-based dispatch.
func (rb *Rulebook) standardVerbs() map[string]handler {
	return map[string]handler{
		"take": {
			check:    rb.checkTake,
			carryOut: rb.carryOutTake,
			report:   func(world.Action) []string { return []string{"Taken."} },
		},
		"drop": {
			check:    rb.checkDrop,
			carryOut: rb.carryOutDrop,
			report:   func(world.Action) []string { return []string{"Dropped."} },
		},
		"put": {
			check:    rb.checkPut,
			carryOut: rb.carryOutPut,
			report:   rb.reportPut,
		},
		"enter": {
			check:    rb.checkEnter,
			carryOut: rb.carryOutEnter,
			report:   rb.reportEnter,
		},
		"inventory": {
			report: func(world.Action) []string { return rb.world.Inventory() },
		},
		"look": {
			report: func(world.Action) []string { return rb.world.Look() },
		},
		"examine": {
			check:  rb.requireNoun("Examine what?"),
			report: rb.reportExamine,
		},
		"open": {
			check:    rb.checkOpen,
			carryOut: func(a world.Action) { a.Noun.SetProp("open", true) },
			report:   rb.reportOpen,
		},
		"close": {
			check:    rb.checkClose,
			carryOut: func(a world.Action) { a.Noun.SetProp("open", false) },
			report:   func(world.Action) []string { return []string{"Closed."} },
		},
		"lock": {
			check:    rb.checkLock,
			carryOut: func(a world.Action) { a.Noun.SetProp("locked", true) },
			report:   func(world.Action) []string { return []string{"Locked."} },
		},
		"unlock": {
			check:    rb.checkUnlock,
			carryOut: func(a world.Action) { a.Noun.SetProp("locked", false) },
			report:   func(world.Action) []string { return []string{"Unlocked."} },
		},
		"wear": {
			check:    rb.checkWear,
			carryOut: func(a world.Action) { a.Noun.SetProp("worn", true) },
			report:   func(world.Action) []string { return []string{"You put it on."} },
		},
		"eat": {
			check:    rb.checkEat,
			carryOut: func(a world.Action) { rb.world.Remove(a.Noun.ID) },
			report:   func(world.Action) []string { return []string{"You eat it. Not bad."} },
		},
		"ask": {
			check:  rb.checkAsk,
			report: rb.reportAsk,
		},
		"tell": {
			check:  rb.checkTell,
			report: rb.reportTell,
		},
		"talk": {
			check:  rb.checkTalk,
			report: rb.reportTalk,
		},
		"push": {
			check:  rb.requireNoun("Push what?"),
			report: func(world.Action) []string { return []string{"Nothing happens."} },
		},
		"pull": {
			check:  rb.requireNoun("Pull what?"),
			report: func(world.Action) []string { return []string{"Nothing happens."} },
		},
	}
}

// requireNoun builds a check that only demands a resolved noun.
func (rb *Rulebook) requireNoun(prompt string) func(world.Action) (bool, []string) {
	return func(a world.Action) (bool, []string) {
		if a.Noun == nil {
			return false, []string{prompt}
		}
		return true, nil
	}
}

func (rb *Rulebook) checkTake(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Take what?"}
	}
	if a.Noun.ID == world.PlayerID {
		return false, []string{"You can't take yourself."}
	}
	if a.Noun.Location == world.PlayerID {
		return false, []string{"You already have that."}
	}
	if !a.Noun.Is("portable") {
		return false, []string{"That's fixed in place."}
	}
	if !rb.world.IsAccessible(a.Noun) {
		return false, []string{"You can't reach it."}
	}
	return true, nil
}

func (rb *Rulebook) carryOutTake(a world.Action) {
	rb.world.Move(a.Noun.ID, world.PlayerID)
	a.Noun.SetProp("worn", false)
}

func (rb *Rulebook) checkDrop(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Drop what?"}
	}
	if a.Noun.Location != world.PlayerID {
		return false, []string{"You aren't carrying that."}
	}
	return true, nil
}

func (rb *Rulebook) carryOutDrop(a world.Action) {
	rb.world.Move(a.Noun.ID, rb.world.Player().Location)
	a.Noun.SetProp("worn", false)
}

func (rb *Rulebook) checkPut(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Put what?"}
	}
	if a.Second == nil {
		return false, []string{"Put it where?"}
	}
	if a.Noun == a.Second {
		return false, []string{"You can't put something inside itself."}
	}
	if a.Noun.Location != world.PlayerID {
		return false, []string{"You aren't carrying that."}
	}
	switch a.Second.Kind {
	case world.KindContainer:
		if !a.Second.Is("open") {
			return false, []string{fmt.Sprintf("The %s is closed.", a.Second.Name)}
		}
	case world.KindSupporter:
	default:
		return false, []string{fmt.Sprintf("You can't put things in the %s.", a.Second.Name)}
	}
	if !rb.world.IsAccessible(a.Second) {
		return false, []string{"You can't reach it."}
	}
	return true, nil
}

func (rb *Rulebook) carryOutPut(a world.Action) {
	rb.world.Move(a.Noun.ID, a.Second.ID)
	a.Noun.SetProp("worn", false)
}

func (rb *Rulebook) reportPut(a world.Action) []string {
	prep := "in"
	if a.Second.Kind == world.KindSupporter {
		prep = "on"
	}
	return []string{fmt.Sprintf("You put the %s %s the %s.", a.Noun.Name, prep, a.Second.Name)}
}

func (rb *Rulebook) checkEnter(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Enter what?"}
	}
	if !a.Noun.Is("enterable") {
		return false, []string{"You can't get into that."}
	}
	if a.Noun.Kind == world.KindContainer && !a.Noun.Is("open") {
		return false, []string{fmt.Sprintf("The %s is closed.", a.Noun.Name)}
	}
	if rb.world.Player().Location == a.Noun.ID {
		return false, []string{"You're already in that."}
	}
	return true, nil
}

func (rb *Rulebook) carryOutEnter(a world.Action) {
	rb.world.Move(world.PlayerID, a.Noun.ID)
}

func (rb *Rulebook) reportEnter(a world.Action) []string {
	prep := "into"
	if a.Noun.Kind == world.KindSupporter {
		prep = "onto"
	}
	return []string{fmt.Sprintf("You get %s the %s.", prep, a.Noun.Name)}
}

func (rb *Rulebook) reportExamine(a world.Action) []string {
	return []string{a.Noun.Describe(rb.world)}
}

func (rb *Rulebook) checkOpen(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Open what?"}
	}
	if !a.Noun.Is("openable") {
		return false, []string{"That's not something you can open."}
	}
	if a.Noun.Is("locked") {
		return false, []string{"It is locked."}
	}
	if a.Noun.Is("open") {
		return false, []string{"It is already open."}
	}
	return true, nil
}

func (rb *Rulebook) reportOpen(a world.Action) []string {
	out := []string{"Opened."}
	if a.Noun.Kind == world.KindContainer && len(a.Noun.Contents) > 0 {
		out = append(out, a.Noun.Describe(rb.world))
	}
	return out
}

func (rb *Rulebook) checkClose(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Close what?"}
	}
	if !a.Noun.Is("openable") {
		return false, []string{"That's not something you can close."}
	}
	if !a.Noun.Is("open") {
		return false, []string{"It is already closed."}
	}
	return true, nil
}

func (rb *Rulebook) checkLock(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Lock what?"}
	}
	if !a.Noun.Is("lockable") {
		return false, []string{"That doesn't have a lock."}
	}
	if a.Noun.Is("locked") {
		return false, []string{"It is already locked."}
	}
	if a.Noun.Is("open") {
		return false, []string{"You'll have to close it first."}
	}
	if a.Second == nil {
		return false, []string{"Lock it with what?"}
	}
	if !rb.keyFits(a.Noun, a.Second) {
		return false, []string{"That key doesn't fit."}
	}
	return true, nil
}

func (rb *Rulebook) checkUnlock(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Unlock what?"}
	}
	if !a.Noun.Is("lockable") {
		return false, []string{"That doesn't have a lock."}
	}
	if !a.Noun.Is("locked") {
		return false, []string{"It's already unlocked."}
	}
	if a.Second == nil {
		return false, []string{"Unlock it with what?"}
	}
	if !rb.keyFits(a.Noun, a.Second) {
		return false, []string{"That key doesn't fit."}
	}
	return true, nil
}

// A door's key may be declared by the key's ID or its name.
func (rb *Rulebook) keyFits(lock, key *world.Entity) bool {
	return lock.KeyID != "" && (lock.KeyID == key.ID || lock.KeyID == key.Name)
}

func (rb *Rulebook) checkWear(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Wear what?"}
	}
	if !a.Noun.Is("wearable") {
		return false, []string{"You can't wear that."}
	}
	if a.Noun.Location != world.PlayerID {
		return false, []string{"You aren't holding that."}
	}
	if a.Noun.Is("worn") {
		return false, []string{"You're already wearing it."}
	}
	return true, nil
}

func (rb *Rulebook) checkEat(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Eat what?"}
	}
	if !a.Noun.Is("edible") {
		return false, []string{"That's plainly inedible."}
	}
	if a.Noun.Location != world.PlayerID {
		return false, []string{"You aren't holding that."}
	}
	return true, nil
}

func (rb *Rulebook) checkAsk(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Ask who?"}
	}
	if a.Noun.Kind != world.KindPerson {
		return false, []string{"You can't talk to that."}
	}
	if a.Topic == "" {
		return false, []string{fmt.Sprintf("Ask %s about what?", a.Noun.Name)}
	}
	if _, ok := a.Noun.Topics[a.Topic]; !ok {
		return false, []string{"They have nothing to say about that."}
	}
	return true, nil
}

func (rb *Rulebook) reportAsk(a world.Action) []string {
	return []string{fmt.Sprintf("%s says: \"%s\"", a.Noun.Name, a.Noun.Topics[a.Topic])}
}

func (rb *Rulebook) checkTell(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Tell who?"}
	}
	if a.Noun.Kind != world.KindPerson {
		return false, []string{"You can't talk to that."}
	}
	return true, nil
}

func (rb *Rulebook) reportTell(a world.Action) []string {
	if a.Topic == "" {
		return []string{fmt.Sprintf("%s waits for you to say something.", a.Noun.Name)}
	}
	return []string{fmt.Sprintf("You tell %s about the %s. They listen politely.", a.Noun.Name, a.Topic)}
}

func (rb *Rulebook) checkTalk(a world.Action) (bool, []string) {
	if a.Noun == nil {
		return false, []string{"Talk to whom?"}
	}
	if a.Noun.Kind != world.KindPerson {
		return false, []string{"You can't talk to that."}
	}
	return true, nil
}

func (rb *Rulebook) reportTalk(a world.Action) []string {
	return []string{fmt.Sprintf("To converse with %s, try asking them about something.", a.Noun.Name)}
}

package game

import (
	"sort"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// StartRest puts the participants into a rest of the given kind. Actors
// currently in a turn-based scope cannot rest; actors already resting
// cannot start another. Either case rejects the whole request and
// enumerates the offending actors.
func (w *World) StartRest(participants []string, kind shared.RestKind) error {
	if len(participants) == 0 {
		return dnderr.InvalidArgument("rest requires at least one participant")
	}

	var inCombat, alreadyResting []string
	for _, actorID := range participants {
		if _, err := w.Actor(actorID); err != nil {
			return err
		}
		if _, ok := w.inScope[actorID]; ok {
			inCombat = append(inCombat, actorID)
		}
		if _, ok := w.resting[actorID]; ok {
			alreadyResting = append(alreadyResting, actorID)
		}
	}
	if len(inCombat) > 0 {
		sort.Strings(inCombat)
		return dnderr.InvalidTransition("actors in combat cannot rest", inCombat)
	}
	if len(alreadyResting) > 0 {
		sort.Strings(alreadyResting)
		return dnderr.InvalidTransition("actors are already resting", alreadyResting)
	}

	for _, actorID := range participants {
		w.resting[actorID] = kind
	}
	return nil
}

// FinishRest completes the participants' rest and issues the matching
// recharge trigger to each of them. Every participant must be resting
// and all must share the same rest kind; violations reject the whole
// request and enumerate the offending actors.
func (w *World) FinishRest(participants []string) (shared.RestKind, error) {
	if len(participants) == 0 {
		return "", dnderr.InvalidArgument("rest requires at least one participant")
	}

	var notResting []string
	kinds := make(map[shared.RestKind][]string)
	for _, actorID := range participants {
		kind, ok := w.resting[actorID]
		if !ok {
			notResting = append(notResting, actorID)
			continue
		}
		kinds[kind] = append(kinds[kind], actorID)
	}
	if len(notResting) > 0 {
		sort.Strings(notResting)
		return "", dnderr.InvalidTransition("actors are not resting", notResting)
	}
	if len(kinds) > 1 {
		offenders := append([]string(nil), participants...)
		sort.Strings(offenders)
		return "", dnderr.InvalidTransition("participants are resting different rest kinds", offenders)
	}

	var kind shared.RestKind
	for k := range kinds {
		kind = k
	}

	trigger := resources.RechargeShortRest
	if kind == shared.RestLong {
		trigger = resources.RechargeLongRest
	}

	for _, actorID := range participants {
		if _, _, err := w.Recharge(actorID, trigger); err != nil {
			return "", err
		}
		delete(w.resting, actorID)
	}
	return kind, nil
}

// Resting returns the rest kind the actor is currently in
func (w *World) Resting(actorID string) (shared.RestKind, bool) {
	kind, ok := w.resting[actorID]
	return kind, ok
}

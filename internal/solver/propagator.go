package solver

// propagate drains the decision stack from its cursor forward to a
// fixed point: every candidate assigned true has its lazy rules encoded
// before its watch chain is walked, and every candidate assigned either
// way has its watch chain walked for consequences. It returns the id of
// a falsified clause, or noClause if propagation reached quiescence
// without conflict.
func (s *Solver) propagate() ClauseID {
	for s.stack.cursor < s.stack.len() {
		entry := s.stack.entries[s.stack.cursor]
		s.stack.cursor++

		if entry.value {
			s.encode(entry.candidate)
			if s.pendingConflict != noClause {
				conflict := s.pendingConflict
				s.pendingConflict = noClause
				return conflict
			}
		}

		if conflict := s.propagateWatches(entry.candidate); conflict != noClause {
			return conflict
		}
	}
	return noClause
}

// propagateWatches re-examines every clause watching c through either
// slot, now that c's assignment changed. It rebuilds c's watch chain
// in place: satisfied-through-c and no-replacement-found clauses are
// threaded onto a "kept" chain as the traversal goes, while clauses that
// found a different literal to watch are spliced out (re-threaded onto
// their new candidate's chain by addWatch instead).
//
// The conflict case is the delicate one: when the clause that still
// watches c is itself falsified, its own next[slot] link is never
// written; it already points at the correctly-unprocessed remainder of
// c's original chain, captured in the local `next` before any mutation
// this iteration could have made. The kept chain built so far is
// spliced onto that remainder once the loop exits, so no link in the
// chain is ever corrupted by a conflict discovered mid-walk.
func (s *Solver) propagateWatches(c CandidateID) ClauseID {
	id := s.clauses.watchHead(c)
	keptHead, keptTail := noClause, noClause
	keptTailSlot := 0
	conflictID := noClause

	appendKept := func(id ClauseID, slot int) {
		if keptHead == noClause {
			keptHead = id
		} else {
			s.clauses.get(keptTail).next[keptTailSlot] = id
		}
		keptTail, keptTailSlot = id, slot
	}

	for id != noClause {
		cl := s.clauses.get(id)
		slot := cl.slotOf(c)
		next := cl.next[slot]

		watched := cl.watchedLit(slot)
		val, assigned := s.decisions.value(c)
		if !assigned || val == watched.value {
			appendKept(id, slot)
			id = next
			continue
		}

		other := 1 - slot
		replaced := false
		for i, lit := range cl.lits {
			if i == cl.watch[0] || i == cl.watch[1] {
				continue
			}
			lv, lassigned := s.decisions.value(lit.candidate)
			if !lassigned || lv == lit.value {
				cl.watch[slot] = i
				s.clauses.addWatch(cl, slot, id, lit.candidate)
				replaced = true
				break
			}
		}
		if replaced {
			id = next
			continue
		}

		appendKept(id, slot)

		otherLit := cl.lits[cl.watch[other]]
		ov, oassigned := s.decisions.value(otherLit.candidate)
		switch {
		case oassigned && ov != otherLit.value:
			conflictID = id
			id = next
		case !oassigned:
			s.assertUnit(otherLit, s.currentLevel, id)
			id = next
		default:
			id = next
		}
		if conflictID != noClause {
			break
		}
	}

	if keptHead == noClause {
		s.clauses.setWatchHead(c, id)
	} else {
		s.clauses.get(keptTail).next[keptTailSlot] = id
		s.clauses.setWatchHead(c, keptHead)
	}
	return conflictID
}

package solver

// clauseKind discriminates the tagged-union clause payload. The
// propagator only ever looks at kind + lits + watch + next; everything
// else is read by the rule encoder (while building) or the problem
// extractor (while explaining).
type clauseKind uint8

const (
	kindInstallRoot clauseKind = iota
	kindRequires
	kindConstrains
	kindSameName
	kindLock
	kindExcluded
	kindLearnt
)

// literal is a candidate plus the value that satisfies the clause
// through it.
type literal struct {
	candidate CandidateID
	value     bool
}

// clause is a disjunction of literals with two-watched-literals
// metadata. Binary and unit clauses reuse the same layout; a unit
// clause has watch[0] == watch[1] == 0.
type clause struct {
	kind clauseKind
	lits []literal
	watch [2]int
	next  [2]ClauseID

	// Kind-specific payload, read only by the rule encoder and problem
	// extractor.
	source  CandidateID // Requires/Constrains: the candidate whose rule this is
	target  CandidateID // Constrains: the offending candidate; SameName: the second candidate
	reqName string      // Requires/Constrains: the dependency's package name
	reqExpr string      // Requires/Constrains: the dependency's raw version-set expression
}

func (c *clause) watchedLit(slot int) literal {
	return c.lits[c.watch[slot]]
}

// slotOf returns which watch slot is currently watching candidate.
// Panics (a fatal internal-invariant violation) if neither slot is.
func (c *clause) slotOf(candidate CandidateID) int {
	if c.lits[c.watch[0]].candidate == candidate {
		return 0
	}
	if c.lits[c.watch[1]].candidate == candidate {
		return 1
	}
	panic(errFatal("watch points at a clause that does not watch the expected candidate"))
}

// clauseArena owns the clause storage and the watch-map vector: a dense
// array indexed by candidate handle holding the head clause id of the
// intrusive singly-linked list of clauses watching that candidate on
// either slot.
type clauseArena struct {
	clauses    *arena[clause]
	watchHeads []ClauseID
}

func newClauseArena(capacity int) *clauseArena {
	return &clauseArena{clauses: newArena[clause](capacity)}
}

func (ca *clauseArena) get(id ClauseID) *clause {
	return ca.clauses.get(int(id))
}

func (ca *clauseArena) len() int {
	return ca.clauses.len()
}

func (ca *clauseArena) ensureWatchCapacity(n int) {
	for len(ca.watchHeads) < n {
		ca.watchHeads = append(ca.watchHeads, noClause)
	}
}

func (ca *clauseArena) watchHead(c CandidateID) ClauseID {
	if int(c) >= len(ca.watchHeads) {
		return noClause
	}
	return ca.watchHeads[c]
}

// addWatch threads cl into the head of candidate's watch chain at the
// given slot.
func (ca *clauseArena) addWatch(cl *clause, slot int, id ClauseID, candidate CandidateID) {
	ca.ensureWatchCapacity(int(candidate) + 1)
	cl.next[slot] = ca.watchHeads[candidate]
	ca.watchHeads[candidate] = id
}

func (ca *clauseArena) setWatchHead(candidate CandidateID, head ClauseID) {
	ca.ensureWatchCapacity(int(candidate) + 1)
	ca.watchHeads[candidate] = head
}

// Package consensus merges recurring labels from several labelers into one
// label per transaction.
//
// Each labeler's vote is weighted by that labeler's F1 score against the
// weighted majority. The scores are refined over a fixed number of rounds,
// starting from 1 for everyone. A transaction keeps its majority label
// only when the labelers voting for it carry enough combined weight.
//
// Example usage:
//
//	m := consensus.NewMerger(consensus.DefaultConfig())
//	for _, row := range aliceRows {
//		m.Add("alice", row.Transaction, row.RawLabel)
//	}
//	result := m.Resolve()
package consensus

import (
	"sort"

	"github.com/eshaffer321/recurscan/internal/domain/evaluation"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// Vote values that count towards a decision. Labelers may write anything
// else (for example "?"), which still counts against their score.
const (
	VoteNo  = "0"
	VoteYes = "1"
)

// Config controls how votes are merged.
type Config struct {
	// MinVotes is the number of 0/1 votes a transaction needs to be considered
	MinVotes int
	// MinScore is the combined labeler weight the majority must reach
	MinScore float64
	// Rounds is the number of labeler re-scoring passes
	Rounds int
}

// DefaultConfig returns the standard merge settings.
func DefaultConfig() Config {
	return Config{
		MinVotes: 3,
		MinScore: 1.8,
		Rounds:   5,
	}
}

// Decision is the merged label of one transaction.
type Decision struct {
	Transaction transaction.Transaction
	Label       transaction.Label
	// Score is the combined weight of the labelers that voted for Label
	Score float64
}

// Labeler is one labeler's agreement with the weighted majority.
type Labeler struct {
	Name string
	evaluation.Metrics
}

// Result is the outcome of a merge.
type Result struct {
	// Decisions holds the transactions that reached consensus, ordered by
	// user, name and date
	Decisions []Decision
	// Labelers is sorted by F1, best first
	Labelers []Labeler
	// Unique is the number of distinct transactions seen
	Unique int
	// Candidates is the number of transactions with enough 0/1 votes
	Candidates int
}

// Merger collects votes. It is not safe for concurrent use.
type Merger struct {
	config Config
	order  []transaction.Transaction
	votes  map[transaction.Transaction]map[string]string
}

// NewMerger creates a merger. Zero config fields fall back to defaults.
func NewMerger(config Config) *Merger {
	def := DefaultConfig()
	if config.MinVotes <= 0 {
		config.MinVotes = def.MinVotes
	}
	if config.MinScore <= 0 {
		config.MinScore = def.MinScore
	}
	if config.Rounds <= 0 {
		config.Rounds = def.Rounds
	}
	return &Merger{
		config: config,
		votes:  make(map[transaction.Transaction]map[string]string),
	}
}

// Add records labeler's raw vote for tx. Transactions are matched on user,
// name, date and amount; the ID is ignored. A later vote from the same
// labeler replaces the earlier one.
func (m *Merger) Add(labeler string, tx transaction.Transaction, raw string) {
	tx.ID = 0
	votes, ok := m.votes[tx]
	if !ok {
		votes = make(map[string]string)
		m.votes[tx] = votes
		m.order = append(m.order, tx)
	}
	votes[labeler] = raw
}

// Resolve scores the labelers and returns the consensus decisions.
func (m *Merger) Resolve() Result {
	result := Result{Unique: len(m.order)}

	var candidates []transaction.Transaction
	for _, tx := range m.order {
		if decisive(m.votes[tx]) >= m.config.MinVotes {
			candidates = append(candidates, tx)
		}
	}
	result.Candidates = len(candidates)

	weights := make(map[string]float64)
	for _, tx := range candidates {
		for labeler := range m.votes[tx] {
			weights[labeler] = 1
		}
	}

	var metrics map[string]evaluation.Metrics
	for range m.config.Rounds {
		metrics = m.score(candidates, weights)
		for labeler, lm := range metrics {
			weights[labeler] = lm.F1
		}
	}

	for labeler, lm := range metrics {
		result.Labelers = append(result.Labelers, Labeler{Name: labeler, Metrics: lm})
	}
	sort.Slice(result.Labelers, func(i, j int) bool {
		if result.Labelers[i].F1 != result.Labelers[j].F1 {
			return result.Labelers[i].F1 > result.Labelers[j].F1
		}
		return result.Labelers[i].Name < result.Labelers[j].Name
	})

	var decided []Decision
	for _, tx := range candidates {
		vote, score := majority(m.votes[tx], weights)
		if score < m.config.MinScore {
			continue
		}
		decided = append(decided, Decision{
			Transaction: tx,
			Label:       transaction.ParseLabel(vote),
			Score:       score,
		})
	}
	result.Decisions = ordered(decided)

	return result
}

// score compares every labeler's votes with the current weighted majority.
// A labeler is treated as predicting recurring unless it voted 0 on a
// not-recurring majority or something other than 1 on a recurring one.
func (m *Merger) score(candidates []transaction.Transaction, weights map[string]float64) map[string]evaluation.Metrics {
	actual := make(map[string][]int)
	predicted := make(map[string][]int)

	for _, tx := range candidates {
		votes := m.votes[tx]
		vote, _ := majority(votes, weights)
		for labeler, v := range votes {
			var a, p int
			if vote == VoteYes {
				a = 1
				if v == VoteYes {
					p = 1
				}
			} else if v != VoteNo {
				p = 1
			}
			actual[labeler] = append(actual[labeler], a)
			predicted[labeler] = append(predicted[labeler], p)
		}
	}

	out := make(map[string]evaluation.Metrics, len(actual))
	for labeler := range actual {
		// lengths always match, so Compute cannot fail here
		lm, _ := evaluation.Compute(actual[labeler], predicted[labeler])
		out[labeler] = lm
	}
	return out
}

// majority returns the vote with the highest summed labeler weight. Ties go
// to not recurring.
func majority(votes map[string]string, weights map[string]float64) (string, float64) {
	var no, yes float64
	for labeler, v := range votes {
		switch v {
		case VoteNo:
			no += weights[labeler]
		case VoteYes:
			yes += weights[labeler]
		}
	}
	if yes > no {
		return VoteYes, yes
	}
	return VoteNo, no
}

func decisive(votes map[string]string) int {
	n := 0
	for _, v := range votes {
		if v == VoteNo || v == VoteYes {
			n++
		}
	}
	return n
}

// ordered sorts decisions by user and name, then by date within each
// (user, name) bucket.
func ordered(decisions []Decision) []Decision {
	txs := make([]transaction.Transaction, len(decisions))
	byTx := make(map[transaction.Transaction]Decision, len(decisions))
	for i, d := range decisions {
		txs[i] = d.Transaction
		byTx[d.Transaction] = d
	}

	groups := transaction.GroupByUserAndName(txs)
	keys := make([]transaction.Key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].UserID != keys[j].UserID {
			return keys[i].UserID < keys[j].UserID
		}
		return keys[i].Name < keys[j].Name
	})

	out := make([]Decision, 0, len(decisions))
	for _, k := range keys {
		bucket := groups[k]
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].Date < bucket[j].Date })
		for _, tx := range bucket {
			out = append(out, byTx[tx])
		}
	}
	return out
}

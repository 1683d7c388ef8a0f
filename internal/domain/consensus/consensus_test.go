package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

func tx(user, name, date string, amount float64) transaction.Transaction {
	return transaction.Transaction{UserID: user, Name: name, Date: date, Amount: amount}
}

func addAll(m *Merger, t transaction.Transaction, votes map[string]string) {
	for labeler, v := range votes {
		m.Add(labeler, t, v)
	}
}

func TestMerger_WeightsLabelersByAgreement(t *testing.T) {
	// Arrange
	netflixFeb := tx("u1", "Netflix", "2024-02-01", 15.99)
	cafe := tx("u1", "Cafe", "2024-02-03", 4.5)
	netflixJan := tx("u1", "Netflix", "2024-01-01", 15.99)
	gym := tx("u1", "Gym", "2024-01-10", 30)
	hulu := tx("u1", "Hulu", "2024-01-12", 7.99)

	m := NewMerger(Config{MinVotes: 3, MinScore: 2.5, Rounds: 5})
	addAll(m, netflixFeb, map[string]string{"a": "1", "b": "1", "c": "1"})
	addAll(m, cafe, map[string]string{"a": "0", "b": "0", "c": "0"})
	addAll(m, netflixJan, map[string]string{"a": "1", "b": "1", "c": "0"})
	addAll(m, gym, map[string]string{"a": "1", "b": "1"})
	addAll(m, hulu, map[string]string{"a": "1", "b": "0", "c": "1"})

	// Act
	result := m.Resolve()

	// Assert
	assert.Equal(t, 5, result.Unique)
	assert.Equal(t, 4, result.Candidates)

	require.Len(t, result.Labelers, 3)
	assert.Equal(t, "a", result.Labelers[0].Name)
	assert.InDelta(t, 1.0, result.Labelers[0].F1, 1e-9)
	assert.Equal(t, "b", result.Labelers[1].Name)
	assert.InDelta(t, 0.8, result.Labelers[1].F1, 1e-9)
	assert.Equal(t, 1, result.Labelers[1].FN)
	assert.Equal(t, "c", result.Labelers[2].Name)
	assert.InDelta(t, 0.8, result.Labelers[2].F1, 1e-9)

	// the split votes only reach 1.8, below the required 2.5
	require.Len(t, result.Decisions, 2)
	assert.Equal(t, cafe, result.Decisions[0].Transaction)
	assert.Equal(t, transaction.NotRecurring, result.Decisions[0].Label)
	assert.InDelta(t, 2.6, result.Decisions[0].Score, 1e-9)
	assert.Equal(t, netflixFeb, result.Decisions[1].Transaction)
	assert.Equal(t, transaction.Recurring, result.Decisions[1].Label)
}

func TestMerger_OrdersByUserNameDate(t *testing.T) {
	m := NewMerger(DefaultConfig())
	rows := []transaction.Transaction{
		tx("u2", "Zoo", "2024-01-01", 10),
		tx("u1", "Netflix", "2024-03-01", 15.99),
		tx("u1", "Netflix", "2024-01-01", 15.99),
		tx("u1", "Apple", "2024-05-01", 0.99),
	}
	for _, r := range rows {
		addAll(m, r, map[string]string{"a": "1", "b": "1", "c": "1"})
	}

	result := m.Resolve()

	require.Len(t, result.Decisions, 4)
	var got []string
	for _, d := range result.Decisions {
		got = append(got, d.Transaction.UserID+"/"+d.Transaction.Name+"/"+d.Transaction.Date)
	}
	assert.Equal(t, []string{
		"u1/Apple/2024-05-01",
		"u1/Netflix/2024-01-01",
		"u1/Netflix/2024-03-01",
		"u2/Zoo/2024-01-01",
	}, got)
}

func TestMerger_MatchesIgnoringID(t *testing.T) {
	m := NewMerger(DefaultConfig())
	base := tx("u1", "Hulu", "2024-01-12", 7.99)

	for i, labeler := range []string{"a", "b", "c"} {
		row := base
		row.ID = int64(i + 10)
		m.Add(labeler, row, "1")
	}

	result := m.Resolve()

	assert.Equal(t, 1, result.Unique)
	require.Len(t, result.Decisions, 1)
	assert.Equal(t, int64(0), result.Decisions[0].Transaction.ID)
	assert.InDelta(t, 3.0, result.Decisions[0].Score, 1e-9)
}

func TestMerger_UndecidedVotesDoNotCount(t *testing.T) {
	m := NewMerger(DefaultConfig())
	addAll(m, tx("u1", "Hulu", "2024-01-12", 7.99), map[string]string{"a": "1", "b": "1", "c": "?"})

	result := m.Resolve()

	assert.Equal(t, 0, result.Candidates)
	assert.Empty(t, result.Decisions)
	assert.Empty(t, result.Labelers)
}

func TestNewMerger_Defaults(t *testing.T) {
	m := NewMerger(Config{})
	assert.Equal(t, DefaultConfig(), m.config)
}

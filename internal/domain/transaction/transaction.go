// Package transaction defines the transaction record that recurrence
// features are computed over, plus the grouping helpers used to build
// per-user histories.
package transaction

// Transaction is a single bank transaction.
//
// Only Name, Date and Amount are read by the feature code. Date is a
// calendar date in YYYY-MM-DD form.
type Transaction struct {
	ID     int64   `json:"id"`
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Key identifies a (user, vendor) bucket.
type Key struct {
	UserID string
	Name   string
}

// GroupByUserAndName buckets transactions by (UserID, Name).
// Order inside each bucket follows the input order.
func GroupByUserAndName(txs []Transaction) map[Key][]Transaction {
	groups := make(map[Key][]Transaction)
	for _, tx := range txs {
		k := Key{UserID: tx.UserID, Name: tx.Name}
		groups[k] = append(groups[k], tx)
	}
	return groups
}

// GroupByUser buckets transactions by UserID and returns the user IDs in
// first-seen order alongside the buckets.
func GroupByUser(txs []Transaction) ([]string, map[string][]Transaction) {
	var users []string
	groups := make(map[string][]Transaction)
	for _, tx := range txs {
		if _, ok := groups[tx.UserID]; !ok {
			users = append(users, tx.UserID)
		}
		groups[tx.UserID] = append(groups[tx.UserID], tx)
	}
	return users, groups
}

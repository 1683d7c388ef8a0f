package dto

import "github.com/eshaffer321/recurscan/internal/domain/transaction"

// FeaturesRequest asks for the features of one transaction against a
// history. The history should contain the transaction itself.
type FeaturesRequest struct {
	Transaction transaction.Transaction   `json:"transaction"`
	History     []transaction.Transaction `json:"history"`
}

// LabeledTransaction is a transaction with an optional recurring label.
type LabeledTransaction struct {
	transaction.Transaction
	Recurring *int `json:"recurring,omitempty"`
}

// CreateRunRequest submits a batch of transactions for a persisted run.
// Labels are stored only when every transaction carries one.
type CreateRunRequest struct {
	Source       string               `json:"source"`
	Transactions []LabeledTransaction `json:"transactions" binding:"required,min=1"`
}

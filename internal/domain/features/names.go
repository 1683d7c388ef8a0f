package features

// Feature names. Names lists them in column order.
const (
	NTransactionsSameAmount       = "n_transactions_same_amount"
	PercentTransactionsSameAmount = "percent_transactions_same_amount"
	EndsIn99Name                  = "ends_in_99"
	Amount                        = "amount"
	SameDayExact                  = "same_day_exact"
	PctTransactionsSameDay        = "pct_transactions_same_day"
	SameDayOffBy1                 = "same_day_off_by_1"
	SameDayOffBy2                 = "same_day_off_by_2"
	Days14ApartExact              = "14_days_apart_exact"
	PctDays14ApartExact           = "pct_14_days_apart_exact"
	Days14ApartOffBy1             = "14_days_apart_off_by_1"
	PctDays14ApartOffBy1          = "pct_14_days_apart_off_by_1"
	Days7ApartExact               = "7_days_apart_exact"
	PctDays7ApartExact            = "pct_7_days_apart_exact"
	Days7ApartOffBy1              = "7_days_apart_off_by_1"
	PctDays7ApartOffBy1           = "pct_7_days_apart_off_by_1"
	IsInsurance                   = "is_insurance"
	IsUtility                     = "is_utility"
	IsPhone                       = "is_phone"
	IsAlwaysRecurring             = "is_always_recurring"
	IsRecurring                   = "is_recurring"
	RecurringConfidence           = "recurring_transaction_confidence"
	SequenceConfidence            = "sequence_confidence"
	IsSequenceWeekly              = "is_sequence_weekly"
	IsSequenceMonthly             = "is_sequence_monthly"
	SequenceLength                = "sequence_length"
)

// Names is the fixed column order of a feature vector.
var Names = []string{
	NTransactionsSameAmount,
	PercentTransactionsSameAmount,
	EndsIn99Name,
	Amount,
	SameDayExact,
	PctTransactionsSameDay,
	SameDayOffBy1,
	SameDayOffBy2,
	Days14ApartExact,
	PctDays14ApartExact,
	Days14ApartOffBy1,
	PctDays14ApartOffBy1,
	Days7ApartExact,
	PctDays7ApartExact,
	Days7ApartOffBy1,
	PctDays7ApartOffBy1,
	IsInsurance,
	IsUtility,
	IsPhone,
	IsAlwaysRecurring,
	IsRecurring,
	RecurringConfidence,
	SequenceConfidence,
	IsSequenceWeekly,
	IsSequenceMonthly,
	SequenceLength,
}

// percentNames are the ratio features that are 0 over an empty history.
var percentNames = []string{
	PercentTransactionsSameAmount,
	PctTransactionsSameDay,
	PctDays14ApartExact,
	PctDays14ApartOffBy1,
	PctDays7ApartExact,
	PctDays7ApartOffBy1,
}

// IsPercent reports whether name is a ratio over the history size.
func IsPercent(name string) bool {
	for _, n := range percentNames {
		if n == name {
			return true
		}
	}
	return false
}

package domain

import "time"

// GemTransactionType classifies an entry in the gem ledger.
type GemTransactionType string

const (
	GemTxCredit         GemTransactionType = "credit"
	GemTxDebit          GemTransactionType = "debit"
	GemTxBadgeReward    GemTransactionType = "badge_reward"
	GemTxShieldPurchase GemTransactionType = "shield_purchase"
	GemTxStreakRecovery GemTransactionType = "streak_recovery"
)

// GemTransaction is one append-only ledger row. Amount is signed and
// BalanceAfter equals the previous balance plus Amount.
type GemTransaction struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	TransactionType GemTransactionType `json:"transaction_type"`
	Amount          int64              `json:"amount"`
	Source          string             `json:"source"`
	Description     string             `json:"description,omitempty"`
	BalanceAfter    int64              `json:"balance_after"`
	CreatedAt       time.Time          `json:"created_at"`
}

// GemReconciliation compares the cached balance against the ledger sum.
type GemReconciliation struct {
	UserID        string `json:"user_id"`
	StatsBalance  int64  `json:"stats_balance"`
	LedgerBalance int64  `json:"ledger_balance"`
	InSync        bool   `json:"in_sync"`
}

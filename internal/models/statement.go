package models

// DefaultStatementFlag selects the current statement when the caller sends none.
const DefaultStatementFlag = "C"

// StatementTransaction is one posted statement line. Keys are exactly StatementTransactionFields.
type StatementTransaction map[string]string

// StatementTransactionFields is the allow-list of backend Statement fields exposed to clients
var StatementTransactionFields = []string{
	"BillingAmount",
	"BillingCurrency",
	"Description",
	"PostingDate",
	"RunningBalance",
	"TransactionAmount",
	"TransactionCurrency",
	"TransactionDate",
	"ValueDate",
	"Wording",
}

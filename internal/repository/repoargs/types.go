package repoargs

type RepositoryName string

const (
	UserRepoName               RepositoryName = "user"
	OrderRepoName              RepositoryName = "order"
	TakeRepoName               RepositoryName = "executor_take"
	BalanceTransactionRepoName RepositoryName = "balance_transaction"
	PaymentInvoiceRepoName     RepositoryName = "payment_invoice"
)

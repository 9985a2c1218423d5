package repoargs

type RepositoryName string

const (
	AccountRepoName            RepositoryName = "account"
	OrderRepoName              RepositoryName = "order"
	PaymentTransactionRepoName RepositoryName = "payment_transaction"
	OutboxRepoName             RepositoryName = "outbox"
	InboxRepoName              RepositoryName = "inbox"
)

package domain

type FetchStatus string

const (
	FetchStatusFetched   FetchStatus = "fetched"
	FetchStatusSynthetic FetchStatus = "synthetic"
	FetchStatusSkipped   FetchStatus = "skipped"
)

// FetchOutcome records what happened to one configured symbol during a run.
type FetchOutcome struct {
	Symbol        Symbol
	Status        FetchStatus
	HistoryPoints int
	Reason        string
}

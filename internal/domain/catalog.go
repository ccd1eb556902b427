package domain

// ResultKind tags the outcome of a catalog load
type ResultKind int

const (
	ResultLoaded ResultKind = iota
	ResultEmpty
	ResultFailed
)

// String returns the result kind name
func (k ResultKind) String() string {
	switch k {
	case ResultLoaded:
		return "loaded"
	case ResultEmpty:
		return "empty"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CatalogResult is the outcome of one catalog load. It is produced once and
// consumed once by the gallery renderer.
type CatalogResult struct {
	Kind    ResultKind
	Entries []MediaEntry  // set for ResultLoaded, in catalog order
	Err     *CatalogError // set for ResultFailed
}

// Loaded returns a result carrying a non-empty catalog
func Loaded(entries []MediaEntry) CatalogResult {
	if len(entries) == 0 {
		return Empty()
	}
	return CatalogResult{Kind: ResultLoaded, Entries: entries}
}

// Empty returns the "no content" result
func Empty() CatalogResult {
	return CatalogResult{Kind: ResultEmpty}
}

// Failed returns a failed result
func Failed(err *CatalogError) CatalogResult {
	return CatalogResult{Kind: ResultFailed, Err: err}
}

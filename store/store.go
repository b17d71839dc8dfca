// Package store persists the visited link set between crawl runs.
package store

// VisitedStore loads the visited set persisted by prior runs and overwrites
// it wholesale at the end of the current run. Load treats absent prior state
// as empty rather than failing, so a cold cache run needs no setup.
type VisitedStore interface {
	Load() ([]string, error)
	Save(links []string) error
}

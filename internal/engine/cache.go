package engine

import "sync"

// Loader caches the table on first use. Later calls return the same *Table,
// or the same error, without reading the file again.
type Loader struct {
	path string

	once  sync.Once
	table *Table
	err   error
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Path() string { return l.path }

func (l *Loader) Load() (*Table, error) {
	l.once.Do(func() {
		l.table, l.err = Load(l.path)
	})
	return l.table, l.err
}

package store

import (
	"github.com/mdrtools/cacheprimer/sqldb"
)

const linkColumnType = "VARCHAR(500)"

// SQLStore keeps the visited set in a MySQL table so several operators can
// prime against shared state.
type SQLStore struct {
	db sqldb.DBer
	options
}

func NewSQLStore(opts ...Option) (*SQLStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	s := &SQLStore{options: options}
	db, err := sqldb.NewSqlDB(
		sqldb.WithDSN(s.dsn),
		sqldb.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	s.db = db
	if err := s.db.CreateTable(sqldb.TableData{
		TableName:   s.table,
		ColumnNames: []sqldb.Field{{Title: "link", Type: linkColumnType}},
	}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SQLStore) Load() ([]string, error) {
	return s.db.SelectColumn(s.table, "link")
}

// Save replaces the stored set wholesale, matching the file store semantics.
func (s *SQLStore) Save(links []string) error {
	if err := s.db.Truncate(s.table); err != nil {
		return err
	}
	args := make([]any, 0, len(links))
	for _, link := range links {
		args = append(args, link)
	}
	return s.db.Insert(sqldb.TableData{
		TableName:   s.table,
		ColumnNames: []sqldb.Field{{Title: "link", Type: linkColumnType}},
		Args:        args,
		DataCount:   len(links),
	})
}

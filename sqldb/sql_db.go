package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type DBer interface {
	CreateTable(TableData) error
	Truncate(tableName string) error
	Insert(TableData) error
	SelectColumn(tableName, columnName string) ([]string, error)
}

type SqlDB struct {
	options
	db *sql.DB
}

type Field struct {
	Title string
	Type  string
}

type TableData struct {
	TableName   string
	ColumnNames []Field
	Args        []any
	DataCount   int
	AutoKey     bool
}

func NewSqlDB(opts ...Option) (*SqlDB, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	s := &SqlDB{options: options}
	if err := s.openDB(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SqlDB) openDB() error {
	db, err := sql.Open("mysql", s.dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	if err := db.Ping(); err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *SqlDB) CreateTable(t TableData) error {
	if len(t.ColumnNames) == 0 {
		return errors.New("column can not be empty")
	}
	sql := `CREATE TABLE IF NOT EXISTS ` + t.TableName + " ("
	if t.AutoKey {
		sql += `id INT(12) NOT NULL PRIMARY KEY AUTO_INCREMENT,`
	}
	for _, c := range t.ColumnNames {
		sql += c.Title + ` ` + c.Type + `,`
	}
	sql = sql[:len(sql)-1] + `) ENGINE=InnoDB DEFAULT CHARSET=utf8;`
	s.logger.Debug("create table", zap.String("sql", sql))
	_, err := s.db.Exec(sql)

	return err
}

func (s *SqlDB) Truncate(tableName string) error {
	_, err := s.db.Exec(`TRUNCATE TABLE ` + tableName + `;`)
	return err
}

func (s *SqlDB) Insert(t TableData) error {
	if len(t.ColumnNames) == 0 {
		return errors.New("empty column")
	}
	if t.DataCount == 0 {
		return nil
	}
	sql := `INSERT INTO ` + t.TableName + `(`
	for _, c := range t.ColumnNames {
		sql += c.Title + ","
	}
	sql = sql[:len(sql)-1] + `) VALUES `
	row := "(" + strings.TrimPrefix(strings.Repeat(",?", len(t.ColumnNames)), ",") + ")"
	sql += strings.TrimPrefix(strings.Repeat(","+row, t.DataCount), ",") + `;`
	s.logger.Debug("insert table", zap.String("sql", sql))
	_, err := s.db.Exec(sql, t.Args...)

	return err
}

func (s *SqlDB) SelectColumn(tableName, columnName string) ([]string, error) {
	rows, err := s.db.Query(`SELECT ` + columnName + ` FROM ` + tableName + `;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

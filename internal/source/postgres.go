package source

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/records"
)

// Table names one record table and the column rows are ordered by.
type Table struct {
	Name    string
	OrderBy string
}

// DefaultTables maps every record kind to the table it is read from.
var DefaultTables = map[records.Kind]Table{
	records.KindResources: {Name: "resources", OrderBy: "resource_id"},
	records.KindGroups:    {Name: "resource_groups", OrderBy: "resource_group_id"},
	records.KindTasks:     {Name: "tasks", OrderBy: "taskno"},
}

// Postgres loads records from database tables whose columns carry the record
// field names. Each row is read as JSON, so column types only need to be
// representable by row_to_json.
type Postgres struct {
	db     *sql.DB
	tables map[records.Kind]Table
}

// NewPostgres opens a pgx-backed database handle. The connection is checked on
// the first Load. Nil tables selects DefaultTables.
func NewPostgres(dsn string, tables map[records.Kind]Table) (*Postgres, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if tables == nil {
		tables = DefaultTables
	}
	return &Postgres{db: db, tables: tables}, nil
}

// Close releases the database handle.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Load implements Loader.
func (p *Postgres) Load(ctx context.Context) (*records.Set, error) {
	logger := ctxlog.FromContext(ctx)
	if err := p.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	set := &records.Set{}
	for _, kind := range records.Kinds {
		table, ok := p.tables[kind]
		if !ok {
			return nil, fmt.Errorf("no table configured for %s records", kind)
		}
		rows, err := p.readRows(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("reading %s records from %s: %w", kind, table.Name, err)
		}
		if err := records.Decode(kind, records.FormatJSON, table.Name, jsonArray(rows), set); err != nil {
			return nil, err
		}
		logger.Debug("Record table loaded.", "table", table.Name, "rows", len(rows))
	}

	logger.Info("Records loaded.", "source", "postgres", "resources", len(set.Resources), "groups", len(set.Groups), "tasks", len(set.Tasks))
	return set, nil
}

func (p *Postgres) readRows(ctx context.Context, table Table) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, selectQuery(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var row string
		if err := rows.Scan(&row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func selectQuery(table Table) string {
	name := pgx.Identifier(strings.Split(table.Name, ".")).Sanitize()
	q := "SELECT row_to_json(t)::text FROM " + name + " AS t"
	if table.OrderBy != "" {
		q += " ORDER BY t." + pgx.Identifier{table.OrderBy}.Sanitize()
	}
	return q
}

// jsonArray joins JSON documents into one JSON array.
func jsonArray(rows []string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(row)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

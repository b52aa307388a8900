// Package warehouse executes the activity query against the data warehouse
// and returns raw rows for normalization. It speaks database/sql so the
// backing driver stays a deployment choice.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/htan-dcc/synapse-monitor/internal/activity"
)

// Config selects the driver, DSN, and query template for a deployment.
type Config struct {
	Driver    string
	DSN       string
	QueryFile string
}

// Client wraps a warehouse connection pool.
type Client struct {
	db        *sql.DB
	queryFile string
	logger    zerolog.Logger
}

// Open creates a Client. The connection is established lazily; call Ping to
// verify credentials up front.
func Open(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("warehouse DSN not configured")
	}
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse connection: %w", err)
	}
	return &Client{
		db:        db,
		queryFile: cfg.QueryFile,
		logger:    logger.With().Str("component", "warehouse").Logger(),
	}, nil
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// FetchActivity runs the activity query for the given lookback window and
// returns one Row per file change event. Column names are lowercased so the
// row keys match the normalizer's contract regardless of the warehouse's
// case conventions.
func (c *Client) FetchActivity(ctx context.Context, daysBack int) ([]activity.Row, error) {
	query, err := LoadQuery(c.queryFile, daysBack)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}
	for i, col := range cols {
		cols[i] = strings.ToLower(col)
	}

	var out []activity.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		row := make(activity.Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity rows: %w", err)
	}

	c.logger.Debug().Int("rows", len(out)).Int("days_back", daysBack).Msg("activity query executed")
	return out, nil
}

package recording

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"
)

// ClickHouseOptions configures the connection of a ClickHouseRecorder.
type ClickHouseOptions struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// ClickHouseOptionsFromEnv reads connection options from the CLICKHOUSE_*
// environment variables, after loading a .env file if one is present.
func ClickHouseOptionsFromEnv() ClickHouseOptions {
	// Missing .env files are fine; the variables may be set directly.
	_ = godotenv.Load()

	opts := ClickHouseOptions{
		Host:     "localhost",
		Port:     9000,
		Database: "default",
		Username: "default",
	}

	if host := os.Getenv("CLICKHOUSE_HOST"); host != "" {
		opts.Host = host
	}

	if portStr := os.Getenv("CLICKHOUSE_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			panic(fmt.Errorf("bad CLICKHOUSE_PORT: %w", err))
		}
		opts.Port = port
	}

	if db := os.Getenv("CLICKHOUSE_DATABASE"); db != "" {
		opts.Database = db
	}

	if user := os.Getenv("CLICKHOUSE_USERNAME"); user != "" {
		opts.Username = user
	}

	opts.Password = os.Getenv("CLICKHOUSE_PASSWORD")

	return opts
}

// ClickHouseRecorder records traversal rounds into a ClickHouse database
// using the native protocol and type-specific batches.
type ClickHouseRecorder struct {
	conn      clickhouse.Conn
	mu        sync.Mutex
	batchSize int

	tables     map[string]struct{}
	roundBatch []RoundStats
}

// NewClickHouseRecorder connects to ClickHouse and returns a recorder.
// Buffered entries are flushed at process exit.
func NewClickHouseRecorder(
	opts ClickHouseOptions,
	batchSize int,
) *ClickHouseRecorder {
	if batchSize == 0 {
		batchSize = 100000
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", opts.Host, opts.Port)},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      time.Second * 30,
		MaxOpenConns:     5,
		MaxIdleConns:     5,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect to ClickHouse: %w", err))
	}

	if err := conn.Ping(context.Background()); err != nil {
		panic(fmt.Errorf("failed to ping ClickHouse: %w", err))
	}

	r := &ClickHouseRecorder{
		conn:      conn,
		batchSize: batchSize,
		tables:    make(map[string]struct{}),
	}

	atexit.Register(func() { r.Flush() })

	return r
}

// CreateTable creates a table for RoundStats entries. Other entry shapes are
// not supported by this backend.
func (r *ClickHouseRecorder) CreateTable(tableName string, sampleEntry any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch sampleEntry.(type) {
	case RoundStats:
	default:
		panic(fmt.Sprintf(
			"ClickHouse recorder does not support entry type %T", sampleEntry))
	}

	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			RunID String,
			Traverser String,
			Algorithm String,
			Source Int64,
			NodesVisited Int64,
			FrontierPeak Int64,
			DurationNS Int64
		) ENGINE = MergeTree()
		ORDER BY (RunID, Algorithm)`, tableName)

	err := r.conn.Exec(context.Background(), createSQL)
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	r.tables[tableName] = struct{}{}
}

// InsertData buffers an entry for insertion into an existing table.
func (r *ClickHouseRecorder) InsertData(tableName string, entry any) {
	r.mu.Lock()

	if _, exists := r.tables[tableName]; !exists {
		r.mu.Unlock()
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	stats, ok := entry.(RoundStats)
	if !ok {
		r.mu.Unlock()
		panic(fmt.Sprintf(
			"ClickHouse recorder does not support entry type %T", entry))
	}

	r.roundBatch = append(r.roundBatch, stats)
	full := len(r.roundBatch) >= r.batchSize
	r.mu.Unlock()

	if full {
		r.Flush()
	}
}

// ListTables returns the names of all created tables.
func (r *ClickHouseRecorder) ListTables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables := make([]string, 0, len(r.tables))
	for table := range r.tables {
		tables = append(tables, table)
	}

	return tables
}

// Flush writes all buffered entries to the database.
func (r *ClickHouseRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.roundBatch) == 0 {
		return
	}

	ctx := context.Background()

	batch, err := r.conn.PrepareBatch(ctx,
		fmt.Sprintf("INSERT INTO %s", RoundStatsTable))
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch: %w", err))
	}

	for _, entry := range r.roundBatch {
		err = batch.Append(
			entry.RunID,
			entry.Traverser,
			entry.Algorithm,
			int64(entry.Source),
			int64(entry.NodesVisited),
			int64(entry.FrontierPeak),
			entry.DurationNS,
		)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	err = batch.Send()
	if err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	r.roundBatch = r.roundBatch[:0]
}

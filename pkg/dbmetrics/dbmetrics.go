// Package dbmetrics - обертка над *sql.DB со сбором метрик Prometheus
// и передачей активной транзакции через context.
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/SyahmiDin/app-raya-studio/pkg/metrics"
)

// DBExecutor минимальный интерфейс для выполнения запросов.
// Реализуется *sql.DB, *sql.Tx, *dbmetrics.DB и *dbmetrics.Tx.
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type ctxKey int

const txKey ctxKey = iota

// WithTx кладет активную транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она там есть,
// иначе переданный fallback (обычно *sql.DB или *dbmetrics.DB)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(TxExecutor)
	return ok
}

// DB обертка над *sql.DB с метриками
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	dbName  string
}

const poolStatsInterval = 15 * time.Second

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор статистики
// connection pool. Сбор останавливается закрытием stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, metrics: m, dbName: dbName}
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBPoolOpenConnections.WithLabelValues(d.dbName).Set(float64(stats.OpenConnections))
			d.metrics.DBPoolInUse.WithLabelValues(d.dbName).Set(float64(stats.InUse))
			d.metrics.DBPoolIdle.WithLabelValues(d.dbName).Set(float64(stats.Idle))
			d.metrics.DBPoolWaitCount.WithLabelValues(d.dbName).Set(float64(stats.WaitCount))
		}
	}
}

// QueryContext выполняет запрос с замером времени
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с замером времени
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, nil)
	return row
}

// ExecContext выполняет запрос без результата с замером времени
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return result, err
}

// BeginTx начинает транзакцию; запросы внутри нее тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	op := queryOperation(query)
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.DBQueriesTotal.WithLabelValues(op, status).Inc()
	d.metrics.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Tx транзакция с метриками
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe(query, start, nil)
	return row
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return result, err
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// queryOperation извлекает тип операции из SQL запроса для метки метрики
func queryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

package observability

import (
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	queryStartKey = "postboard:query_start"
	querySpanKey  = "postboard:query_span"
)

// QueryPlugin is a GORM plugin that records a latency sample and a client span
// for every statement executed through the handle it is registered on.
type QueryPlugin struct{}

// Name implements gorm.Plugin.
func (QueryPlugin) Name() string {
	return "postboard:observability"
}

// Initialize implements gorm.Plugin.
func (p QueryPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	type hook struct {
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name string, fn func(*gorm.DB)) error
	}
	hooks := []hook{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.before("postboard:before_"+h.operation, p.before(h.operation)); err != nil {
			return fmt.Errorf("register before %s callback: %w", h.operation, err)
		}
		if err := h.after("postboard:after_"+h.operation, p.after(h.operation)); err != nil {
			return fmt.Errorf("register after %s callback: %w", h.operation, err)
		}
	}
	return nil
}

func (QueryPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx, span := Tracer.Start(db.Statement.Context, "gorm."+operation,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attribute.String("db.operation", operation)),
		)
		db.Statement.Context = ctx
		db.InstanceSet(querySpanKey, span)
		db.InstanceSet(queryStartKey, time.Now())
	}
}

func (QueryPlugin) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}

		if v, ok := db.InstanceGet(queryStartKey); ok {
			if start, ok := v.(time.Time); ok {
				ObserveQuery(operation, table, start)
			}
		}

		v, ok := db.InstanceGet(querySpanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		span.SetAttributes(
			attribute.String("db.table", table),
			attribute.Int64("db.rows_affected", db.RowsAffected),
		)
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.RecordError(db.Error)
			span.SetStatus(codes.Error, db.Error.Error())
		}
		span.End()
	}
}

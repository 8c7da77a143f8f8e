package trace

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type spanKey struct{}

// GormPlugin opens a client span around every gorm statement
type GormPlugin struct {
	WithQuery bool
}

func NewGormPlugin(withQuery bool) *GormPlugin {
	return &GormPlugin{WithQuery: withQuery}
}

func (p *GormPlugin) Name() string {
	return "guild:otel"
}

func (p *GormPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	before := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) { p.before(tx, op) }
	}
	if err := cb.Create().Before("gorm:create").Register("otel:before_create", before("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("otel:before_query", before("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("otel:before_update", before("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", before("delete")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("otel:before_row", before("row")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("otel:before_raw", before("raw")); err != nil {
		return err
	}

	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("otel:after_row", p.after); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("otel:after_raw", p.after)
}

func (p *GormPlugin) before(db *gorm.DB, op string) {
	if db.Statement == nil {
		return
	}
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	// no parent, no span: keeps migrations and background queries quiet
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return
	}

	ctx, span := Tracer("gorm").Start(ctx, "gorm."+op, trace.WithSpanKind(trace.SpanKindClient))
	attrs := []attribute.KeyValue{
		attribute.String("db.system", dbSystem(db)),
		attribute.String("db.operation", op),
	}
	if db.Statement.Schema != nil && db.Statement.Schema.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", db.Statement.Schema.Table))
	} else if db.Statement.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attrs...)
	db.Statement.Context = context.WithValue(ctx, spanKey{}, span)
}

func (p *GormPlugin) after(db *gorm.DB) {
	if db.Statement == nil || db.Statement.Context == nil {
		return
	}
	span, ok := db.Statement.Context.Value(spanKey{}).(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if p.WithQuery {
		if sql := db.Statement.SQL.String(); sql != "" {
			span.SetAttributes(attribute.String("db.statement", sql))
		}
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if err := db.Error; err != nil && !isRecordNotFound(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func dbSystem(db *gorm.DB) string {
	if db.Dialector == nil {
		return "sql"
	}
	switch name := strings.ToLower(db.Dialector.Name()); name {
	case "postgres":
		return "postgresql"
	default:
		return name
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

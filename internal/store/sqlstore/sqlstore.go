// Package sqlstore is the database/sql Store shared by the sqlite and
// postgres drivers. Queries are built with squirrel and the schema is managed
// by embedded goose migrations.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"io/fs"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// Dialect selects placeholders, JSON column handling and migrations.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

const table = "conversations"

var columns = []string{
	"conversation_id", "user_id", "message_text", "message_context", "received_at",
	"intent", "confidence", "success", "reply_text", "action_payload", "error", "started_at",
}

// Store implements store.Store on a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
	qb      sq.StatementBuilderType
}

// New wraps db. Call Migrate before first use.
func New(db *sql.DB, dialect Dialect) *Store {
	qb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == Postgres {
		qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &Store{db: db, dialect: dialect, qb: qb}
}

// Migrate applies pending migrations for the dialect.
func (s *Store) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(migrations, "migrations/"+string(s.dialect))
	if err != nil {
		return errors.Wrap(err, "migrations fs")
	}
	gd := goose.DialectSQLite3
	if s.dialect == Postgres {
		gd = goose.DialectPostgres
	}
	provider, err := goose.NewProvider(gd, s.db, sub)
	if err != nil {
		return errors.Wrap(err, "goose new provider")
	}
	if _, err := provider.Up(ctx); err != nil {
		return errors.Wrap(err, "goose up")
	}
	return nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Append(ctx context.Context, rec model.ConversationRecord) error {
	msgCtx, err := marshalMap(rec.Message.Context)
	if err != nil {
		return errors.Wrap(err, "encode message context")
	}
	if msgCtx == nil {
		msgCtx = []byte("{}")
	}
	payload, err := marshalMap(rec.Result.ActionPayload)
	if err != nil {
		return errors.Wrap(err, "encode action payload")
	}

	query, args, err := s.qb.Insert(table).
		Columns(columns...).
		Values(
			rec.ConversationID, rec.UserID, rec.Message.Text, jsonArg(msgCtx), rec.Message.ReceivedAt.UnixNano(),
			string(rec.Intent), rec.Confidence, rec.Result.Success, rec.Result.ReplyText, jsonArg(payload),
			rec.Result.Error, rec.StartedAt.UnixNano(),
		).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build insert")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert conversation")
	}
	return nil
}

func (s *Store) HistoryFor(ctx context.Context, userID string, limit int) ([]model.ConversationRecord, error) {
	sel := s.qb.Select(append([]string{"id"}, columns...)...).
		From(table).
		Where(sq.Eq{"user_id": userID})
	if limit > 0 {
		sel = sel.OrderBy("id DESC").Limit(uint64(limit))
	} else {
		sel = sel.OrderBy("id ASC")
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query history")
	}
	defer func() { _ = rows.Close() }()

	var out []model.ConversationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate history")
	}
	if limit > 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (s *Store) Purge(ctx context.Context, userID string) (int, error) {
	query, args, err := s.qb.Delete(table).Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build delete")
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "purge conversations")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}
	return int(n), nil
}

// jsonArg binds encoded JSON as text; nil stays NULL.
func jsonArg(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

func scanRecord(rows *sql.Rows) (model.ConversationRecord, error) {
	var (
		id                  int64
		rec                 model.ConversationRecord
		intent              string
		msgCtx, payload     sql.NullString
		receivedAt, started int64
	)
	err := rows.Scan(&id,
		&rec.ConversationID, &rec.UserID, &rec.Message.Text, &msgCtx, &receivedAt,
		&intent, &rec.Confidence, &rec.Result.Success, &rec.Result.ReplyText, &payload,
		&rec.Result.Error, &started,
	)
	if err != nil {
		return rec, errors.Wrap(err, "scan conversation")
	}
	rec.Message.UserID = rec.UserID
	rec.Message.ReceivedAt = time.Unix(0, receivedAt).UTC()
	rec.StartedAt = time.Unix(0, started).UTC()
	rec.Intent = model.Intent(intent)

	if rec.Message.Context, err = unmarshalMap(msgCtx); err != nil {
		return rec, errors.Wrapf(err, "decode context of record %d", id)
	}
	if len(rec.Message.Context) == 0 {
		rec.Message.Context = nil
	}
	if rec.Result.ActionPayload, err = unmarshalMap(payload); err != nil {
		return rec, errors.Wrapf(err, "decode payload of record %d", id)
	}
	return rec, nil
}

func marshalMap(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalMap(s sql.NullString) (map[string]any, error) {
	if !s.Valid || s.String == "" || s.String == "null" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}

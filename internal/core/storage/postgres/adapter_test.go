package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/aevon-lab/tillsync/internal/core/partition"
	"github.com/aevon-lab/tillsync/internal/core/storage"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_CreateOrders(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	orders := []*aggregation.Order{
		{ID: "ord-1", OrderID: "T1", Timestamp: ts, TotalPrice: 850, Business: "biz-1", RecordType: aggregation.RecordTypeOrder},
		{ID: "ord-2", OrderID: "T2", Timestamp: ts, TotalPrice: 300, Business: "biz-1", RecordType: aggregation.RecordTypeOrder},
	}

	tests := []struct {
		name       string
		mockResult func(mock sqlmock.Sqlmock)
		assertions func(t *testing.T, err error)
	}{
		{
			name: "commits whole batch",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				for _, o := range orders {
					mock.ExpectExec(regexp.QuoteMeta(queryInsertDocument)).
						WithArgs(
							"biz-1",
							o.ID,
							partition.For("biz-1"),
							aggregation.RecordTypeOrder,
							o.OrderID,
							ts,
							sqlmock.AnyArg(),
							sqlmock.AnyArg(),
						).
						WillReturnResult(sqlmock.NewResult(0, 1))
				}
				mock.ExpectCommit()
			},
			assertions: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "unique violation rolls back and maps to ErrConflict",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(queryInsertDocument)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta(queryInsertDocument)).
					WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "documents_business_order_id_key"})
				mock.ExpectRollback()
			},
			assertions: func(t *testing.T, err error) {
				require.ErrorIs(t, err, storage.ErrConflict)
				require.ErrorContains(t, err, "ord-2")
			},
		},
		{
			name: "other driver errors pass through",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(queryInsertDocument)).
					WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			assertions: func(t *testing.T, err error) {
				require.Error(t, err)
				require.NotErrorIs(t, err, storage.ErrConflict)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			tc.mockResult(mock)
			err := adapter.CreateOrders(context.Background(), orders)
			tc.assertions(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_CreateOrders_EmptyBatchIsNoop(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	require.NoError(t, adapter.CreateOrders(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ExistingOrderIDs(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	ids := []string{"T1", "T2", "T3"}
	mock.ExpectQuery(regexp.QuoteMeta(queryExistingOrderIDs)).
		WithArgs("biz-1", pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow("T1").AddRow("T3"))

	existing, err := adapter.ExistingOrderIDs(context.Background(), "biz-1", ids)
	require.NoError(t, err)
	assert.Len(t, existing, 2)
	assert.Contains(t, existing, "T1")
	assert.Contains(t, existing, "T3")
	assert.NotContains(t, existing, "T2")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ExistingOrderIDs_EmptyInputSkipsQuery(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	existing, err := adapter.ExistingOrderIDs(context.Background(), "biz-1", nil)
	require.NoError(t, err)
	assert.Empty(t, existing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_QueryAggregates(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	stored := aggregation.NewAggregate("biz-1", aggregation.PeriodDay, "2024-01-15")
	stored.TotalRevenue = 850
	stored.OrderCount = 1
	stored.ItemsSold["Coffee"] = 2
	stored.ProcessedTransactions = []string{"T1"}
	body, err := json.Marshal(stored)
	require.NoError(t, err)

	ids := []string{"day-2024-01-15", "week-2024-W3"}
	mock.ExpectQuery(regexp.QuoteMeta(queryAggregatesByID)).
		WithArgs("biz-1", aggregation.RecordTypeTimeReport, pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).AddRow(stored.ID, body))

	got, err := adapter.QueryAggregates(context.Background(), "biz-1", ids)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stored, got["day-2024-01-15"])
	assert.NotContains(t, got, "week-2024-W3")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_QueryAggregates_CorruptBody(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryAggregatesByID)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).AddRow("day-2024-01-15", []byte("{not json")))

	_, err := adapter.QueryAggregates(context.Background(), "biz-1", []string{"day-2024-01-15"})
	require.ErrorContains(t, err, "failed to unmarshal document day-2024-01-15")
}

func TestAdapter_UpsertAggregate(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	agg := aggregation.NewAggregate("biz-1", aggregation.PeriodMonth, "2024-01")
	agg.TotalRevenue = 1200

	mock.ExpectExec(regexp.QuoteMeta(queryUpsertDocument)).
		WithArgs(
			"biz-1",
			"month-2024-01",
			partition.For("biz-1"),
			aggregation.RecordTypeTimeReport,
			nil,
			nil,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.UpsertAggregate(context.Background(), agg))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_UpsertAggregate_Error(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryUpsertDocument)).
		WillReturnError(errors.New("throttled"))

	err := adapter.UpsertAggregate(context.Background(), aggregation.NewAggregate("biz-1", aggregation.PeriodYear, "2024"))
	require.ErrorContains(t, err, "failed to upsert aggregate year-2024")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ListOrders(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	first := &aggregation.Order{ID: "ord-1", OrderID: "T1", Business: "biz-1", Timestamp: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), RecordType: aggregation.RecordTypeOrder}
	second := &aggregation.Order{ID: "ord-2", OrderID: "T2", Business: "biz-1", Timestamp: time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC), RecordType: aggregation.RecordTypeOrder}
	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)

	mock.ExpectQuery(regexp.QuoteMeta(queryListByRecordType)).
		WithArgs("biz-1", aggregation.RecordTypeOrder).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).AddRow("ord-1", b1).AddRow("ord-2", b2))

	orders, err := adapter.ListOrders(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "T1", orders[0].OrderID)
	assert.Equal(t, "T2", orders[1].OrderID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ListAggregates_Empty(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryListByRecordType)).
		WithArgs("biz-1", aggregation.RecordTypeTimeReport).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}))

	aggs, err := adapter.ListAggregates(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.NotNil(t, aggs)
	assert.Empty(t, aggs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		body, _ := json.Marshal(&aggregation.Profile{ID: "uid-1", Business: "biz-1", DeviceID: "till-7", RecordType: aggregation.RecordTypeProfile})
		mock.ExpectQuery(regexp.QuoteMeta(queryGetProfile)).
			WithArgs("uid-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).AddRow("uid-1", body))

		p, err := adapter.GetProfile(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "biz-1", p.Business)
		assert.Equal(t, "till-7", p.DeviceID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown uid maps to ErrNotFound", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(queryGetProfile)).
			WithArgs("uid-x").
			WillReturnRows(sqlmock.NewRows([]string{"id", "body"}))

		_, err := adapter.GetProfile(context.Background(), "uid-x")
		require.ErrorIs(t, err, storage.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdapter_UpsertProfile_StampsRecordType(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryUpsertDocument)).
		WithArgs(
			"biz-1",
			"uid-1",
			partition.For("biz-1"),
			aggregation.RecordTypeProfile,
			nil,
			nil,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.UpsertProfile(context.Background(), &aggregation.Profile{ID: "uid-1", Business: "biz-1", DeviceID: "till-7"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := &Adapter{
		db:                 db,
		stmtUpsert:         mustPrepareStmt(t, db, mock, queryUpsertDocument),
		stmtExistingOrder:  mustPrepareStmt(t, db, mock, queryExistingOrderIDs),
		stmtAggregatesByID: mustPrepareStmt(t, db, mock, queryAggregatesByID),
	}

	return adapter, mock, db
}

func mustPrepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, query string) *sql.Stmt {
	t.Helper()

	mock.ExpectPrepare(regexp.QuoteMeta(query))
	stmt, err := db.Prepare(query)
	require.NoError(t, err)
	return stmt
}

func TestNewAdapterFromDB_RequiresDocumentsTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = NewAdapterFromDB(db)
	require.ErrorContains(t, err, "documents table does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewAdapterFromDB_PreparesStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertDocument))
	mock.ExpectPrepare(regexp.QuoteMeta(queryExistingOrderIDs))
	mock.ExpectPrepare(regexp.QuoteMeta(queryAggregatesByID))

	adapter, err := NewAdapterFromDB(db)
	require.NoError(t, err)
	require.NotNil(t, adapter)
	require.NoError(t, mock.ExpectationsWereMet())
}

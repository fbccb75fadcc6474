package compliance

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"guardops/internal/platform/config"
)

func newMockService(t *testing.T, rules config.ComplianceRules) (pgxmock.PgxPoolIface, *Service) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewService(NewStore(mock), rules)
}

func categoryRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "weight", "score", "max_score", "trend"}).
		AddRow("cat-1", "PSARA Licenses", 1.0, 64.0, 100.0, "stable")
}

func emptyItemRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "category_id", "name", "status", "score", "max_score", "due_date", "action_required"})
}

func TestRecalculateZeroItemCategoryKeepsScore(t *testing.T) {
	mock, svc := newMockService(t, config.ComplianceRules{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM compliance_categories")).WillReturnRows(categoryRows())
	mock.ExpectQuery(regexp.QuoteMeta("FROM compliance_items")).WithArgs("cat-1").WillReturnRows(emptyItemRows())
	mock.ExpectExec(regexp.QuoteMeta("UPDATE compliance_categories")).
		WithArgs(64.0, 100.0, TrendFlat, "cat-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT overall FROM compliance_scores")).
		WillReturnRows(pgxmock.NewRows([]string{"overall"}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO compliance_scores")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("score-1"))

	score, err := svc.Recalculate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Overall != 64 {
		t.Fatalf("expected overall 64, got %d", score.Overall)
	}
	if score.Trend != OverallStable {
		t.Fatalf("expected stable trend with no history, got %s", score.Trend)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecalculateWeightValidation(t *testing.T) {
	mock, svc := newMockService(t, config.ComplianceRules{ValidateWeights: true, WeightSumTolerance: 0.001})
	rows := pgxmock.NewRows([]string{"id", "name", "weight", "score", "max_score", "trend"}).
		AddRow("cat-1", "PSARA Licenses", 0.5, 64.0, 100.0, "stable")
	mock.ExpectQuery(regexp.QuoteMeta("FROM compliance_categories")).WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM compliance_items")).WithArgs("cat-1").WillReturnRows(emptyItemRows())

	_, err := svc.Recalculate(context.Background())
	if !errors.Is(err, ErrWeightSumMismatch) {
		t.Fatalf("expected ErrWeightSumMismatch, got %v", err)
	}
}

func TestRecalculateTrendAgainstHistory(t *testing.T) {
	mock, svc := newMockService(t, config.ComplianceRules{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM compliance_categories")).WillReturnRows(categoryRows())
	mock.ExpectQuery(regexp.QuoteMeta("FROM compliance_items")).WithArgs("cat-1").WillReturnRows(emptyItemRows())
	mock.ExpectExec(regexp.QuoteMeta("UPDATE compliance_categories")).
		WithArgs(64.0, 100.0, TrendFlat, "cat-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT overall FROM compliance_scores")).
		WillReturnRows(pgxmock.NewRows([]string{"overall"}).AddRow(70))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO compliance_scores")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("score-2"))

	score, err := svc.Recalculate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Trend != OverallDeclining {
		t.Fatalf("expected declining (70 -> 64), got %s", score.Trend)
	}
}

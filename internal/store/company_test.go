package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var candidateColumns = []string{
	"name", "tel", "email", "main_business_sector",
	"other_business_sector", "ipo_type",
	"office_number", "office_name",
	"office_type_name1", "office_type_name2", "url",
}

func TestFindCandidatesDisjunctiveQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(candidateColumns).
		AddRow("サンプル商事", "0312345678", "info@sample.co.jp", "卸売", "", 3, "101", "本社", "本店", "", "https://sample.co.jp").
		AddRow("テスト工業", "0451112222", "", "製造", "", nil, "", "", "", "", "")

	mock.ExpectQuery(`tel IN \(\?,\?\) OR name LIKE \? OR name LIKE \?`).
		WithArgs("0312345678", "0451112222", "%サンプル%", "%テスト%").
		WillReturnRows(rows)

	store := NewStore(db, "companies")
	companies, err := store.FindCandidates(
		[]string{"サンプル", "テスト"},
		[]string{"0312345678", "0451112222"},
	)
	if err != nil {
		t.Fatalf("FindCandidates() error = %v", err)
	}

	if len(companies) != 2 {
		t.Fatalf("got %d candidates, want 2", len(companies))
	}
	if companies[0].Name != "サンプル商事" || companies[0].Tel != "0312345678" {
		t.Errorf("unexpected first candidate: %+v", companies[0])
	}
	if !companies[0].IPOType.Valid || companies[0].IPOType.Int64 != 3 {
		t.Errorf("first candidate ipo_type = %+v, want 3", companies[0].IPOType)
	}
	if companies[1].IPOType.Valid {
		t.Errorf("second candidate ipo_type should be null, got %+v", companies[1].IPOType)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindCandidatesNamesOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE name LIKE \?`).
		WithArgs("%サンプル%").
		WillReturnRows(sqlmock.NewRows(candidateColumns))

	store := NewStore(db, "companies")
	companies, err := store.FindCandidates([]string{"サンプル"}, nil)
	if err != nil {
		t.Fatalf("FindCandidates() error = %v", err)
	}
	if len(companies) != 0 {
		t.Errorf("got %d candidates, want 0", len(companies))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Empty values must never reach the store: a batch whose identifying
// values are all empty yields an empty pool without a round trip.
func TestFindCandidatesAllEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStore(db, "companies")
	companies, err := store.FindCandidates([]string{"", ""}, []string{""})
	if err != nil {
		t.Fatalf("FindCandidates() error = %v", err)
	}
	if companies != nil {
		t.Errorf("got %v, want nil pool", companies)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("store was queried for an all-empty batch: %v", err)
	}
}

func TestFindCandidatesFiltersEmptyValues(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	// Only the non-empty phone and name may appear as arguments.
	mock.ExpectQuery(`tel IN \(\?\) OR name LIKE \?`).
		WithArgs("0312345678", "%サンプル%").
		WillReturnRows(sqlmock.NewRows(candidateColumns))

	store := NewStore(db, "companies")
	_, err = store.FindCandidates([]string{"", "サンプル"}, []string{"0312345678", ""})
	if err != nil {
		t.Fatalf("FindCandidates() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Company is an authoritative-store record. It is a read-only snapshot
// fetched once per run and never mutated in place.
type Company struct {
	Name                string
	Tel                 string
	Email               string
	MainBusinessSector  string
	OtherBusinessSector string
	IPOType             sql.NullInt64
	OfficeNumber        string
	OfficeName          string
	OfficeTypeName1     string
	OfficeTypeName2     string
	URL                 string
}

// Store queries the authoritative company table
type Store struct {
	db    *sql.DB
	table string
}

// NewStore creates a new company store
func NewStore(db *sql.DB, table string) *Store {
	return &Store{db: db, table: table}
}

// FindCandidates fetches the candidate pool for a whole batch in a single
// round trip: every record whose tel exactly equals any of the non-empty
// normalized phones, or whose name contains any of the non-empty
// normalized names as a substring. Empty values never take part in the
// condition; a batch with no usable values yields an empty pool without
// touching the store. Per-row attribution happens later in the engine.
func (s *Store) FindCandidates(names, phones []string) ([]Company, error) {
	phones = dropEmpty(phones)
	names = dropEmpty(names)
	if len(phones) == 0 && len(names) == 0 {
		return nil, nil
	}

	var conds []string
	var args []interface{}

	if len(phones) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(phones)), ",")
		conds = append(conds, fmt.Sprintf("tel IN (%s)", placeholders))
		for _, p := range phones {
			args = append(args, p)
		}
	}

	for _, n := range names {
		conds = append(conds, "name LIKE ?")
		args = append(args, "%"+n+"%")
	}

	query := fmt.Sprintf(`
		SELECT name, tel, COALESCE(email, ''), COALESCE(main_business_sector, ''),
		       COALESCE(other_business_sector, ''), ipo_type,
		       COALESCE(office_number, ''), COALESCE(office_name, ''),
		       COALESCE(office_type_name1, ''), COALESCE(office_type_name2, ''),
		       COALESCE(url, '')
		FROM %s
		WHERE %s
		ORDER BY name, tel
	`, s.table, strings.Join(conds, " OR "))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		err := rows.Scan(
			&c.Name, &c.Tel, &c.Email, &c.MainBusinessSector,
			&c.OtherBusinessSector, &c.IPOType,
			&c.OfficeNumber, &c.OfficeName,
			&c.OfficeTypeName1, &c.OfficeTypeName2, &c.URL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return companies, nil
}

// Count returns the number of records in the company table.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}

// dropEmpty filters out empty values so they cannot widen the match
// condition.
func dropEmpty(values []string) []string {
	var kept []string
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return kept
}

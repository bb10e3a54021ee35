package flights

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// ErrNotFound is returned by single-record lookups that miss.
var ErrNotFound = gorm.ErrRecordNotFound

// searchClause ORs a case-insensitive substring match across the seven
// searchable fields. The ESCAPE keeps %, _ and backslash in the term
// literal instead of acting as LIKE wildcards.
const searchClause = `LOWER(flight_number) LIKE ? ESCAPE '\' OR LOWER(destination) LIKE ? ESCAPE '\' OR ` +
	`LOWER(airline) LIKE ? ESCAPE '\' OR LOWER(departure_airport) LIKE ? ESCAPE '\' OR ` +
	`LOWER(arrival_airport) LIKE ? ESCAPE '\' OR LOWER(status) LIKE ? ESCAPE '\' OR LOWER(gate) LIKE ? ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Store is the owned-record query layer: every read, update, and delete
// filters by the owning user's id, so ownership cannot be forgotten in
// a handler.
type Store struct {
	db    *gorm.DB
	lower cases.Caser
}

func NewStore(db *gorm.DB) *Store {
	// Lowercase, not case-fold: the pattern must use the same mapping
	// as the LOWER() applied to the columns.
	return &Store{db: db, lower: cases.Lower(language.Und)}
}

func (s *Store) Create(f *Flight) error {
	return s.db.Create(f).Error
}

// FindByID looks up by internal id, the key the web routes use.
func (s *Store) FindByID(ownerID, id string) (Flight, error) {
	var f Flight
	err := s.db.First(&f, "user_id = ? AND id = ?", ownerID, id).Error
	return f, err
}

// FindByNumber looks up by flight number, the key the API routes use.
func (s *Store) FindByNumber(ownerID, flightNumber string) (Flight, error) {
	var f Flight
	err := s.db.First(&f, "user_id = ? AND flight_number = ?", ownerID, flightNumber).Error
	return f, err
}

// List returns the owner's flights, newest first. A blank or
// whitespace-only term means no filtering; otherwise any of the seven
// searchable fields must contain the term, case-insensitively.
func (s *Store) List(ownerID, term string) ([]Flight, error) {
	q := s.db.Where("user_id = ?", ownerID)

	term = strings.TrimSpace(term)
	if term != "" {
		p := "%" + likeEscaper.Replace(s.lower.String(term)) + "%"
		q = q.Where(searchClause, p, p, p, p, p, p, p)
	}

	var flights []Flight
	err := q.Order("created_at DESC").Find(&flights).Error
	return flights, err
}

// UpdateByID merges the submitted fields into the record matching
// id+owner. A non-matching pair affects zero rows and is not an error.
func (s *Store) UpdateByID(ownerID, id string, updates map[string]any) (int64, error) {
	return s.update("id = ?", ownerID, id, updates)
}

// UpdateByNumber is the API-side variant keyed by flight number.
func (s *Store) UpdateByNumber(ownerID, flightNumber string, updates map[string]any) (int64, error) {
	return s.update("flight_number = ?", ownerID, flightNumber, updates)
}

func (s *Store) update(keyClause, ownerID, key string, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	res := s.db.Model(&Flight{}).
		Where("user_id = ?", ownerID).
		Where(keyClause, key).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteByNumber removes the owned record; a non-match is a silent no-op.
func (s *Store) DeleteByNumber(ownerID, flightNumber string) (int64, error) {
	res := s.db.Where("user_id = ? AND flight_number = ?", ownerID, flightNumber).Delete(&Flight{})
	return res.RowsAffected, res.Error
}

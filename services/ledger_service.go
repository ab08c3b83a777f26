package services

import (
	"errors"
	"fmt"
	"time"

	"backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateKeyLayout = "2006-01-02"

// ledgerStore is the persistence seam for the ledger service. The gorm
// implementation backs it in production; tests substitute an in-memory
// store. Misses surface as gorm.ErrRecordNotFound, unique-index losses on
// create as gorm.ErrDuplicatedKey.
type ledgerStore interface {
	InTx(fn func(tx ledgerTx) error) error
	LedgerWithEntries(userID uint, dateKey string) (*models.DailyLedger, error)
}

// ledgerTx is the per-transaction view: reads lock the ledger row until
// the transaction ends.
type ledgerTx interface {
	LedgerForUpdate(userID uint, dateKey string) (*models.DailyLedger, error)
	CreateLedger(l *models.DailyLedger) error
	SaveLedger(l *models.DailyLedger) error
	CreateEntry(e *models.FoodLogEntry) error
	FindEntry(ledgerID uint, entryID string) (*models.FoodLogEntry, error)
	DeleteEntry(e *models.FoodLogEntry) error
}

// LedgerService applies add/remove deltas to a user's daily ledger.
// Every component of the running total is truncated to two decimals
// independently at each step; see models.NutrientValue.
//
// The total update and the entry row are written in one transaction, with
// the ledger row locked for the read-modify-write. The system this
// replaces issued them as two separate store writes, so a total update
// could succeed while the entry write failed, and two near-simultaneous
// adds for the same date could lose an update.
type LedgerService struct {
	store ledgerStore
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{store: &gormLedgerStore{db: db}}
}

func ValidateDateKey(dateKey string) error {
	if _, err := time.Parse(dateKeyLayout, dateKey); err != nil {
		return fmt.Errorf("%w: date must be yyyy-MM-dd", models.ErrValidation)
	}
	return nil
}

// AddEntry scales the food's per-serving nutrients by quantity, appends a
// FoodLogEntry with a fresh id, and folds the entry value into the ledger
// total. A ledger for a new date starts at all-zero.
//
// Two first adds for a fresh date can both miss the locked read and race
// on the unique (user_id, date) index; the loser's transaction is rerun
// once so it takes the locked-read path against the winner's row.
func (s *LedgerService) AddEntry(userID uint, dateKey string, food *models.FoodItem, quantity int, photo string, timestamp time.Time) (*models.DailyLedger, *models.FoodLogEntry, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return nil, nil, err
	}
	if food == nil {
		return nil, nil, fmt.Errorf("%w: food required", models.ErrValidation)
	}
	if quantity <= 0 {
		return nil, nil, fmt.Errorf("%w: quantity must be positive", models.ErrValidation)
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	entryValue := food.Nutrients.Scale(quantity)
	entry := &models.FoodLogEntry{
		ID:        uuid.NewString(),
		Name:      food.Name,
		Quantity:  quantity,
		Photo:     photo,
		Timestamp: timestamp,
	}
	entry.SetValue(entryValue)

	var ledger *models.DailyLedger
	apply := func() error {
		return s.store.InTx(func(tx ledgerTx) error {
			var err error
			ledger, err = tx.LedgerForUpdate(userID, dateKey)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ledger = &models.DailyLedger{UserID: userID, Date: dateKey}
				if err := tx.CreateLedger(ledger); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			ledger.SetTotal(ledger.Total().Add(entryValue))
			if err := tx.SaveLedger(ledger); err != nil {
				return err
			}

			entry.LedgerID = ledger.ID
			return tx.CreateEntry(entry)
		})
	}

	err := apply()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = apply()
	}
	if err != nil {
		return nil, nil, err
	}
	return ledger, entry, nil
}

// RemoveEntry subtracts the entry's value from the total and deletes the
// entry row. The total is not clamped at zero; if it was edited
// out-of-band it may go negative, which is surfaced rather than hidden.
func (s *LedgerService) RemoveEntry(userID uint, dateKey, entryID string) (*models.DailyLedger, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return nil, err
	}

	var ledger *models.DailyLedger
	err := s.store.InTx(func(tx ledgerTx) error {
		var err error
		ledger, err = tx.LedgerForUpdate(userID, dateKey)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no ledger for %s", models.ErrNotFound, dateKey)
		}
		if err != nil {
			return err
		}

		entry, err := tx.FindEntry(ledger.ID, entryID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no entry %s", models.ErrNotFound, entryID)
		}
		if err != nil {
			return err
		}

		ledger.SetTotal(ledger.Total().Sub(entry.Value()))
		if err := tx.SaveLedger(ledger); err != nil {
			return err
		}
		return tx.DeleteEntry(entry)
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// GetLedger returns the ledger for a date with entries ordered newest
// first. A date with no log yet reads as an all-zero ledger, not an error.
func (s *LedgerService) GetLedger(userID uint, dateKey string) (*models.DailyLedger, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return nil, err
	}

	ledger, err := s.store.LedgerWithEntries(userID, dateKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyLedger{UserID: userID, Date: dateKey}, nil
	}
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

type gormLedgerStore struct {
	db *gorm.DB
}

func (s *gormLedgerStore) InTx(fn func(tx ledgerTx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedgerTx{tx: tx})
	})
}

func (s *gormLedgerStore) LedgerWithEntries(userID uint, dateKey string) (*models.DailyLedger, error) {
	var ledger models.DailyLedger
	err := s.db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC")
		}).
		Where("user_id = ? AND date = ?", userID, dateKey).
		First(&ledger).Error
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

type gormLedgerTx struct {
	tx *gorm.DB
}

func (t *gormLedgerTx) LedgerForUpdate(userID uint, dateKey string) (*models.DailyLedger, error) {
	var ledger models.DailyLedger
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND date = ?", userID, dateKey).
		First(&ledger).Error
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (t *gormLedgerTx) CreateLedger(l *models.DailyLedger) error { return t.tx.Create(l).Error }
func (t *gormLedgerTx) SaveLedger(l *models.DailyLedger) error   { return t.tx.Save(l).Error }
func (t *gormLedgerTx) CreateEntry(e *models.FoodLogEntry) error { return t.tx.Create(e).Error }

func (t *gormLedgerTx) FindEntry(ledgerID uint, entryID string) (*models.FoodLogEntry, error) {
	var entry models.FoodLogEntry
	err := t.tx.Where("id = ? AND ledger_id = ?", entryID, ledgerID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (t *gormLedgerTx) DeleteEntry(e *models.FoodLogEntry) error { return t.tx.Delete(e).Error }

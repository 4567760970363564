package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityType names an identifier namespace. Each type has its own prefix and
// its own sequence row.
type EntityType string

const (
	EntityUser       EntityType = "user"
	EntityCourse     EntityType = "course"
	EntityEnrollment EntityType = "enrollment"
)

type idSpec struct {
	prefix string
	seed   int64
	table  string
	column string
}

var idSpecs = map[EntityType]idSpec{
	EntityUser:       {prefix: "UID", seed: 100, table: "users", column: "userid"},
	EntityCourse:     {prefix: "CID", seed: 100, table: "courses", column: "courseid"},
	EntityEnrollment: {prefix: "EID", seed: 100, table: "course_enrollments", column: "enrollid"},
}

var idPattern = regexp.MustCompile(`^[A-Z]{3}([0-9]+)$`)

type SequenceRepository interface {
	// Next allocates the next identifier for the entity type, e.g. UID101.
	Next(ctx context.Context, entity EntityType) (string, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next allocates identifiers from a per-type sequence row held under a row
// lock for the duration of the transaction. Two concurrent creations of the
// same entity type therefore serialize on the row and can never be handed
// the same value, which a bare read-max-then-insert cannot guarantee.
func (r *sequenceRepository) Next(ctx context.Context, entity EntityType) (string, error) {
	spec, ok := idSpecs[entity]
	if !ok {
		return "", fmt.Errorf("unknown entity type %q", entity)
	}

	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq model.Sequence
		err := lockedRead(tx, &seq, string(entity))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First allocation for this type: pick up after whatever
			// identifiers already exist in the entity table.
			last, lastErr := lastIssued(tx, spec)
			if lastErr != nil {
				return lastErr
			}
			seq = model.Sequence{Name: string(entity), Value: last}
			// A concurrent first allocation may have created the row in the
			// meantime; the loser re-reads the winner's value instead of
			// failing on the primary key.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
				return err
			}
			if err := lockedRead(tx, &seq, string(entity)); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		seq.Value++
		next = seq.Value
		return tx.Model(&model.Sequence{}).
			Where("name = ?", seq.Name).
			Update("value", seq.Value).Error
	})
	if err != nil {
		if errors.Is(err, apperror.ErrMalformedID) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	return fmt.Sprintf("%s%d", spec.prefix, next), nil
}

// lockedRead fetches the sequence row, under FOR UPDATE on postgres. sqlite
// (used in tests) has a single writer and no FOR UPDATE.
func lockedRead(tx *gorm.DB, seq *model.Sequence, name string) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.First(seq, "name = ?", name).Error
}

// lastIssued returns the numeric suffix of the highest identifier present in
// the entity table, or seed-1 when the table is empty so that the first
// allocation is <prefix><seed>. A stored identifier that does not match
// prefix+digits fails explicitly instead of silently corrupting the sequence.
func lastIssued(tx *gorm.DB, spec idSpec) (int64, error) {
	var last string
	err := tx.Table(spec.table).
		Select(spec.column).
		Order(spec.column + " DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	if last == "" {
		return spec.seed - 1, nil
	}

	m := idPattern.FindStringSubmatch(last)
	if m == nil || !strings.HasPrefix(last, spec.prefix) {
		return 0, fmt.Errorf("%w: %q", apperror.ErrMalformedID, last)
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrMalformedID, last)
	}
	return n, nil
}

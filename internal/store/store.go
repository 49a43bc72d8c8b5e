package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/VishalRj23/laundry-management-system/internal/model"
)

// ErrStudentNotFound is returned when no student matches a lookup key.
var ErrStudentNotFound = errors.New("student not found")

// ErrRecordNotFound is returned when a record identifier matches no row.
var ErrRecordNotFound = errors.New("laundry record not found")

// The stored name and the lookup name are both trimmed and case-folded at
// query time, so whitespace or case differences between registration and
// submission do not cause spurious misses.
const normalizedNameMatch = "LOWER(TRIM(name)) = LOWER(TRIM(?))"

// Store defines the interface for all database operations.
type Store interface {
	// ResolveStudent finds the first student matching the normalized
	// (name, floor, page) identity. Used by the submission path.
	ResolveStudent(ctx context.Context, name string, floor, page int) (*model.Student, error)

	// FindStudentByRoom finds the first student on the given floor and page,
	// ignoring the name. Used by the last-record path; the raw path values
	// are passed through to the store unparsed.
	FindStudentByRoom(ctx context.Context, floor, page string) (*model.Student, error)

	// RegisterStudent inserts a new student with the name trimmed. No
	// duplicate check is performed.
	RegisterStudent(ctx context.Context, name string, floor, page int) (int64, error)

	// SearchStudents returns every student matching the normalized identity.
	SearchStudents(ctx context.Context, name, floor, page string) ([]model.Student, error)

	// CreateRecord inserts a laundry record dated today and then its detail
	// rows for every strictly positive quantity, returning the record id.
	CreateRecord(ctx context.Context, studentID int64, total int, quantities model.Quantities) (int64, error)

	// LastRecord returns the student's most recent record (highest record id)
	// with its breakdown expanded to all four item kinds, or (nil, nil, nil)
	// when the student has no records at all.
	LastRecord(ctx context.Context, studentID int64) (*model.LaundryRecord, model.Quantities, error)

	// ConfirmCollection marks the record as collected. Confirming an already
	// collected record succeeds again.
	ConfirmCollection(ctx context.Context, recordID int64) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db           *gorm.DB
	atomicSubmit bool
}

// NewGormStore creates a new GORM-backed store. When atomicSubmit is set,
// CreateRecord runs the record and detail inserts in one transaction.
func NewGormStore(db *gorm.DB, atomicSubmit bool) Store {
	return &gormStore{db: db, atomicSubmit: atomicSubmit}
}

func (s *gormStore) ResolveStudent(ctx context.Context, name string, floor, page int) (*model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).
		Where(normalizedNameMatch+" AND floor_no = ? AND page_no = ?", name, floor, page).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}
	return &student, nil
}

func (s *gormStore) FindStudentByRoom(ctx context.Context, floor, page string) (*model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).
		Where("floor_no = ? AND page_no = ?", floor, page).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find student by room: %w", err)
	}
	return &student, nil
}

func (s *gormStore) RegisterStudent(ctx context.Context, name string, floor, page int) (int64, error) {
	student := model.Student{
		Name:    strings.TrimSpace(name),
		FloorNo: floor,
		PageNo:  page,
	}
	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		return 0, fmt.Errorf("failed to register student: %w", err)
	}
	return student.StudentID, nil
}

func (s *gormStore) SearchStudents(ctx context.Context, name, floor, page string) ([]model.Student, error) {
	students := make([]model.Student, 0)
	err := s.db.WithContext(ctx).
		Where(normalizedNameMatch+" AND floor_no = ? AND page_no = ?", name, floor, page).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	return students, nil
}

func (s *gormStore) CreateRecord(ctx context.Context, studentID int64, total int, quantities model.Quantities) (int64, error) {
	if s.atomicSubmit {
		var recordID int64
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			recordID, err = createRecordWithDetails(tx, studentID, total, quantities)
			return err
		})
		return recordID, err
	}
	return createRecordWithDetails(s.db.WithContext(ctx), studentID, total, quantities)
}

func createRecordWithDetails(db *gorm.DB, studentID int64, total int, quantities model.Quantities) (int64, error) {
	record := model.LaundryRecord{
		StudentID:    studentID,
		DateGiven:    todayDate(),
		TotalClothes: total,
		IsCollected:  false,
	}
	if err := db.Create(&record).Error; err != nil {
		return 0, fmt.Errorf("failed to create laundry record: %w", err)
	}

	var details []model.LaundryRecordDetail
	for _, kind := range model.Kinds() {
		if quantities[kind] > 0 {
			details = append(details, model.LaundryRecordDetail{
				RecordID: record.RecordID,
				ItemID:   kind,
				Quantity: quantities[kind],
			})
		}
	}
	if len(details) > 0 {
		if err := db.Create(&details).Error; err != nil {
			return 0, fmt.Errorf("failed to create laundry record details: %w", err)
		}
	}
	return record.RecordID, nil
}

func (s *gormStore) LastRecord(ctx context.Context, studentID int64) (*model.LaundryRecord, model.Quantities, error) {
	var record model.LaundryRecord
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("record_id DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch last laundry record: %w", err)
	}

	var details []model.LaundryRecordDetail
	if err := s.db.WithContext(ctx).
		Where("record_id = ?", record.RecordID).
		Find(&details).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch laundry record details: %w", err)
	}

	breakdown := make(model.Quantities, len(model.Kinds()))
	for _, kind := range model.Kinds() {
		breakdown[kind] = 0
	}
	for _, d := range details {
		if d.ItemID.Known() {
			breakdown[d.ItemID] = d.Quantity
		}
	}
	return &record, breakdown, nil
}

func (s *gormStore) ConfirmCollection(ctx context.Context, recordID int64) error {
	res := s.db.WithContext(ctx).
		Model(&model.LaundryRecord{}).
		Where("record_id = ?", recordID).
		Update("is_collected", true)
	if res.Error != nil {
		return fmt.Errorf("failed to confirm collection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// todayDate is the server-clock calendar date assigned to new records,
// with the time-of-day component zeroed.
func todayDate() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

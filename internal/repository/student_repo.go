package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	Load() error
	Save(ctx context.Context, student models.Student) error
	FindByID(ctx context.Context, id string) (models.Student, error)
	FindAll(ctx context.Context) ([]models.Student, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) bool
	Count(ctx context.Context) int
	FindByEmail(ctx context.Context, email string) (models.Student, error)
	FindByMajor(ctx context.Context, major string) ([]models.Student, error)

	// Workflow access; valid only inside store.Atomic over Lockable().
	Lockable() store.Lockable
	Peek(id string) (models.Student, bool)
	Stage(student models.Student)
}

type studentRepository struct {
	table *store.Table[models.Student]
}

// NewStudentRepository constructs a student repository over the CSV file at path.
func NewStudentRepository(path string, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		table: store.NewTable[models.Student]("students", rankStudent, path, studentCodec{}, logger),
	}
}

func (r *studentRepository) Load() error {
	return r.table.Load()
}

func (r *studentRepository) Save(ctx context.Context, student models.Student) error {
	return r.table.Put(student)
}

func (r *studentRepository) FindByID(ctx context.Context, id string) (models.Student, error) {
	student, ok := r.table.Get(id)
	if !ok {
		return models.Student{}, store.ErrNotFound
	}
	return student, nil
}

func (r *studentRepository) FindAll(ctx context.Context) ([]models.Student, error) {
	return r.table.All(), nil
}

func (r *studentRepository) DeleteByID(ctx context.Context, id string) error {
	return r.table.Delete(id)
}

func (r *studentRepository) ExistsByID(ctx context.Context, id string) bool {
	return r.table.Exists(id)
}

func (r *studentRepository) Count(ctx context.Context) int {
	return r.table.Count()
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (models.Student, error) {
	matches := r.table.Find(func(s models.Student) bool {
		return strings.EqualFold(s.Email, email)
	})
	if len(matches) == 0 {
		return models.Student{}, store.ErrNotFound
	}
	return matches[0], nil
}

func (r *studentRepository) FindByMajor(ctx context.Context, major string) ([]models.Student, error) {
	return r.table.Find(func(s models.Student) bool {
		return strings.EqualFold(s.Major, major)
	}), nil
}

func (r *studentRepository) Lockable() store.Lockable {
	return r.table
}

func (r *studentRepository) Peek(id string) (models.Student, bool) {
	return r.table.Peek(id)
}

func (r *studentRepository) Stage(student models.Student) {
	r.table.Stage(student)
}

type studentCodec struct{}

func (studentCodec) Header() []string {
	return []string{"StudentID", "Name", "Password", "Major", "Year", "Email", "ApplicationIDs", "AcceptedPlacementID", "HasAcceptedPlacement"}
}

func (studentCodec) ID(s models.Student) string { return s.ID }

func (studentCodec) Encode(s models.Student) []string {
	return []string{
		s.ID,
		s.Name,
		s.Password,
		s.Major,
		store.FormatInt(s.Year),
		s.Email,
		store.JoinList(s.ApplicationIDs),
		s.AcceptedPlacementID,
		store.FormatBool(s.HasAcceptedPlacement),
	}
}

func (studentCodec) Decode(row store.Row) (models.Student, error) {
	return models.Student{
		ID:                   row.String("StudentID"),
		Name:                 row.String("Name"),
		Password:             row.StringDefault("Password", models.DefaultPassword),
		Major:                row.String("Major"),
		Year:                 row.Int("Year", 1),
		Email:                row.String("Email"),
		ApplicationIDs:       row.List("ApplicationIDs"),
		AcceptedPlacementID:  row.String("AcceptedPlacementID"),
		HasAcceptedPlacement: row.Bool("HasAcceptedPlacement"),
	}, nil
}

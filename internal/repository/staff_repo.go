package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// StaffRepository provides access to career center staff records.
type StaffRepository interface {
	Load() error
	Save(ctx context.Context, staff models.Staff) error
	FindByID(ctx context.Context, id string) (models.Staff, error)
	FindAll(ctx context.Context) ([]models.Staff, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) bool
	Count(ctx context.Context) int
	FindByEmail(ctx context.Context, email string) (models.Staff, error)
	FindByDepartment(ctx context.Context, department string) ([]models.Staff, error)
}

type staffRepository struct {
	table *store.Table[models.Staff]
}

// NewStaffRepository constructs a staff repository over the CSV file at path.
func NewStaffRepository(path string, logger zerolog.Logger) StaffRepository {
	return &staffRepository{
		table: store.NewTable[models.Staff]("staff", rankStaff, path, staffCodec{}, logger),
	}
}

func (r *staffRepository) Load() error {
	return r.table.Load()
}

func (r *staffRepository) Save(ctx context.Context, staff models.Staff) error {
	return r.table.Put(staff)
}

func (r *staffRepository) FindByID(ctx context.Context, id string) (models.Staff, error) {
	staff, ok := r.table.Get(id)
	if !ok {
		return models.Staff{}, store.ErrNotFound
	}
	return staff, nil
}

func (r *staffRepository) FindAll(ctx context.Context) ([]models.Staff, error) {
	return r.table.All(), nil
}

func (r *staffRepository) DeleteByID(ctx context.Context, id string) error {
	return r.table.Delete(id)
}

func (r *staffRepository) ExistsByID(ctx context.Context, id string) bool {
	return r.table.Exists(id)
}

func (r *staffRepository) Count(ctx context.Context) int {
	return r.table.Count()
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (models.Staff, error) {
	matches := r.table.Find(func(s models.Staff) bool {
		return strings.EqualFold(s.Email, email)
	})
	if len(matches) == 0 {
		return models.Staff{}, store.ErrNotFound
	}
	return matches[0], nil
}

func (r *staffRepository) FindByDepartment(ctx context.Context, department string) ([]models.Staff, error) {
	return r.table.Find(func(s models.Staff) bool {
		return strings.EqualFold(s.Department, department)
	}), nil
}

type staffCodec struct{}

func (staffCodec) Header() []string {
	return []string{"StaffID", "Name", "Password", "Email", "Department"}
}

func (staffCodec) ID(s models.Staff) string { return s.ID }

func (staffCodec) Encode(s models.Staff) []string {
	return []string{s.ID, s.Name, s.Password, s.Email, s.Department}
}

func (staffCodec) Decode(row store.Row) (models.Staff, error) {
	return models.Staff{
		ID:         row.String("StaffID"),
		Name:       row.String("Name"),
		Password:   row.StringDefault("Password", models.DefaultPassword),
		Email:      row.String("Email"),
		Department: row.String("Department"),
	}, nil
}

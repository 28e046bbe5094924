package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// RepresentativeRepository provides access to company representative records.
type RepresentativeRepository interface {
	Load() error
	Save(ctx context.Context, rep models.Representative) error
	FindByID(ctx context.Context, id string) (models.Representative, error)
	FindAll(ctx context.Context) ([]models.Representative, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) bool
	Count(ctx context.Context) int
	FindByEmail(ctx context.Context, email string) (models.Representative, error)
	FindByStatus(ctx context.Context, status models.ApprovalStatus) ([]models.Representative, error)
	FindByCompany(ctx context.Context, company string) ([]models.Representative, error)

	// Workflow access; valid only inside store.Atomic over Lockable().
	Lockable() store.Lockable
	Peek(id string) (models.Representative, bool)
	Stage(rep models.Representative)
}

type representativeRepository struct {
	table *store.Table[models.Representative]
}

// NewRepresentativeRepository constructs a representative repository over the
// CSV file at path.
func NewRepresentativeRepository(path string, logger zerolog.Logger) RepresentativeRepository {
	return &representativeRepository{
		table: store.NewTable[models.Representative]("representatives", rankRepresentative, path,
			representativeCodec{logger: logger}, logger),
	}
}

func (r *representativeRepository) Load() error {
	return r.table.Load()
}

func (r *representativeRepository) Save(ctx context.Context, rep models.Representative) error {
	return r.table.Put(rep)
}

func (r *representativeRepository) FindByID(ctx context.Context, id string) (models.Representative, error) {
	rep, ok := r.table.Get(id)
	if !ok {
		return models.Representative{}, store.ErrNotFound
	}
	return rep, nil
}

func (r *representativeRepository) FindAll(ctx context.Context) ([]models.Representative, error) {
	return r.table.All(), nil
}

func (r *representativeRepository) DeleteByID(ctx context.Context, id string) error {
	return r.table.Delete(id)
}

func (r *representativeRepository) ExistsByID(ctx context.Context, id string) bool {
	return r.table.Exists(id)
}

func (r *representativeRepository) Count(ctx context.Context) int {
	return r.table.Count()
}

func (r *representativeRepository) FindByEmail(ctx context.Context, email string) (models.Representative, error) {
	matches := r.table.Find(func(rep models.Representative) bool {
		return strings.EqualFold(rep.Email, email)
	})
	if len(matches) == 0 {
		return models.Representative{}, store.ErrNotFound
	}
	return matches[0], nil
}

func (r *representativeRepository) FindByStatus(ctx context.Context, status models.ApprovalStatus) ([]models.Representative, error) {
	return r.table.Find(func(rep models.Representative) bool {
		return rep.Status == status
	}), nil
}

func (r *representativeRepository) FindByCompany(ctx context.Context, company string) ([]models.Representative, error) {
	return r.table.Find(func(rep models.Representative) bool {
		return strings.EqualFold(rep.CompanyName, company)
	}), nil
}

func (r *representativeRepository) Lockable() store.Lockable {
	return r.table
}

func (r *representativeRepository) Peek(id string) (models.Representative, bool) {
	return r.table.Peek(id)
}

func (r *representativeRepository) Stage(rep models.Representative) {
	r.table.Stage(rep)
}

type representativeCodec struct {
	logger zerolog.Logger
}

func (representativeCodec) Header() []string {
	return []string{"RepresentativeID", "Name", "Password", "Email", "CompanyName", "Industry", "Position", "Status", "InternshipIDs"}
}

func (representativeCodec) ID(rep models.Representative) string { return rep.ID }

func (representativeCodec) Encode(rep models.Representative) []string {
	return []string{
		rep.ID,
		rep.Name,
		rep.Password,
		rep.Email,
		rep.CompanyName,
		rep.Industry,
		rep.Position,
		string(rep.Status),
		store.JoinList(rep.InternshipIDs),
	}
}

func (c representativeCodec) Decode(row store.Row) (models.Representative, error) {
	id := row.String("RepresentativeID")
	status, known := models.ParseApprovalStatus(row.String("Status"))
	if !known {
		c.logger.Warn().
			Str("representative_id", id).
			Str("value", row.String("Status")).
			Msg("unrecognised approval status, defaulting to PENDING")
	}

	return models.Representative{
		ID:            id,
		Name:          row.String("Name"),
		Password:      row.StringDefault("Password", models.DefaultPassword),
		Email:         row.String("Email"),
		CompanyName:   row.String("CompanyName"),
		Industry:      row.String("Industry"),
		Position:      row.String("Position"),
		Status:        status,
		InternshipIDs: row.List("InternshipIDs"),
	}, nil
}

package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// ApplicationRepository provides access to internship application records.
type ApplicationRepository interface {
	Load() error
	Save(ctx context.Context, app models.Application) error
	FindByID(ctx context.Context, id string) (models.Application, error)
	FindAll(ctx context.Context) ([]models.Application, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) bool
	Count(ctx context.Context) int
	FindByStudent(ctx context.Context, studentID string) ([]models.Application, error)
	FindByInternship(ctx context.Context, internshipID string) ([]models.Application, error)
	FindByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error)
	FindActiveByStudent(ctx context.Context, studentID string) ([]models.Application, error)

	// Workflow access; valid only inside store.Atomic over Lockable().
	Lockable() store.Lockable
	Peek(id string) (models.Application, bool)
	Stage(app models.Application)
	ScanActiveByStudent(studentID string) []models.Application
	ScanByStudent(studentID string) []models.Application
}

type applicationRepository struct {
	table *store.Table[models.Application]
}

// NewApplicationRepository constructs an application repository over the CSV
// file at path.
func NewApplicationRepository(path string, logger zerolog.Logger) ApplicationRepository {
	return &applicationRepository{
		table: store.NewTable[models.Application]("applications", rankApplication, path,
			applicationCodec{logger: logger}, logger),
	}
}

func (r *applicationRepository) Load() error {
	return r.table.Load()
}

func (r *applicationRepository) Save(ctx context.Context, app models.Application) error {
	return r.table.Put(app)
}

func (r *applicationRepository) FindByID(ctx context.Context, id string) (models.Application, error) {
	app, ok := r.table.Get(id)
	if !ok {
		return models.Application{}, store.ErrNotFound
	}
	return app, nil
}

func (r *applicationRepository) FindAll(ctx context.Context) ([]models.Application, error) {
	return r.table.All(), nil
}

func (r *applicationRepository) DeleteByID(ctx context.Context, id string) error {
	return r.table.Delete(id)
}

func (r *applicationRepository) ExistsByID(ctx context.Context, id string) bool {
	return r.table.Exists(id)
}

func (r *applicationRepository) Count(ctx context.Context) int {
	return r.table.Count()
}

func (r *applicationRepository) FindByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	return r.table.Find(func(a models.Application) bool {
		return a.StudentID == studentID
	}), nil
}

func (r *applicationRepository) FindByInternship(ctx context.Context, internshipID string) ([]models.Application, error) {
	return r.table.Find(func(a models.Application) bool {
		return a.InternshipID == internshipID
	}), nil
}

func (r *applicationRepository) FindByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error) {
	return r.table.Find(func(a models.Application) bool {
		return a.Status == status
	}), nil
}

func (r *applicationRepository) FindActiveByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	return r.table.Find(func(a models.Application) bool {
		return a.StudentID == studentID && a.Active()
	}), nil
}

func (r *applicationRepository) Lockable() store.Lockable {
	return r.table
}

func (r *applicationRepository) Peek(id string) (models.Application, bool) {
	return r.table.Peek(id)
}

func (r *applicationRepository) Stage(app models.Application) {
	r.table.Stage(app)
}

func (r *applicationRepository) ScanActiveByStudent(studentID string) []models.Application {
	return r.table.Scan(func(a models.Application) bool {
		return a.StudentID == studentID && a.Active()
	})
}

func (r *applicationRepository) ScanByStudent(studentID string) []models.Application {
	return r.table.Scan(func(a models.Application) bool {
		return a.StudentID == studentID
	})
}

type applicationCodec struct {
	logger zerolog.Logger
}

func (applicationCodec) Header() []string {
	return []string{"ApplicationID", "StudentID", "InternshipID", "Status",
		"SubmissionDate", "StatusUpdateDate", "PlacementAccepted", "PlacementAcceptedDate", "Comments"}
}

func (applicationCodec) ID(a models.Application) string { return a.ID }

func (applicationCodec) Encode(a models.Application) []string {
	return []string{
		a.ID,
		a.StudentID,
		a.InternshipID,
		string(a.Status),
		store.FormatTime(a.SubmissionDate, models.DateTimeLayout),
		store.FormatTime(a.StatusUpdateDate, models.DateTimeLayout),
		store.FormatBool(a.PlacementAccepted),
		store.FormatTime(a.PlacementAcceptedDate, models.DateTimeLayout),
		a.Comments,
	}
}

func (c applicationCodec) Decode(row store.Row) (models.Application, error) {
	id := row.String("ApplicationID")
	status, known := models.ParseApplicationStatus(row.String("Status"))
	if !known {
		c.logger.Warn().
			Str("application_id", id).
			Str("value", row.String("Status")).
			Msg("unrecognised application status, defaulting to PENDING")
	}

	return models.Application{
		ID:                    id,
		StudentID:             row.String("StudentID"),
		InternshipID:          row.String("InternshipID"),
		Status:                status,
		SubmissionDate:        row.Time("SubmissionDate", models.DateTimeLayout),
		StatusUpdateDate:      row.Time("StatusUpdateDate", models.DateTimeLayout),
		PlacementAccepted:     row.Bool("PlacementAccepted"),
		PlacementAcceptedDate: row.Time("PlacementAcceptedDate", models.DateTimeLayout),
		Comments:              row.String("Comments"),
	}, nil
}

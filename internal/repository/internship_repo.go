package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// InternshipRepository provides access to internship opportunity records.
type InternshipRepository interface {
	Load() error
	Save(ctx context.Context, internship models.Internship) error
	FindByID(ctx context.Context, id string) (models.Internship, error)
	FindAll(ctx context.Context) ([]models.Internship, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) bool
	Count(ctx context.Context) int
	FindByRepresentative(ctx context.Context, repID string) ([]models.Internship, error)
	FindByStatus(ctx context.Context, status models.InternshipStatus) ([]models.Internship, error)
	FindByLevel(ctx context.Context, level models.InternshipLevel) ([]models.Internship, error)
	// FindAccepting returns the opportunities open to new applications at now:
	// approved, visible, and inside their opening/closing window.
	FindAccepting(ctx context.Context, now time.Time) ([]models.Internship, error)

	// Workflow access; valid only inside store.Atomic over Lockable().
	Lockable() store.Lockable
	Peek(id string) (models.Internship, bool)
	Stage(internship models.Internship)
	StageDelete(id string)
}

type internshipRepository struct {
	table *store.Table[models.Internship]
}

// NewInternshipRepository constructs an internship repository over the CSV
// file at path.
func NewInternshipRepository(path string, logger zerolog.Logger) InternshipRepository {
	return &internshipRepository{
		table: store.NewTable[models.Internship]("internships", rankInternship, path,
			internshipCodec{logger: logger}, logger),
	}
}

func (r *internshipRepository) Load() error {
	return r.table.Load()
}

func (r *internshipRepository) Save(ctx context.Context, internship models.Internship) error {
	return r.table.Put(internship)
}

func (r *internshipRepository) FindByID(ctx context.Context, id string) (models.Internship, error) {
	internship, ok := r.table.Get(id)
	if !ok {
		return models.Internship{}, store.ErrNotFound
	}
	return internship, nil
}

func (r *internshipRepository) FindAll(ctx context.Context) ([]models.Internship, error) {
	return r.table.All(), nil
}

func (r *internshipRepository) DeleteByID(ctx context.Context, id string) error {
	return r.table.Delete(id)
}

func (r *internshipRepository) ExistsByID(ctx context.Context, id string) bool {
	return r.table.Exists(id)
}

func (r *internshipRepository) Count(ctx context.Context) int {
	return r.table.Count()
}

func (r *internshipRepository) FindByRepresentative(ctx context.Context, repID string) ([]models.Internship, error) {
	return r.table.Find(func(i models.Internship) bool {
		return i.RepresentativeID == repID
	}), nil
}

func (r *internshipRepository) FindByStatus(ctx context.Context, status models.InternshipStatus) ([]models.Internship, error) {
	return r.table.Find(func(i models.Internship) bool {
		return i.Status == status
	}), nil
}

func (r *internshipRepository) FindByLevel(ctx context.Context, level models.InternshipLevel) ([]models.Internship, error) {
	return r.table.Find(func(i models.Internship) bool {
		return i.Level == level
	}), nil
}

func (r *internshipRepository) FindAccepting(ctx context.Context, now time.Time) ([]models.Internship, error) {
	return r.table.Find(func(i models.Internship) bool {
		return i.AcceptingApplications(now)
	}), nil
}

func (r *internshipRepository) Lockable() store.Lockable {
	return r.table
}

func (r *internshipRepository) Peek(id string) (models.Internship, bool) {
	return r.table.Peek(id)
}

func (r *internshipRepository) Stage(internship models.Internship) {
	r.table.Stage(internship)
}

func (r *internshipRepository) StageDelete(id string) {
	r.table.StageDelete(id)
}

type internshipCodec struct {
	logger zerolog.Logger
}

func (internshipCodec) Header() []string {
	return []string{"InternshipID", "Title", "Description", "Level", "PreferredMajor",
		"OpeningDate", "ClosingDate", "StartDate", "EndDate",
		"TotalSlots", "FilledSlots", "Status", "RepresentativeID", "Visible"}
}

func (internshipCodec) ID(i models.Internship) string { return i.ID }

func (internshipCodec) Encode(i models.Internship) []string {
	return []string{
		i.ID,
		i.Title,
		i.Description,
		string(i.Level),
		i.PreferredMajor,
		store.FormatTime(i.OpeningDate, models.DateLayout),
		store.FormatTime(i.ClosingDate, models.DateLayout),
		store.FormatTime(i.StartDate, models.DateLayout),
		store.FormatTime(i.EndDate, models.DateLayout),
		store.FormatInt(i.TotalSlots),
		store.FormatInt(i.FilledSlots),
		string(i.Status),
		i.RepresentativeID,
		store.FormatBool(i.Visible),
	}
}

func (c internshipCodec) Decode(row store.Row) (models.Internship, error) {
	id := row.String("InternshipID")
	status, knownStatus := models.ParseInternshipStatus(row.String("Status"))
	if !knownStatus {
		c.logger.Warn().
			Str("internship_id", id).
			Str("value", row.String("Status")).
			Msg("unrecognised internship status, defaulting to PENDING")
	}
	level, knownLevel := models.ParseInternshipLevel(row.String("Level"))
	if !knownLevel {
		c.logger.Warn().
			Str("internship_id", id).
			Str("value", row.String("Level")).
			Msg("unrecognised internship level, defaulting to BASIC")
	}

	return models.Internship{
		ID:               id,
		Title:            row.String("Title"),
		Description:      row.String("Description"),
		Level:            level,
		PreferredMajor:   row.StringDefault("PreferredMajor", models.PreferredMajorAny),
		OpeningDate:      row.Time("OpeningDate", models.DateLayout),
		ClosingDate:      row.Time("ClosingDate", models.DateLayout),
		StartDate:        row.Time("StartDate", models.DateLayout),
		EndDate:          row.Time("EndDate", models.DateLayout),
		TotalSlots:       row.Int("TotalSlots", 1),
		FilledSlots:      row.Int("FilledSlots", 0),
		Status:           status,
		RepresentativeID: row.String("RepresentativeID"),
		Visible:          row.Bool("Visible"),
	}, nil
}

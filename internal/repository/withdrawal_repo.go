package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/store"
)

// WithdrawalRepository provides access to withdrawal request records.
type WithdrawalRepository interface {
	Load() error
	Save(ctx context.Context, request models.WithdrawalRequest) error
	FindByID(ctx context.Context, id string) (models.WithdrawalRequest, error)
	FindAll(ctx context.Context) ([]models.WithdrawalRequest, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) bool
	Count(ctx context.Context) int
	FindByStudent(ctx context.Context, studentID string) ([]models.WithdrawalRequest, error)
	FindByApplication(ctx context.Context, applicationID string) ([]models.WithdrawalRequest, error)
	FindByStatus(ctx context.Context, status models.WithdrawalStatus) ([]models.WithdrawalRequest, error)
	// FindPendingByApplication returns the single pending request on the
	// application, if one exists.
	FindPendingByApplication(ctx context.Context, applicationID string) (models.WithdrawalRequest, error)

	// Workflow access; valid only inside store.Atomic over Lockable().
	Lockable() store.Lockable
	Peek(id string) (models.WithdrawalRequest, bool)
	Stage(request models.WithdrawalRequest)
	ScanPendingByApplication(applicationID string) []models.WithdrawalRequest
}

type withdrawalRepository struct {
	table *store.Table[models.WithdrawalRequest]
}

// NewWithdrawalRepository constructs a withdrawal request repository over the
// CSV file at path.
func NewWithdrawalRepository(path string, logger zerolog.Logger) WithdrawalRepository {
	return &withdrawalRepository{
		table: store.NewTable[models.WithdrawalRequest]("withdrawals", rankWithdrawal, path,
			withdrawalCodec{logger: logger}, logger),
	}
}

func (r *withdrawalRepository) Load() error {
	return r.table.Load()
}

func (r *withdrawalRepository) Save(ctx context.Context, request models.WithdrawalRequest) error {
	return r.table.Put(request)
}

func (r *withdrawalRepository) FindByID(ctx context.Context, id string) (models.WithdrawalRequest, error) {
	request, ok := r.table.Get(id)
	if !ok {
		return models.WithdrawalRequest{}, store.ErrNotFound
	}
	return request, nil
}

func (r *withdrawalRepository) FindAll(ctx context.Context) ([]models.WithdrawalRequest, error) {
	return r.table.All(), nil
}

func (r *withdrawalRepository) DeleteByID(ctx context.Context, id string) error {
	return r.table.Delete(id)
}

func (r *withdrawalRepository) ExistsByID(ctx context.Context, id string) bool {
	return r.table.Exists(id)
}

func (r *withdrawalRepository) Count(ctx context.Context) int {
	return r.table.Count()
}

func (r *withdrawalRepository) FindByStudent(ctx context.Context, studentID string) ([]models.WithdrawalRequest, error) {
	return r.table.Find(func(w models.WithdrawalRequest) bool {
		return w.StudentID == studentID
	}), nil
}

func (r *withdrawalRepository) FindByApplication(ctx context.Context, applicationID string) ([]models.WithdrawalRequest, error) {
	return r.table.Find(func(w models.WithdrawalRequest) bool {
		return w.ApplicationID == applicationID
	}), nil
}

func (r *withdrawalRepository) FindByStatus(ctx context.Context, status models.WithdrawalStatus) ([]models.WithdrawalRequest, error) {
	return r.table.Find(func(w models.WithdrawalRequest) bool {
		return w.Status == status
	}), nil
}

func (r *withdrawalRepository) FindPendingByApplication(ctx context.Context, applicationID string) (models.WithdrawalRequest, error) {
	matches := r.table.Find(func(w models.WithdrawalRequest) bool {
		return w.ApplicationID == applicationID && w.Status == models.WithdrawalPending
	})
	if len(matches) == 0 {
		return models.WithdrawalRequest{}, store.ErrNotFound
	}
	return matches[0], nil
}

func (r *withdrawalRepository) Lockable() store.Lockable {
	return r.table
}

func (r *withdrawalRepository) Peek(id string) (models.WithdrawalRequest, bool) {
	return r.table.Peek(id)
}

func (r *withdrawalRepository) Stage(request models.WithdrawalRequest) {
	r.table.Stage(request)
}

func (r *withdrawalRepository) ScanPendingByApplication(applicationID string) []models.WithdrawalRequest {
	return r.table.Scan(func(w models.WithdrawalRequest) bool {
		return w.ApplicationID == applicationID && w.Status == models.WithdrawalPending
	})
}

type withdrawalCodec struct {
	logger zerolog.Logger
}

func (withdrawalCodec) Header() []string {
	return []string{"RequestID", "ApplicationID", "StudentID", "Reason", "Status",
		"RequestDate", "ProcessedDate", "StaffComments"}
}

func (withdrawalCodec) ID(w models.WithdrawalRequest) string { return w.ID }

func (withdrawalCodec) Encode(w models.WithdrawalRequest) []string {
	return []string{
		w.ID,
		w.ApplicationID,
		w.StudentID,
		w.Reason,
		string(w.Status),
		store.FormatTime(w.RequestDate, models.DateTimeLayout),
		store.FormatTime(w.ProcessedDate, models.DateTimeLayout),
		w.StaffComments,
	}
}

func (c withdrawalCodec) Decode(row store.Row) (models.WithdrawalRequest, error) {
	id := row.String("RequestID")
	status, known := models.ParseWithdrawalStatus(row.String("Status"))
	if !known {
		c.logger.Warn().
			Str("request_id", id).
			Str("value", row.String("Status")).
			Msg("unrecognised withdrawal status, defaulting to PENDING")
	}

	return models.WithdrawalRequest{
		ID:            id,
		ApplicationID: row.String("ApplicationID"),
		StudentID:     row.String("StudentID"),
		Reason:        row.String("Reason"),
		Status:        status,
		RequestDate:   row.Time("RequestDate", models.DateTimeLayout),
		ProcessedDate: row.Time("ProcessedDate", models.DateTimeLayout),
		StaffComments: row.String("StaffComments"),
	}, nil
}

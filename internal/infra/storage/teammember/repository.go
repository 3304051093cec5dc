package teammember

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

var (
	// ErrTeamMemberNotFound возвращается, когда специалист не найден
	ErrTeamMemberNotFound = errors.New("teammember.repository: team member not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("teammember.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("teammember.repository: failed to scan row")
)

// Repository репозиторий специалистов клиники (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает специалиста по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TeamMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "role", "is_active").
		From("team_members").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.TeamMember
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.Name, &m.Role, &m.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan team member: %v", ErrScanRow, err)
	}

	return &m, nil
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"utabox/infras/otel"
	"utabox/infras/postgres"
	"utabox/internal/domains/booking/model"
	"utabox/shared/constant"
	gDto "utabox/shared/dto"
	"utabox/shared/logger"
	gRepo "utabox/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Lock(ctx context.Context, filter gDto.FilterGroup) error
	FindOverlapping(ctx context.Context, tenantID, roomID string, start, end time.Time, excludeIDs ...string) ([]model.Booking, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindOverlapping returns blocking bookings of the room whose half-open
// interval intersects [start, end). Cancelled and completed bookings never
// block, and excludeIDs lets callers ignore the booking(s) being rewritten.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, tenantID, roomID string, start, end time.Time, excludeIDs ...string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlapping")
	defer scope.End()

	query := `SELECT * FROM bookings
		WHERE tenant_id = :tenant_id
		AND room_id = :room_id
		AND status IN (:statuses)
		AND start_time < :end_time
		AND end_time > :start_time`

	args := map[string]any{
		"tenant_id":  tenantID,
		"room_id":    roomID,
		"statuses":   []string{constant.BookingStatusPending, constant.BookingStatusConfirmed},
		"start_time": start,
		"end_time":   end,
	}

	if len(excludeIDs) > 0 {
		query += " AND id NOT IN (:exclude_ids)"
		args["exclude_ids"] = excludeIDs
	}

	query, inArgs, err := sqlx.Named(query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build overlap query: %w", err)
	}

	query, inArgs, err = sqlx.In(query, inArgs...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to expand overlap query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	if tx := postgres.TxFromContext(ctx); tx != nil {
		err = tx.SelectContext(ctx, &bookings, tx.Rebind(query), inArgs...)
	} else {
		err = repo.db.Read.SelectContext(ctx, &bookings, repo.db.Read.Rebind(query), inArgs...)
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return bookings, nil
}

func (repo *repositoryImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return repo.db.WithinTransaction(ctx, fn) //nolint:wrapcheck
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"utabox/infras/otel"
	"utabox/infras/postgres"
	"utabox/internal/domains/hours/model"
	gDto "utabox/shared/dto"
	gRepo "utabox/shared/repository"
)

type BusinessHours interface {
	Insert(ctx context.Context, model model.BusinessHours) error
	InsertBulk(ctx context.Context, models []model.BusinessHours) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BusinessHours, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BusinessHours, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BusinessHours]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) BusinessHours {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BusinessHours](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return repo.db.WithinTransaction(ctx, fn) //nolint:wrapcheck
}

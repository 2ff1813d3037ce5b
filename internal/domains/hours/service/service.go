package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"utabox/config"
	"utabox/infras/otel"
	"utabox/internal/domains/hours/model"
	"utabox/internal/domains/hours/model/dto"
	"utabox/internal/domains/hours/repository"
	"utabox/shared"
	"utabox/shared/cache"
	"utabox/shared/constant"
	gDto "utabox/shared/dto"
	"utabox/shared/failure"
	"utabox/shared/timezone"
)

const (
	cacheGetHours = "hours:get"
)

type BusinessHours interface {
	Upsert(ctx context.Context, req dto.UpsertBusinessHoursRequest) error
	SetWeek(ctx context.Context, req dto.SetWeekRequest) error
	GetAll(ctx context.Context) (dto.GetBusinessHoursResponse, error)
	IsWithinOpenHours(ctx context.Context, tenantID, tz string, start, end time.Time) (bool, error)
}

type serviceImpl struct {
	repo  repository.BusinessHours
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.BusinessHours, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) BusinessHours {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func tenantFromContext(ctx context.Context) (string, error) {
	tenantID, _ := ctx.Value(constant.ContextKeyTenantID).(string)
	if tenantID == constant.Empty {
		return constant.Empty, failure.TenantNotFound // nolint:wrapcheck
	}

	return tenantID, nil
}

func parseClock(value string) (int, error) {
	parsed, err := time.Parse(constant.ClockFormat, value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}

func validateWindow(req dto.UpsertBusinessHoursRequest) error {
	if req.Closed {
		return nil
	}

	open, err := parseClock(req.OpenTime)
	if err != nil {
		return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	closeAt, err := parseClock(req.CloseTime)
	if err != nil {
		return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if closeAt <= open {
		return failure.BadRequestFromString("close time must be after open time") // nolint:wrapcheck
	}

	return nil
}

func weekdayFilter(tenantID string, weekday int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTenantID,
				Value:    tenantID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldWeekday,
				Value:    weekday,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// Upsert stores one weekday's window, replacing any existing record for that
// (tenant, weekday) pair.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertBusinessHoursRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return err
	}

	if err := validateWindow(req); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := weekdayFilter(tenantID, req.Weekday)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check business hours")

		return failure.StorageUnavailable // nolint:wrapcheck
	}

	if exist {
		openTime, closeTime := req.OpenTime, req.CloseTime
		if req.Closed {
			openTime, closeTime = constant.Empty, constant.Empty
		}

		// Built by hand because closed=false and blank clock strings are
		// meaningful values that TransformFields would drop.
		fields := map[string]any{
			model.FieldClosed:        req.Closed,
			model.FieldOpenTime:      openTime,
			model.FieldCloseTime:     closeTime,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.Update(ctx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update business hours")

			return fmt.Errorf("failed to update business hours: %w", err)
		}
	} else {
		if err := s.repo.Insert(ctx, req.ToModel(tenantID, user)); err != nil {
			log.Error().Err(err).Msg("failed to insert business hours")

			return fmt.Errorf("failed to insert business hours: %w", err)
		}
	}

	s.invalidate(ctx, tenantID)

	return nil
}

// SetWeek replaces the tenant's whole weekly calendar in one transaction.
func (s *serviceImpl) SetWeek(ctx context.Context, req dto.SetWeekRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetWeek")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	seen := map[int]bool{}
	models := make([]model.BusinessHours, 0, len(req.Days))

	for _, day := range req.Days {
		if seen[day.Weekday] {
			return failure.BadRequestFromString("duplicate weekday in request") // nolint:wrapcheck
		}

		seen[day.Weekday] = true

		if err := validateWindow(day); err != nil {
			return err
		}

		models = append(models, day.ToModel(tenantID, user))
	}

	err = s.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, shared.FilterByTenant(tenantID, model.FieldTenantID, model.TableName)); err != nil {
			return fmt.Errorf("failed to clear business hours: %w", err)
		}

		if err := s.repo.InsertBulk(txCtx, models); err != nil {
			return fmt.Errorf("failed to insert business hours: %w", err)
		}

		return nil
	})

	if err != nil {
		log.Error().Err(err).Msg("failed to replace weekly business hours")

		return failure.StorageUnavailable // nolint:wrapcheck
	}

	s.invalidate(ctx, tenantID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetBusinessHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetHours, tenantID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.FieldWeekday, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, shared.FilterByTenant(tenantID, model.FieldTenantID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business hours")

		return res, failure.StorageUnavailable // nolint:wrapcheck
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save business hours to cache")
		}
	}()

	return res, nil
}

// IsWithinOpenHours reports whether [start, end) fits inside the tenant's
// open window on the day of start, evaluated in the tenant's timezone. A day
// with no record counts as closed, and an interval that leaves the calendar
// day of start (crosses midnight or spans days) never fits.
func (s *serviceImpl) IsWithinOpenHours(ctx context.Context, tenantID, tz string, start, end time.Time) (bool, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsWithinOpenHours")
	defer scope.End()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn().Err(err).Str("timezone", tz).Msg("unknown tenant timezone, falling back to UTC")

		loc = time.UTC
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	if localStart.Year() != localEnd.Year() || localStart.YearDay() != localEnd.YearDay() {
		return false, nil
	}

	day, err := s.repo.Get(ctx, weekdayFilter(tenantID, int(localStart.Weekday())))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business hours")

		return false, failure.StorageUnavailable // nolint:wrapcheck
	}

	if day.ID == constant.Empty || day.Closed {
		return false, nil
	}

	openMinute, err := parseClock(day.OpenTime)
	if err != nil {
		return false, fmt.Errorf("stored open time is malformed: %w", err)
	}

	closeMinute, err := parseClock(day.CloseTime)
	if err != nil {
		return false, fmt.Errorf("stored close time is malformed: %w", err)
	}

	// Compare against the exact open and close instants so an interval
	// running even seconds past close does not slip through.
	year, month, dayOfMonth := localStart.Date()
	openAt := time.Date(year, month, dayOfMonth, openMinute/60, openMinute%60, 0, 0, loc)
	closeAt := time.Date(year, month, dayOfMonth, closeMinute/60, closeMinute%60, 0, 0, loc)

	return !localStart.Before(openAt) && !localEnd.After(closeAt), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, tenantID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHours, tenantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete business hours from cache")
		}
	}()
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"utabox/config"
	"utabox/infras/otel"
	"utabox/internal/domains/tenant/model"
	"utabox/internal/domains/tenant/model/dto"
	"utabox/internal/domains/tenant/repository"
	"utabox/shared"
	"utabox/shared/cache"
	"utabox/shared/constant"
	gDto "utabox/shared/dto"
	"utabox/shared/failure"
	"utabox/shared/timezone"
)

const (
	cacheResolveTenant = "tenant:resolve"
	cacheGetTenant     = "tenant:get"
	cacheGetAllTenant  = "tenant:gets"
	cacheCountTenant   = "tenant:count"
)

type Tenant interface {
	Resolve(ctx context.Context, slug string) (dto.TenantResponse, error)
	Create(ctx context.Context, req dto.CreateTenantRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTenantsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TenantResponse, error)
	Update(ctx context.Context, req dto.UpdateTenantRequest, id string) error
	Deactivate(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Tenant
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Tenant, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Tenant {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Resolve maps a slug to its tenant record. Unknown slugs and deactivated
// tenants both fail; nothing downstream ever runs without a resolved active
// tenant.
func (s *serviceImpl) Resolve(ctx context.Context, slug string) (res dto.TenantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheResolveTenant, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		if !res.Active {
			return dto.TenantResponse{}, failure.TenantInactive // nolint:wrapcheck
		}

		return res, nil
	}

	tenant, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to resolve tenant")

		return res, failure.StorageUnavailable // nolint:wrapcheck
	}

	if tenant.ID == constant.Empty {
		return res, failure.TenantNotFound // nolint:wrapcheck
	}

	res.FromModel(tenant)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tenant to cache")
		}
	}()

	if !tenant.Active {
		return dto.TenantResponse{}, failure.TenantInactive // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTenantRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	taken, err := s.repo.Exist(ctx, shared.FilterByID(req.Slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check tenant slug")

		return failure.StorageUnavailable // nolint:wrapcheck
	}

	if taken {
		return failure.Conflict("tenant slug is already in use") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create tenant")

		return fmt.Errorf("failed to create tenant: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTenant)
		shared.InvalidateCaches(c, s.cache, cacheCountTenant)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTenantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTenant, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tenants")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tenants")

		return res, fmt.Errorf("failed to count tenants: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tenants")

		return res, fmt.Errorf("failed to get tenants: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tenants to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTenant, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tenants")

		return res, fmt.Errorf("failed to count tenants: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tenant count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TenantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTenant, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	tenant, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tenant")

		return res, failure.StorageUnavailable // nolint:wrapcheck
	}

	if tenant.ID == constant.Empty {
		return res, failure.TenantNotFound // nolint:wrapcheck
	}

	res.FromModel(tenant)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tenant to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTenantRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateTenantRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	tenant, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tenant")

		return failure.StorageUnavailable // nolint:wrapcheck
	}

	if tenant.ID == constant.Empty {
		return failure.TenantNotFound // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update tenant")

		return fmt.Errorf("failed to update tenant: %w", err)
	}

	s.invalidate(ctx, tenant)

	return nil
}

// Deactivate soft-disables a tenant. The record stays behind so child rooms,
// hours, and booking history remain auditable.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	tenant, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tenant")

		return failure.StorageUnavailable // nolint:wrapcheck
	}

	if tenant.ID == constant.Empty {
		return failure.TenantNotFound // nolint:wrapcheck
	}

	if !tenant.Active {
		return failure.TenantInactive // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate tenant")

		return fmt.Errorf("failed to deactivate tenant: %w", err)
	}

	s.invalidate(ctx, tenant)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, tenant model.Tenant) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTenant, tenant.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete tenant from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheResolveTenant, tenant.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete resolved tenant from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTenant)
		shared.InvalidateCaches(c, s.cache, cacheCountTenant)
	}()
}

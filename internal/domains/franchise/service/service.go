package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nestling/config"
	"nestling/infras/otel"
	"nestling/internal/domains/franchise/model/dto"
	"nestling/internal/domains/franchise/repository"
	"nestling/shared"
	"nestling/shared/cache"
	"nestling/shared/constant"
	"nestling/shared/failure"
)

const (
	cacheGetFranchise     = "franchise:get"
	cacheGetAllFranchises = "franchise:gets"
)

type Franchise interface {
	Get(ctx context.Context, id string) (dto.FranchiseResponse, error)
	GetAllActive(ctx context.Context) (dto.GetFranchisesResponse, error)
}

type serviceImpl struct {
	repo  repository.Franchise
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Franchise, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Franchise {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FranchiseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".franchise.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetFranchise, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for franchise")

		return res, nil
	}

	franchise, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get franchise")

		return res, fmt.Errorf("failed to get franchise: %w", err)
	}

	if franchise.ID == constant.Empty {
		return res, failure.NotFound("franchise not found") // nolint:wrapcheck
	}

	res.FromModel(franchise)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save franchise to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAllActive(ctx context.Context) (res dto.GetFranchisesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".franchise.GetAllActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllFranchises)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for franchises")

		return res, nil
	}

	franchises, err := s.repo.GetAllActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get franchises")

		return res, fmt.Errorf("failed to get franchises: %w", err)
	}

	res.FromModels(franchises)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save franchises to cache")
		}
	}()

	return res, nil
}

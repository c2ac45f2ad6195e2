package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// CachePinger reports cache reachability; nil means the in-memory fallback
// is active and always healthy.
type CachePinger interface {
	HealthCheck(ctx context.Context) error
}

type healthUsecase struct {
	cache CachePinger
}

func NewHealthUsecase(cache CachePinger) HealthUsecase {
	return &healthUsecase{cache: cache}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":  "ok",
		"service": "oscrec-api",
	}
	if u.cache == nil {
		status["cache"] = "memory"
	} else if err := u.cache.HealthCheck(ctx); err != nil {
		status["cache"] = "unreachable"
	} else {
		status["cache"] = "redis"
	}
	return status
}

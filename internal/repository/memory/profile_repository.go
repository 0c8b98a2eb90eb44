package memory

import (
	"context"
	"time"

	"tutorai-be/internal/entity"
	"tutorai-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ProfileRepository keeps profiles in process when no database is configured.
type ProfileRepository struct {
	cache *cache.Cache
	now   func() time.Time
}

var _ contract.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		cache: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

func (r *ProfileRepository) FindByUserId(_ context.Context, userId string) (*entity.Profile, error) {
	x, found := r.cache.Get(userId)
	if !found {
		return nil, nil
	}
	return copyProfile(x.(*entity.Profile)), nil
}

func (r *ProfileRepository) Save(_ context.Context, profile *entity.Profile) error {
	now := r.now()
	if existing, found := r.cache.Get(profile.UserId); found {
		profile.CreatedAt = existing.(*entity.Profile).CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.cache.Set(profile.UserId, copyProfile(profile), cache.NoExpiration)
	return nil
}

func copyProfile(p *entity.Profile) *entity.Profile {
	c := *p
	c.Fields = make(map[string]interface{}, len(p.Fields))
	for k, v := range p.Fields {
		c.Fields[k] = v
	}
	return &c
}

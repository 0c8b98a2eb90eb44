package contract

import (
	"context"

	"tutorai-be/internal/entity"
)

type ProfileRepository interface {
	// FindByUserId returns (nil, nil) when the user has no profile.
	FindByUserId(ctx context.Context, userId string) (*entity.Profile, error)
	// Save creates or replaces the whole document.
	Save(ctx context.Context, profile *entity.Profile) error
}

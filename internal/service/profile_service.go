package service

import (
	"context"
	"time"

	"tutorai-be/internal/dto"
	"tutorai-be/internal/entity"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/internal/repository/contract"
)

type IProfileService interface {
	// Get returns (nil, nil) for a user without a profile.
	Get(ctx context.Context, userId string) (*dto.ProfileResponse, error)
	Set(ctx context.Context, userId string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	repo   contract.ProfileRepository
	logger logger.ILogger
	now    func() time.Time
}

func NewProfileService(repo contract.ProfileRepository, logger logger.ILogger) IProfileService {
	return &profileService{repo: repo, logger: logger, now: time.Now}
}

func (s *profileService) Get(ctx context.Context, userId string) (*dto.ProfileResponse, error) {
	profile, err := s.repo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return toProfileResponse(profile), nil
}

// Set replaces the document, or with Merge overlays the given fields onto
// the stored ones. A first write stamps createdAt when the caller did not.
func (s *profileService) Set(ctx context.Context, userId string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	existing, err := s.repo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, len(req.Fields))
	if req.Merge && existing != nil {
		for k, v := range existing.Fields {
			fields[k] = v
		}
	}
	for k, v := range req.Fields {
		fields[k] = v
	}
	if _, ok := fields["createdAt"]; !ok {
		if existing != nil && existing.Fields["createdAt"] != nil {
			fields["createdAt"] = existing.Fields["createdAt"]
		} else {
			fields["createdAt"] = s.now().UTC().Format(time.RFC3339)
		}
	}

	profile := &entity.Profile{UserId: userId, Fields: fields}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
	}
	if err := s.repo.Save(ctx, profile); err != nil {
		s.logger.Error("PROFILE", "Failed to save profile", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserId:    p.UserId,
		Fields:    p.Fields,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

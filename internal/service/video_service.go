package service

import (
	"context"
	"time"

	"tutorai-be/internal/constant"
	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/pkg/tutor/course"
	"tutorai-be/pkg/video"

	"github.com/patrickmn/go-cache"
)

type IVideoService interface {
	Recommend(ctx context.Context, userId, courseKey string) (*dto.VideoListResponse, error)
}

// VideoSearcher is the subset of the YouTube client the service needs.
type VideoSearcher interface {
	Search(ctx context.Context, query string, max int) ([]video.Video, error)
}

type videoService struct {
	searcher VideoSearcher
	profiles IProfileService
	cache    *cache.Cache
	logger   logger.ILogger
}

func NewVideoService(searcher VideoSearcher, profiles IProfileService, logger logger.ILogger) IVideoService {
	return &videoService{
		searcher: searcher,
		profiles: profiles,
		cache:    cache.New(time.Hour, 10*time.Minute),
		logger:   logger,
	}
}

// Recommend never fails: search errors are answered with the fixed fallback
// list. A search that finds nothing returns an empty list and is not cached.
func (s *videoService) Recommend(ctx context.Context, userId, courseKey string) (*dto.VideoListResponse, error) {
	key := course.NormalizeKey(courseKey)
	if key == "" {
		key = s.profileCourse(ctx, userId)
	}
	query := course.VideoQueryFor(key)

	res := &dto.VideoListResponse{Course: key, Query: query}

	if cached, found := s.cache.Get(query); found {
		res.Videos = cached.([]dto.VideoDTO)
		return res, nil
	}

	videos, err := s.searcher.Search(ctx, query, constant.VideoSearchMaxItems)
	if err != nil {
		s.logger.Warn("VIDEO", "Video search failed, serving fallback list", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		res.Fallback = true
		res.Videos = toVideoDTOs(video.Fallback())
		return res, nil
	}

	res.Videos = toVideoDTOs(videos)
	if len(res.Videos) == 0 {
		return res, nil
	}
	s.cache.Set(query, res.Videos, cache.DefaultExpiration)
	return res, nil
}

func (s *videoService) profileCourse(ctx context.Context, userId string) string {
	if s.profiles == nil || userId == "" {
		return course.DefaultCourse
	}
	profile, err := s.profiles.Get(ctx, userId)
	if err != nil || profile == nil {
		return course.DefaultCourse
	}
	if key, ok := profile.Fields["course"].(string); ok && course.NormalizeKey(key) != "" {
		return course.NormalizeKey(key)
	}
	return course.DefaultCourse
}

func toVideoDTOs(videos []video.Video) []dto.VideoDTO {
	out := make([]dto.VideoDTO, 0, len(videos))
	for _, v := range videos {
		out = append(out, dto.VideoDTO{
			Id:        v.ID,
			Title:     v.Title,
			Thumbnail: v.Thumbnail,
			Channel:   v.Channel,
		})
	}
	return out
}

package service

import (
	"context"
	"testing"

	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGetAbsent(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepository(), logger.NewNop())

	res, err := svc.Get(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestProfileSetMergeAndReplace(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepository(), logger.NewNop())
	ctx := context.Background()

	created, err := svc.Set(ctx, "u1", &dto.UpdateProfileRequest{Fields: map[string]interface{}{
		"name":  "Ada",
		"email": "ada@example.com",
	}})
	require.NoError(t, err)
	createdAt := created.Fields["createdAt"]
	assert.NotEmpty(t, createdAt)

	merged, err := svc.Set(ctx, "u1", &dto.UpdateProfileRequest{
		Fields: map[string]interface{}{"course": "mathematics"},
		Merge:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", merged.Fields["name"])
	assert.Equal(t, "mathematics", merged.Fields["course"])
	assert.Equal(t, createdAt, merged.Fields["createdAt"])

	replaced, err := svc.Set(ctx, "u1", &dto.UpdateProfileRequest{Fields: map[string]interface{}{"name": "Grace"}})
	require.NoError(t, err)
	assert.Equal(t, "Grace", replaced.Fields["name"])
	assert.NotContains(t, replaced.Fields, "email")
	assert.Equal(t, createdAt, replaced.Fields["createdAt"])

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, replaced.Fields, got.Fields)
}

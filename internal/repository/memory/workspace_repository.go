package memory

import (
	"time"

	"tutorai-be/pkg/tutor/workspace"

	"github.com/patrickmn/go-cache"
)

// WorkspaceRepository holds live workspaces keyed by owner. Entries expire
// after an hour without use; the next request rehydrates them from storage.
type WorkspaceRepository struct {
	cache *cache.Cache
}

func NewWorkspaceRepository(idle time.Duration) *WorkspaceRepository {
	if idle <= 0 {
		idle = time.Hour
	}
	return &WorkspaceRepository{
		cache: cache.New(idle, 10*time.Minute),
	}
}

func (r *WorkspaceRepository) Save(ws *workspace.Workspace) {
	r.cache.Set(ws.Owner(), ws, cache.DefaultExpiration)
}

// Get returns the workspace and refreshes its idle timer.
func (r *WorkspaceRepository) Get(owner string) (*workspace.Workspace, bool) {
	if x, found := r.cache.Get(owner); found {
		ws := x.(*workspace.Workspace)
		r.cache.Set(owner, ws, cache.DefaultExpiration)
		return ws, true
	}
	return nil, false
}

func (r *WorkspaceRepository) Delete(owner string) {
	r.cache.Delete(owner)
}

func (r *WorkspaceRepository) Count() int {
	return r.cache.ItemCount()
}

package pdfctx

import (
	"context"
	"time"

	"tutorai-be/pkg/storage"
)

// Context is the text extracted from the most recently uploaded document.
type Context struct {
	Text       string    `json:"text"`
	Filename   string    `json:"filename"`
	Pages      int       `json:"pages"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Cache holds at most one PDF context per workspace.
type Cache struct {
	adapter *storage.Adapter
	now     func() time.Time
	current *Context
}

func NewCache(adapter *storage.Adapter) *Cache {
	return &Cache{adapter: adapter, now: time.Now}
}

func (c *Cache) Load(ctx context.Context) {
	c.current = nil
	if stored, ok := storage.Load[Context](ctx, c.adapter, storage.KeyPdfContext); ok {
		c.current = &stored
	}
}

// Set replaces any cached context with a single write.
func (c *Cache) Set(ctx context.Context, text, filename string, pages int) Context {
	next := Context{
		Text:       text,
		Filename:   filename,
		Pages:      pages,
		UploadedAt: c.now(),
	}
	c.current = &next
	c.adapter.Save(ctx, storage.KeyPdfContext, next)
	return next
}

// Get returns the cached context, or false when none is cached.
func (c *Cache) Get() (Context, bool) {
	if c.current == nil {
		return Context{}, false
	}
	return *c.current, true
}

func (c *Cache) Clear(ctx context.Context) {
	c.current = nil
	c.adapter.Clear(ctx, storage.KeyPdfContext)
}

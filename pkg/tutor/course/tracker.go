package course

import (
	"context"
	"errors"
	"sort"
	"time"

	"tutorai-be/pkg/storage"

	"github.com/google/uuid"
)

// MaxSlots is the number of courses that can be tracked at once.
const MaxSlots = 3

var (
	ErrSlotLimitReached = errors.New("course slot limit reached")
	ErrUnknownCourse    = errors.New("unknown course")
	ErrCourseTracked    = errors.New("course is already tracked")
	ErrUnknownTopic     = errors.New("topic is not part of this course")
	ErrSlotNotFound     = errors.New("course slot not found")
)

// Slot tracks covered topics for one course. Topics is kept sorted and unique.
type Slot struct {
	ID        string    `json:"id"`
	Course    string    `json:"course"`
	Topics    []string  `json:"topics"`
	CreatedAt time.Time `json:"createdAt"`
}

type Progress struct {
	Covered int     `json:"covered"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Tracker manages the active course slots of one workspace. Not safe for
// concurrent use.
type Tracker struct {
	adapter        *storage.Adapter
	now            func() time.Time
	slots          []*Slot
	selectedCourse string
	selectedTopic  string
}

func NewTracker(adapter *storage.Adapter) *Tracker {
	return &Tracker{
		adapter: adapter,
		now:     time.Now,
	}
}

// Load restores slots and the last selection. Stored slots above the limit
// are kept as they are; the limit only applies to new slots.
func (t *Tracker) Load(ctx context.Context) {
	slots, _ := storage.Load[[]*Slot](ctx, t.adapter, storage.KeyCourseSlots)
	t.slots = t.slots[:0]
	for _, s := range slots {
		if s == nil || s.ID == "" {
			continue
		}
		s.Topics = uniqueSorted(s.Topics)
		t.slots = append(t.slots, s)
	}
	t.selectedCourse, _ = storage.Load[string](ctx, t.adapter, storage.KeySelectedCourse)
	t.selectedTopic, _ = storage.Load[string](ctx, t.adapter, storage.KeySelectedTopic)
}

// AddSlot starts tracking a course. topic is the optional selection that led
// to the slot; it is validated and remembered but not marked covered.
func (t *Tracker) AddSlot(ctx context.Context, courseKey, topic string) (*Slot, error) {
	if len(t.slots) >= MaxSlots {
		return nil, ErrSlotLimitReached
	}

	c, ok := Lookup(courseKey)
	if !ok {
		return nil, ErrUnknownCourse
	}
	for _, s := range t.slots {
		if s.Course == c.Key {
			return nil, ErrCourseTracked
		}
	}

	topic = NormalizeKey(topic)
	if topic != "" && !c.HasTopic(topic) {
		return nil, ErrUnknownTopic
	}

	slot := &Slot{
		ID:        newSlotID(),
		Course:    c.Key,
		Topics:    []string{},
		CreatedAt: t.now(),
	}
	t.slots = append(t.slots, slot)
	t.persist(ctx)

	t.selectedCourse = c.Key
	t.selectedTopic = topic
	t.adapter.Save(ctx, storage.KeySelectedCourse, t.selectedCourse)
	t.adapter.Save(ctx, storage.KeySelectedTopic, t.selectedTopic)

	return cloneSlot(slot), nil
}

// MarkTopicCovered adds topic to a slot. Already-covered topics are a no-op.
func (t *Tracker) MarkTopicCovered(ctx context.Context, slotID, topic string) error {
	slot := t.find(slotID)
	if slot == nil {
		return ErrSlotNotFound
	}
	c, ok := Lookup(slot.Course)
	topic = NormalizeKey(topic)
	if !ok || !c.HasTopic(topic) {
		return ErrUnknownTopic
	}

	for _, existing := range slot.Topics {
		if existing == topic {
			return nil
		}
	}
	slot.Topics = uniqueSorted(append(slot.Topics, topic))
	t.persist(ctx)
	return nil
}

// UnmarkTopic removes topic from a slot if present.
func (t *Tracker) UnmarkTopic(ctx context.Context, slotID, topic string) {
	slot := t.find(slotID)
	if slot == nil {
		return
	}
	topic = NormalizeKey(topic)
	for i, existing := range slot.Topics {
		if existing == topic {
			slot.Topics = append(slot.Topics[:i], slot.Topics[i+1:]...)
			t.persist(ctx)
			return
		}
	}
}

// DeleteSlot removes a slot and reports whether it existed.
func (t *Tracker) DeleteSlot(ctx context.Context, slotID string) bool {
	for i, s := range t.slots {
		if s.ID == slotID {
			t.slots = append(t.slots[:i], t.slots[i+1:]...)
			t.persist(ctx)
			return true
		}
	}
	return false
}

func (t *Tracker) Slots() []*Slot {
	out := make([]*Slot, 0, len(t.slots))
	for _, s := range t.slots {
		out = append(out, cloneSlot(s))
	}
	return out
}

func (t *Tracker) Get(slotID string) (*Slot, bool) {
	if s := t.find(slotID); s != nil {
		return cloneSlot(s), true
	}
	return nil, false
}

// Selection returns the course and topic picked with the latest AddSlot.
func (t *Tracker) Selection() (string, string) {
	return t.selectedCourse, t.selectedTopic
}

// ProgressOf derives covered/total for a slot against its course catalog.
func ProgressOf(slot *Slot) Progress {
	c, ok := Lookup(slot.Course)
	if !ok || len(c.Topics) == 0 {
		return Progress{Covered: len(slot.Topics)}
	}
	covered := 0
	for _, topic := range slot.Topics {
		if c.HasTopic(topic) {
			covered++
		}
	}
	return Progress{
		Covered: covered,
		Total:   len(c.Topics),
		Percent: float64(covered) * 100 / float64(len(c.Topics)),
	}
}

func (t *Tracker) persist(ctx context.Context) {
	t.adapter.Save(ctx, storage.KeyCourseSlots, t.slots)
}

func (t *Tracker) find(slotID string) *Slot {
	for _, s := range t.slots {
		if s.ID == slotID {
			return s
		}
	}
	return nil
}

func cloneSlot(s *Slot) *Slot {
	c := *s
	c.Topics = append([]string{}, s.Topics...)
	return &c
}

func uniqueSorted(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := make([]string, 0, len(topics))
	for _, topic := range topics {
		topic = NormalizeKey(topic)
		if topic == "" || seen[topic] {
			continue
		}
		seen[topic] = true
		out = append(out, topic)
	}
	sort.Strings(out)
	return out
}

func newSlotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

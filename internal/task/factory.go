package task

import "time"

// Kind selects the default priority a new task starts with.
type Kind int

const (
	KindStandard Kind = iota
	KindUrgent
)

func KindFor(urgent bool) Kind {
	if urgent {
		return KindUrgent
	}
	return KindStandard
}

func (k Kind) String() string {
	if k == KindUrgent {
		return "urgent"
	}
	return "standard"
}

func (k Kind) defaultPriority() Priority {
	if k == KindUrgent {
		return PriorityHigh
	}
	return PriorityMedium
}

// Create builds an unsaved task. The store assigns its ID on Add.
func (k Kind) Create(title, category string) Task {
	return Task{
		Title:     title,
		Category:  category,
		Priority:  k.defaultPriority(),
		CreatedAt: time.Now(),
	}
}

func New(title, category string, urgent bool) Task {
	return KindFor(urgent).Create(title, category)
}

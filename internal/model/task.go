package model

// Task is the domain model for a todo entry.
// ID is assigned once at creation and never reused.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	IsCompleted bool   `json:"isCompleted" yaml:"isCompleted"`
}

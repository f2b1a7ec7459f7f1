package transport

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/fastygo/taskboard/domain"
)

// OptionalString records whether a JSON field was present at all. A JSON null
// counts as present with an empty value.
type OptionalString struct {
	Set   bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalString) ptr() *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// TaskRequest is the body of create and update calls.
type TaskRequest struct {
	Title       OptionalString `json:"title"`
	Description OptionalString `json:"description"`
	Priority    OptionalString `json:"priority"`
	Status      OptionalString `json:"status"`
	DueDate     OptionalString `json:"due_date"`
	Location    OptionalString `json:"location"`
}

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDueDate(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dueDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, true
		}
	}
	return nil, false
}

// ToInput converts the request into create input.
func (r TaskRequest) ToInput() (domain.TaskInput, error) {
	input := domain.TaskInput{
		Title:       r.Title.Value,
		Description: r.Description.Value,
		Priority:    r.Priority.Value,
		Status:      r.Status.Value,
		Location:    r.Location.Value,
	}

	verr := domain.NewValidationError()
	if !r.Title.Set {
		verr.Add("title", "This field is required.")
	}
	if r.DueDate.Set && strings.TrimSpace(r.DueDate.Value) != "" {
		due, ok := parseDueDate(r.DueDate.Value)
		if !ok {
			verr.Add("due_date", "Datetime has wrong format.")
		}
		input.DueDate = due
	}
	if verr.HasErrors() {
		return domain.TaskInput{}, verr
	}
	return input, nil
}

// ToChanges converts the request into a partial update. With requireTitle
// set (PUT) the title must be present.
func (r TaskRequest) ToChanges(requireTitle bool) (domain.TaskChanges, error) {
	changes := domain.TaskChanges{
		Title:       r.Title.ptr(),
		Description: r.Description.ptr(),
		Priority:    r.Priority.ptr(),
		Status:      r.Status.ptr(),
		Location:    r.Location.ptr(),
	}

	verr := domain.NewValidationError()
	if requireTitle && !r.Title.Set {
		verr.Add("title", "This field is required.")
	}
	if r.DueDate.Set {
		if strings.TrimSpace(r.DueDate.Value) == "" {
			changes.ClearDueDate = true
		} else if due, ok := parseDueDate(r.DueDate.Value); ok {
			changes.DueDate = due
		} else {
			verr.Add("due_date", "Datetime has wrong format.")
		}
	}
	if verr.HasErrors() {
		return domain.TaskChanges{}, verr
	}
	return changes, nil
}

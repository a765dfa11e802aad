package task

// Duplicate is the creation payload derived from a source task. It has no
// identity until the remote API assigns one, and it deliberately carries no
// due date, start date, or completion time so the copy is immediately
// actionable again.
type Duplicate struct {
	Title     string          `json:"title"`
	Content   string          `json:"content,omitempty"`
	Desc      string          `json:"desc,omitempty"`
	ProjectID string          `json:"project_id"`
	Priority  int             `json:"priority"`
	Tags      []string        `json:"tags,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`
}

// NewDuplicate builds the creation payload for a fresh copy of src.
// Checklist items are copied with their completed state reset so the new
// task starts with an untouched checklist.
func NewDuplicate(src Task) Duplicate {
	dup := Duplicate{
		Title:     src.Title,
		Content:   src.Content,
		Desc:      src.Desc,
		ProjectID: src.ProjectID,
		Priority:  src.Priority,
	}

	if len(src.Tags) > 0 {
		dup.Tags = append([]string(nil), src.Tags...)
	}

	for _, item := range src.Checklist {
		dup.Checklist = append(dup.Checklist, ChecklistItem{Title: item.Title})
	}

	return dup
}

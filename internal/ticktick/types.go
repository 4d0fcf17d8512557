package ticktick

// Task statuses as used by the TickTick API.
const (
	StatusOpen      = 0
	StatusCompleted = 2
	StatusWontDo    = -1
)

// Project represents a TickTick project (list).
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	SortOrder int64  `json:"sortOrder,omitempty"`
	Closed    bool   `json:"closed,omitempty"`
	GroupID   string `json:"groupId,omitempty"`
	ViewMode  string `json:"viewMode,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

// ChecklistItem is a subtask entry on a checklist task.
type ChecklistItem struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title,omitempty"`
	Status        int    `json:"status,omitempty"`
	CompletedTime string `json:"completedTime,omitempty"`
	IsAllDay      bool   `json:"isAllDay,omitempty"`
	SortOrder     int64  `json:"sortOrder,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	TimeZone      string `json:"timeZone,omitempty"`
}

// Task represents a TickTick task. The struct doubles as the whitelist of
// fields carried through fetch-before-update merges: anything the API
// returns outside this set is dropped from update payloads.
type Task struct {
	ID            string          `json:"id,omitempty"`
	ProjectID     string          `json:"projectId,omitempty"`
	Title         string          `json:"title,omitempty"`
	Content       string          `json:"content,omitempty"`
	Desc          string          `json:"desc,omitempty"`
	StartDate     string          `json:"startDate,omitempty"`
	DueDate       string          `json:"dueDate,omitempty"`
	Reminders     []string        `json:"reminders,omitempty"`
	RepeatFlag    string          `json:"repeatFlag,omitempty"`
	Priority      int             `json:"priority,omitempty"`
	Status        int             `json:"status,omitempty"`
	SortOrder     int64           `json:"sortOrder,omitempty"`
	TimeZone      string          `json:"timeZone,omitempty"`
	IsAllDay      bool            `json:"isAllDay,omitempty"`
	CompletedTime string          `json:"completedTime,omitempty"`
	CreatedTime   string          `json:"createdTime,omitempty"`
	ModifiedTime  string          `json:"modifiedTime,omitempty"`
	Items         []ChecklistItem `json:"items,omitempty"`
	Kind          string          `json:"kind,omitempty"`
	Etag          string          `json:"etag,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	ColumnID      string          `json:"columnId,omitempty"`
}

// ProjectData is the full payload for one project, including its tasks.
type ProjectData struct {
	Project Project `json:"project"`
	Tasks   []Task  `json:"tasks"`
	Columns []any   `json:"columns,omitempty"`
}

// TasksSummary is the listing result for one project with a status
// breakdown.
type TasksSummary struct {
	ProjectID  string `json:"project_id"`
	Tasks      []Task `json:"tasks"`
	Count      int    `json:"count"`
	Completed  int    `json:"completed"`
	Incomplete int    `json:"incomplete"`
}

// CreateTaskInput carries the caller-supplied fields for a new task.
type CreateTaskInput struct {
	ProjectID string
	Title     string
	Content   string
	Priority  int
	DueDate   string
	Reminders []string
}

// TaskChanges carries optional field updates. Nil pointers mean "leave the
// existing value alone".
type TaskChanges struct {
	Title     *string
	Content   *string
	Priority  *int
	DueDate   *string
	Status    *int
	Tags      []string
	Reminders []string
}

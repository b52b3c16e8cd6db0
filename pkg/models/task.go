package models

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

type OnboardingCategory string

const (
	OnboardingDocumentation OnboardingCategory = "documentation"
	OnboardingTraining      OnboardingCategory = "training"
	OnboardingEquipment     OnboardingCategory = "equipment"
	OnboardingIntroduction  OnboardingCategory = "introduction"
	OnboardingCompliance    OnboardingCategory = "compliance"
)

func (c OnboardingCategory) Valid() bool {
	switch c {
	case OnboardingDocumentation, OnboardingTraining, OnboardingEquipment, OnboardingIntroduction, OnboardingCompliance:
		return true
	}
	return false
}

type OffboardingCategory string

const (
	OffboardingExitInterview     OffboardingCategory = "exit_interview"
	OffboardingAssetReturn       OffboardingCategory = "asset_return"
	OffboardingKnowledgeTransfer OffboardingCategory = "knowledge_transfer"
	OffboardingAccessRevoke      OffboardingCategory = "access_revoke"
	OffboardingFinalPay          OffboardingCategory = "final_pay"
)

func (c OffboardingCategory) Valid() bool {
	switch c {
	case OffboardingExitInterview, OffboardingAssetReturn, OffboardingKnowledgeTransfer, OffboardingAccessRevoke, OffboardingFinalPay:
		return true
	}
	return false
}

// Category is implemented by OnboardingCategory and OffboardingCategory.
type Category interface {
	~string
	Valid() bool
}

// Task is an onboarding or offboarding checklist item for one employee. The
// two kinds differ only in their category enum.
type Task[C Category] struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId" validate:"notblank"`
	Title       string     `json:"title" validate:"notblank"`
	Description string     `json:"description"`
	Category    C          `json:"category" validate:"enum"`
	Status      TaskStatus `json:"status" validate:"enum"`
	DueDate     string     `json:"dueDate" validate:"date"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
}

func (t *Task[C]) GetID() string   { return t.ID }
func (t *Task[C]) SetID(id string) { t.ID = id }

type (
	OnboardingTask  = Task[OnboardingCategory]
	OffboardingTask = Task[OffboardingCategory]
)

type TaskInput[C Category] struct {
	EmployeeID  string     `json:"employeeId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    C          `json:"category"`
	Status      TaskStatus `json:"status"`
	DueDate     string     `json:"dueDate"`
	AssignedTo  string     `json:"assignedTo"`
}

func (in TaskInput[C]) Task() Task[C] {
	t := Task[C]{
		EmployeeID:  in.EmployeeID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      in.Status,
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
	}
	if t.Status == "" {
		t.Status = TaskPending
	}
	return t
}

type TaskPatch[C Category] struct {
	EmployeeID  *string     `json:"employeeId"`
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Category    *C          `json:"category"`
	Status      *TaskStatus `json:"status"`
	DueDate     *string     `json:"dueDate"`
	AssignedTo  *string     `json:"assignedTo"`
}

func (p TaskPatch[C]) Apply(t *Task[C]) {
	setIf(&t.EmployeeID, p.EmployeeID)
	setIf(&t.Title, p.Title)
	setIf(&t.Description, p.Description)
	setIf(&t.Category, p.Category)
	setIf(&t.Status, p.Status)
	setIf(&t.DueDate, p.DueDate)
	setIf(&t.AssignedTo, p.AssignedTo)
}

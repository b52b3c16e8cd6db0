package models

type EmployeeStatus string

const (
	EmployeeActive      EmployeeStatus = "active"
	EmployeeOnboarding  EmployeeStatus = "onboarding"
	EmployeeOffboarding EmployeeStatus = "offboarding"
	EmployeeInactive    EmployeeStatus = "inactive"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeOnboarding, EmployeeOffboarding, EmployeeInactive:
		return true
	}
	return false
}

// Employee is a member of staff. Manager is a display name, not a reference
// that is checked.
type Employee struct {
	ID               string         `json:"id"`
	Name             string         `json:"name" validate:"notblank"`
	Email            string         `json:"email" validate:"required,contains=@" msg:"Valid email is required"`
	Phone            string         `json:"phone"`
	Position         string         `json:"position" validate:"notblank"`
	Department       string         `json:"department" validate:"notblank"`
	Manager          string         `json:"manager,omitempty"`
	StartDate        string         `json:"startDate" validate:"date"`
	Status           EmployeeStatus `json:"status" validate:"enum"`
	Avatar           string         `json:"avatar,omitempty"`
	Skills           []string       `json:"skills"`
	PerformanceScore *float64       `json:"performanceScore,omitempty" validate:"omitempty,gte=0,lte=5" msg:"Performance score must be between 0 and 5"`
}

func (e *Employee) GetID() string   { return e.ID }
func (e *Employee) SetID(id string) { e.ID = id }

type EmployeeInput struct {
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	Position         string         `json:"position"`
	Department       string         `json:"department"`
	Manager          string         `json:"manager"`
	StartDate        string         `json:"startDate"`
	Status           EmployeeStatus `json:"status"`
	Avatar           string         `json:"avatar"`
	Skills           []string       `json:"skills"`
	PerformanceScore *float64       `json:"performanceScore"`
}

func (in EmployeeInput) Employee(today string) Employee {
	e := Employee{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Position:         in.Position,
		Department:       in.Department,
		Manager:          in.Manager,
		StartDate:        in.StartDate,
		Status:           in.Status,
		Avatar:           in.Avatar,
		Skills:           in.Skills,
		PerformanceScore: in.PerformanceScore,
	}
	if e.StartDate == "" {
		e.StartDate = today
	}
	if e.Status == "" {
		e.Status = EmployeeOnboarding
	}
	if e.Skills == nil {
		e.Skills = []string{}
	}
	return e
}

type EmployeePatch struct {
	Name             *string         `json:"name"`
	Email            *string         `json:"email"`
	Phone            *string         `json:"phone"`
	Position         *string         `json:"position"`
	Department       *string         `json:"department"`
	Manager          *string         `json:"manager"`
	StartDate        *string         `json:"startDate"`
	Status           *EmployeeStatus `json:"status"`
	Avatar           *string         `json:"avatar"`
	Skills           []string        `json:"skills"`
	PerformanceScore *float64        `json:"performanceScore"`
}

func (p EmployeePatch) Apply(e *Employee) {
	setIf(&e.Name, p.Name)
	setIf(&e.Email, p.Email)
	setIf(&e.Phone, p.Phone)
	setIf(&e.Position, p.Position)
	setIf(&e.Department, p.Department)
	setIf(&e.Manager, p.Manager)
	setIf(&e.StartDate, p.StartDate)
	setIf(&e.Status, p.Status)
	setIf(&e.Avatar, p.Avatar)
	if p.Skills != nil {
		e.Skills = p.Skills
	}
	if p.PerformanceScore != nil {
		e.PerformanceScore = p.PerformanceScore
	}
}

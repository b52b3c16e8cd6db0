package hr

import (
	"talentflow/internal/query"
	"talentflow/pkg/models"
)

func text[T any](f func(T) string) func(T) (query.Key, bool) {
	return func(v T) (query.Key, bool) { return query.Text(f(v)), true }
}

// optionalText treats an empty value as a missing field.
func optionalText[T any](f func(T) string) func(T) (query.Key, bool) {
	return func(v T) (query.Key, bool) {
		s := f(v)
		return query.Text(s), s != ""
	}
}

func number[T any](f func(T) float64) func(T) (query.Key, bool) {
	return func(v T) (query.Key, bool) { return query.Number(f(v)), true }
}

var CandidateSchema = query.Schema[models.Candidate]{
	Search: []func(models.Candidate) string{
		func(c models.Candidate) string { return c.Name },
		func(c models.Candidate) string { return c.Email },
		func(c models.Candidate) string { return c.Position },
	},
	Filters: map[string]func(models.Candidate) string{
		"status":     func(c models.Candidate) string { return string(c.Status) },
		"department": func(c models.Candidate) string { return c.Department },
	},
	Sorts: map[string]func(models.Candidate) (query.Key, bool){
		"id":         number(func(c models.Candidate) float64 { return idNumber(c.ID) }),
		"name":       text(func(c models.Candidate) string { return c.Name }),
		"email":      text(func(c models.Candidate) string { return c.Email }),
		"position":   text(func(c models.Candidate) string { return c.Position }),
		"department": text(func(c models.Candidate) string { return c.Department }),
		"status":     text(func(c models.Candidate) string { return string(c.Status) }),
		"aiScore":    number(func(c models.Candidate) float64 { return c.AIScore }),
		"experience": number(func(c models.Candidate) float64 { return c.Experience }),
		"appliedAt":  optionalText(func(c models.Candidate) string { return c.AppliedAt }),
	},
	DefaultSort:  "appliedAt",
	DefaultOrder: query.Desc,
}

var InterviewSchema = query.Schema[models.Interview]{
	Search: []func(models.Interview) string{
		func(i models.Interview) string { return i.CandidateName },
		func(i models.Interview) string { return i.Position },
	},
	Filters: map[string]func(models.Interview) string{
		"status":      func(i models.Interview) string { return string(i.Status) },
		"type":        func(i models.Interview) string { return string(i.Type) },
		"candidateId": func(i models.Interview) string { return i.CandidateID },
	},
	Sorts: map[string]func(models.Interview) (query.Key, bool){
		"candidateName": text(func(i models.Interview) string { return i.CandidateName }),
		"position":      text(func(i models.Interview) string { return i.Position }),
		"scheduledAt":   optionalText(func(i models.Interview) string { return i.ScheduledAt }),
		"duration":      number(func(i models.Interview) float64 { return float64(i.Duration) }),
		"type":          text(func(i models.Interview) string { return string(i.Type) }),
		"status":        text(func(i models.Interview) string { return string(i.Status) }),
	},
	DefaultSort:  "scheduledAt",
	DefaultOrder: query.Asc,
}

var EmployeeSchema = query.Schema[models.Employee]{
	Search: []func(models.Employee) string{
		func(e models.Employee) string { return e.Name },
		func(e models.Employee) string { return e.Email },
		func(e models.Employee) string { return e.Position },
		func(e models.Employee) string { return e.Department },
	},
	Filters: map[string]func(models.Employee) string{
		"status":     func(e models.Employee) string { return string(e.Status) },
		"department": func(e models.Employee) string { return e.Department },
	},
	Sorts: map[string]func(models.Employee) (query.Key, bool){
		"name":       text(func(e models.Employee) string { return e.Name }),
		"email":      text(func(e models.Employee) string { return e.Email }),
		"position":   text(func(e models.Employee) string { return e.Position }),
		"department": text(func(e models.Employee) string { return e.Department }),
		"status":     text(func(e models.Employee) string { return string(e.Status) }),
		"startDate":  optionalText(func(e models.Employee) string { return e.StartDate }),
		"performanceScore": func(e models.Employee) (query.Key, bool) {
			if e.PerformanceScore == nil {
				return query.Key{}, false
			}
			return query.Number(*e.PerformanceScore), true
		},
	},
	DefaultSort:  "name",
	DefaultOrder: query.Asc,
}

func taskSchema[C models.Category]() query.Schema[models.Task[C]] {
	return query.Schema[models.Task[C]]{
		Search: []func(models.Task[C]) string{
			func(t models.Task[C]) string { return t.Title },
			func(t models.Task[C]) string { return t.Description },
		},
		Filters: map[string]func(models.Task[C]) string{
			"employeeId": func(t models.Task[C]) string { return t.EmployeeID },
			"status":     func(t models.Task[C]) string { return string(t.Status) },
			"category":   func(t models.Task[C]) string { return string(t.Category) },
		},
		Sorts: map[string]func(models.Task[C]) (query.Key, bool){
			"title":      text(func(t models.Task[C]) string { return t.Title }),
			"category":   text(func(t models.Task[C]) string { return string(t.Category) }),
			"status":     text(func(t models.Task[C]) string { return string(t.Status) }),
			"dueDate":    optionalText(func(t models.Task[C]) string { return t.DueDate }),
			"assignedTo": optionalText(func(t models.Task[C]) string { return t.AssignedTo }),
		},
		DefaultSort:  "dueDate",
		DefaultOrder: query.Asc,
	}
}

var (
	OnboardingSchema  = taskSchema[models.OnboardingCategory]()
	OffboardingSchema = taskSchema[models.OffboardingCategory]()
)

var DocumentSchema = query.Schema[models.Document]{
	Search: []func(models.Document) string{
		func(d models.Document) string { return d.Name },
		func(d models.Document) string { return d.UploadedBy },
	},
	Filters: map[string]func(models.Document) string{
		"type":       func(d models.Document) string { return string(d.Type) },
		"employeeId": func(d models.Document) string { return d.EmployeeID },
	},
	Sorts: map[string]func(models.Document) (query.Key, bool){
		"name":       text(func(d models.Document) string { return d.Name }),
		"type":       text(func(d models.Document) string { return string(d.Type) }),
		"uploadedBy": text(func(d models.Document) string { return d.UploadedBy }),
		"uploadedAt": optionalText(func(d models.Document) string { return d.UploadedAt }),
		"size":       number(func(d models.Document) float64 { return float64(d.Size) }),
	},
	DefaultSort:  "uploadedAt",
	DefaultOrder: query.Desc,
}

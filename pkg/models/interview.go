package models

type InterviewType string

const (
	InterviewPhone  InterviewType = "phone"
	InterviewVideo  InterviewType = "video"
	InterviewOnsite InterviewType = "onsite"
	InterviewAI     InterviewType = "ai"
)

func (t InterviewType) Valid() bool {
	switch t {
	case InterviewPhone, InterviewVideo, InterviewOnsite, InterviewAI:
		return true
	}
	return false
}

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled:
		return true
	}
	return false
}

type Recommendation string

const (
	StrongHire   Recommendation = "strong_hire"
	Hire         Recommendation = "hire"
	NoHire       Recommendation = "no_hire"
	StrongNoHire Recommendation = "strong_no_hire"
)

func (r Recommendation) Valid() bool {
	switch r {
	case StrongHire, Hire, NoHire, StrongNoHire:
		return true
	}
	return false
}

// InterviewFeedback is recorded by interviewers once an interview completes.
type InterviewFeedback struct {
	Rating         int            `json:"rating" validate:"min=1,max=5" msg:"Rating must be between 1 and 5"`
	Strengths      []string       `json:"strengths"`
	Weaknesses     []string       `json:"weaknesses"`
	Recommendation Recommendation `json:"recommendation" validate:"enum" msg:"Valid recommendation is required"`
	Notes          string         `json:"notes"`
}

// Interview references its candidate by id only; the candidate may no longer exist.
type Interview struct {
	ID            string             `json:"id"`
	CandidateID   string             `json:"candidateId" validate:"notblank"`
	CandidateName string             `json:"candidateName" validate:"notblank"`
	Position      string             `json:"position" validate:"notblank"`
	ScheduledAt   string             `json:"scheduledAt" validate:"timestamp"`
	Duration      int                `json:"duration" validate:"gte=0" msg:"Duration must not be negative"`
	Type          InterviewType      `json:"type" validate:"enum"`
	Status        InterviewStatus    `json:"status" validate:"enum"`
	Interviewers  []string           `json:"interviewers"`
	Feedback      *InterviewFeedback `json:"feedback,omitempty"`
}

func (i *Interview) GetID() string   { return i.ID }
func (i *Interview) SetID(id string) { i.ID = id }

type InterviewInput struct {
	CandidateID   string             `json:"candidateId"`
	CandidateName string             `json:"candidateName"`
	Position      string             `json:"position"`
	ScheduledAt   string             `json:"scheduledAt"`
	Duration      int                `json:"duration"`
	Type          InterviewType      `json:"type"`
	Status        InterviewStatus    `json:"status"`
	Interviewers  []string           `json:"interviewers"`
	Feedback      *InterviewFeedback `json:"feedback"`
}

func (in InterviewInput) Interview() Interview {
	i := Interview{
		CandidateID:   in.CandidateID,
		CandidateName: in.CandidateName,
		Position:      in.Position,
		ScheduledAt:   in.ScheduledAt,
		Duration:      in.Duration,
		Type:          in.Type,
		Status:        in.Status,
		Interviewers:  in.Interviewers,
		Feedback:      in.Feedback,
	}
	if i.Duration == 0 {
		i.Duration = 60
	}
	if i.Type == "" {
		i.Type = InterviewVideo
	}
	if i.Status == "" {
		i.Status = InterviewScheduled
	}
	if i.Interviewers == nil {
		i.Interviewers = []string{}
	}
	return i
}

type InterviewPatch struct {
	CandidateID   *string            `json:"candidateId"`
	CandidateName *string            `json:"candidateName"`
	Position      *string            `json:"position"`
	ScheduledAt   *string            `json:"scheduledAt"`
	Duration      *int               `json:"duration"`
	Type          *InterviewType     `json:"type"`
	Status        *InterviewStatus   `json:"status"`
	Interviewers  []string           `json:"interviewers"`
	Feedback      *InterviewFeedback `json:"feedback"`
}

func (p InterviewPatch) Apply(i *Interview) {
	setIf(&i.CandidateID, p.CandidateID)
	setIf(&i.CandidateName, p.CandidateName)
	setIf(&i.Position, p.Position)
	setIf(&i.ScheduledAt, p.ScheduledAt)
	setIf(&i.Duration, p.Duration)
	setIf(&i.Type, p.Type)
	setIf(&i.Status, p.Status)
	if p.Interviewers != nil {
		i.Interviewers = p.Interviewers
	}
	if p.Feedback != nil {
		i.Feedback = p.Feedback
	}
}

package models

// CandidateStatus is the hiring pipeline stage of a candidate.
type CandidateStatus string

const (
	CandidateNew       CandidateStatus = "new"
	CandidateScreening CandidateStatus = "screening"
	CandidateInterview CandidateStatus = "interview"
	CandidateOffer     CandidateStatus = "offer"
	CandidateHired     CandidateStatus = "hired"
	CandidateRejected  CandidateStatus = "rejected"
)

// CandidateStatuses lists every pipeline stage in funnel order.
var CandidateStatuses = []CandidateStatus{
	CandidateNew, CandidateScreening, CandidateInterview, CandidateOffer, CandidateHired, CandidateRejected,
}

func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateNew, CandidateScreening, CandidateInterview, CandidateOffer, CandidateHired, CandidateRejected:
		return true
	}
	return false
}

// Candidate is an applicant tracked through the hiring pipeline.
type Candidate struct {
	ID         string          `json:"id"`
	Name       string          `json:"name" validate:"notblank" msg:"Name is required and must be a non-empty string"`
	Email      string          `json:"email" validate:"required,contains=@" msg:"Valid email is required"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position" validate:"notblank" msg:"Position is required"`
	Department string          `json:"department"`
	Status     CandidateStatus `json:"status" validate:"enum" msg:"Valid status is required"`
	AIScore    float64         `json:"aiScore"`
	Skills     []string        `json:"skills"`
	Experience float64         `json:"experience"`
	ResumeURL  string          `json:"resumeUrl"`
	AppliedAt  string          `json:"appliedAt" validate:"date"`
	Notes      string          `json:"notes"`
}

func (c *Candidate) GetID() string   { return c.ID }
func (c *Candidate) SetID(id string) { c.ID = id }

// CandidateInput is the create payload. Omitted optional fields get defaults.
type CandidateInput struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position"`
	Department string          `json:"department"`
	Status     CandidateStatus `json:"status"`
	AIScore    float64         `json:"aiScore"`
	Skills     []string        `json:"skills"`
	Experience float64         `json:"experience"`
	ResumeURL  string          `json:"resumeUrl"`
	Notes      string          `json:"notes"`
}

// Candidate builds a record from the input, filling defaults. appliedAt is
// the creation date.
func (in CandidateInput) Candidate(today string) Candidate {
	c := Candidate{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Position:   in.Position,
		Department: in.Department,
		Status:     in.Status,
		AIScore:    in.AIScore,
		Skills:     in.Skills,
		Experience: in.Experience,
		ResumeURL:  in.ResumeURL,
		AppliedAt:  today,
		Notes:      in.Notes,
	}
	if c.Department == "" {
		c.Department = "General"
	}
	if c.Status == "" {
		c.Status = CandidateNew
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return c
}

// CandidatePatch is a partial update: nil fields keep their stored value.
type CandidatePatch struct {
	Name       *string          `json:"name"`
	Email      *string          `json:"email"`
	Phone      *string          `json:"phone"`
	Position   *string          `json:"position"`
	Department *string          `json:"department"`
	Status     *CandidateStatus `json:"status"`
	AIScore    *float64         `json:"aiScore"`
	Skills     []string         `json:"skills"`
	Experience *float64         `json:"experience"`
	ResumeURL  *string          `json:"resumeUrl"`
	AppliedAt  *string          `json:"appliedAt"`
	Notes      *string          `json:"notes"`
}

func (p CandidatePatch) Apply(c *Candidate) {
	setIf(&c.Name, p.Name)
	setIf(&c.Email, p.Email)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Position, p.Position)
	setIf(&c.Department, p.Department)
	setIf(&c.Status, p.Status)
	setIf(&c.AIScore, p.AIScore)
	if p.Skills != nil {
		c.Skills = p.Skills
	}
	setIf(&c.Experience, p.Experience)
	setIf(&c.ResumeURL, p.ResumeURL)
	setIf(&c.AppliedAt, p.AppliedAt)
	setIf(&c.Notes, p.Notes)
}

// setIf overwrites dst when the patch carries a value.
func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

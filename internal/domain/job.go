package domain

import "time"

// Job is the sink-side row for one posting, keyed by ExternalID.
type Job struct {
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	URL         string    `json:"url"`
	WorkMode    string    `json:"work_mode"`
	Salary      string    `json:"salary"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Application is one submission against a Job. Every /apply call adds one.
type Application struct {
	ID            int64      `json:"id"`
	JobID         int64      `json:"job_id"`
	Stage         string     `json:"stage"`
	Outcome       string     `json:"outcome"`
	Notes         string     `json:"notes"`
	AppliedOn     time.Time  `json:"applied_on"`
	InterviewTime *time.Time `json:"interview_time,omitempty"`
}

// Receipt is the body the sink answers a successful /apply with.
type Receipt struct {
	OK            bool  `json:"ok"`
	JobID         int64 `json:"job_id"`
	ApplicationID int64 `json:"application_id"`
}

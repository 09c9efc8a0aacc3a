package api

// Action is a Keep/Cut judgment over a segment, as carried on the wire.
type Action string

const (
	ActionKeep Action = "keep"
	ActionCut  Action = "cut"
)

// AIDecision is the machine-generated judgment for a segment. Immutable
// once loaded; absence means no AI judgment was produced.
type AIDecision struct {
	Action     Action  `json:"action"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	Note       *string `json:"note,omitempty"`
}

// HumanDecision is the reviewer-entered judgment for a segment.
type HumanDecision struct {
	Action Action `json:"action"`
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

// Segment is one atomic span of source media under review. StartMS/EndMS
// form the half-open interval [StartMS, EndMS).
type Segment struct {
	Index   int            `json:"index"`
	StartMS int64          `json:"start_ms"`
	EndMS   int64          `json:"end_ms"`
	Text    string         `json:"text"`
	AI      *AIDecision    `json:"ai"`
	Human   *HumanDecision `json:"human"`
}

// DurationMS returns the segment length in milliseconds.
func (s Segment) DurationMS() int64 { return s.EndMS - s.StartMS }

// Contains reports whether t (milliseconds) falls inside [StartMS, EndMS).
func (s Segment) Contains(t int64) bool { return t >= s.StartMS && t < s.EndMS }

// SegmentsResponse is the AI-authored segment list for a project.
type SegmentsResponse struct {
	Segments         []Segment `json:"segments"`
	SourceDurationMS int64     `json:"source_duration_ms"`
}

// EvaluationResponse is a saved human evaluation record.
type EvaluationResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	EvaluatorID string    `json:"evaluator_id"`
	Version     string    `json:"version"`
	Segments    []Segment `json:"segments"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// VideoURLResponse carries the presigned streaming URL for review playback.
type VideoURLResponse struct {
	VideoURL   string `json:"video_url"`
	DurationMS int64  `json:"duration_ms"`
}

// --- Upload types ---

// PartURL is one pre-authorized part upload target.
type PartURL struct {
	PartNumber int    `json:"part_number"`
	UploadURL  string `json:"upload_url"`
}

// MultipartInitiateResponse describes a newly created multipart upload.
type MultipartInitiateResponse struct {
	UploadID string    `json:"upload_id"`
	Key      string    `json:"r2_key"`
	PartSize int64     `json:"part_size"`
	PartURLs []PartURL `json:"part_urls"`
}

// CompletedPart pairs a part number with its integrity token.
type CompletedPart struct {
	PartNumber int    `json:"part_number"`
	ETag       string `json:"etag"`
}

// MultipartCompleteResponse confirms the assembled object key.
type MultipartCompleteResponse struct {
	Key string `json:"r2_key"`
}

// PresignResponse is a single-shot presigned PUT target for small files.
type PresignResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"r2_key"`
}

// --- Project types ---

// ExtraSource is an additional uploaded source attached to a project.
type ExtraSource struct {
	Key       string `json:"r2_key"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
}

// Project is the list-view projection of a project.
type Project struct {
	ID                    string        `json:"id"`
	Name                  string        `json:"name"`
	Status                string        `json:"status"`
	CutType               string        `json:"cut_type"`
	Language              string        `json:"language"`
	SourceFilename        *string       `json:"source_filename"`
	SourceDurationSeconds *float64      `json:"source_duration_seconds"`
	ExtraSources          []ExtraSource `json:"extra_sources"`
	CreatedAt             string        `json:"created_at"`
	UpdatedAt             string        `json:"updated_at"`
}

// Job is one processing job attached to a project.
type Job struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
	ErrorMessage *string `json:"error_message"`
	StartedAt    *string `json:"started_at"`
	CompletedAt  *string `json:"completed_at"`
	CreatedAt    string  `json:"created_at"`
}

// EditReport summarizes the server-side edit result for a project.
type EditReport struct {
	TotalDurationSeconds float64        `json:"total_duration_seconds"`
	CutDurationSeconds   float64        `json:"cut_duration_seconds"`
	CutPercentage        float64        `json:"cut_percentage"`
	EditSummary          map[string]any `json:"edit_summary"`
	ReportMarkdown       string         `json:"report_markdown"`
}

// ProjectDetail is the full project view including jobs and report.
type ProjectDetail struct {
	Project
	SourceKey       *string        `json:"source_r2_key"`
	SourceSizeBytes *int64         `json:"source_size_bytes"`
	Settings        map[string]any `json:"settings"`
	Jobs            []Job          `json:"jobs"`
	Report          *EditReport    `json:"report"`
}

// CreateProjectRequest is the payload for project creation.
type CreateProjectRequest struct {
	Name                  string         `json:"name"`
	CutType               string         `json:"cut_type"`
	Language              string         `json:"language"`
	SourceKey             string         `json:"source_r2_key"`
	SourceFilename        string         `json:"source_filename"`
	SourceDurationSeconds float64        `json:"source_duration_seconds"`
	SourceSizeBytes       int64          `json:"source_size_bytes"`
	Settings              map[string]any `json:"settings,omitempty"`
}

// CreditBalance is the account's processing credit state, in seconds.
type CreditBalance struct {
	BalanceSeconds   float64 `json:"balance_seconds"`
	HeldSeconds      float64 `json:"held_seconds"`
	AvailableSeconds float64 `json:"available_seconds"`
}

// DownloadResponse carries a presigned download URL for a result artifact.
type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
}

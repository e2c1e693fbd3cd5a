package domain

// Report is a piece of text with a single bias level
type Report struct {
	Hash      string  `json:"hash" example:"a0c1f2..."`
	Text      string  `json:"text" example:"nurses are always women"`
	URL       string  `json:"url,omitempty" example:"https://example.org/post/1"`
	BiasType  string  `json:"bias_type" example:"gender"`
	BiasLevel float64 `json:"bias_level" example:"3"`
}

// EntryHash implements Entry
func (r Report) EntryHash() string { return r.Hash }

// EntryText implements Entry
func (r Report) EntryText() string { return r.Text }

// EntryURL implements Entry
func (r Report) EntryURL() string { return r.URL }

// EntryBiasType implements Entry
func (r Report) EntryBiasType() string { return r.BiasType }

// ReportInput is the create payload for a report
type ReportInput struct {
	Text      string   `json:"text" validate:"required,max=10000"`
	URL       string   `json:"url,omitempty" validate:"omitempty,url,max=2048"`
	BiasType  string   `json:"bias_type" validate:"required,max=64"`
	BiasLevel *float64 `json:"bias_level" validate:"required"`
}

// InputText implements Input
func (in ReportInput) InputText() string { return in.Text }

// ReportPatch is the partial update payload for a report
type ReportPatch struct {
	Text      *string  `json:"text,omitempty" validate:"omitempty,max=10000"`
	URL       *string  `json:"url,omitempty" validate:"omitempty,url,max=2048"`
	BiasType  *string  `json:"bias_type,omitempty" validate:"omitempty,min=1,max=64"`
	BiasLevel *float64 `json:"bias_level,omitempty"`
}

// PatchText implements Patch
func (p ReportPatch) PatchText() *string { return p.Text }

// Empty implements Patch
func (p ReportPatch) Empty() bool { return p.URL == nil && p.BiasType == nil && p.BiasLevel == nil }

// Feedback is a user correction of a predicted bias level
type Feedback struct {
	Hash               string  `json:"hash"`
	Text               string  `json:"text"`
	URL                string  `json:"url,omitempty"`
	BiasType           string  `json:"bias_type"`
	BiasLevelPredicted float64 `json:"bias_level_predicted"`
	BiasLevelFeedback  float64 `json:"bias_level_feedback"`
}

// EntryHash implements Entry
func (f Feedback) EntryHash() string { return f.Hash }

// EntryText implements Entry
func (f Feedback) EntryText() string { return f.Text }

// EntryURL implements Entry
func (f Feedback) EntryURL() string { return f.URL }

// EntryBiasType implements Entry
func (f Feedback) EntryBiasType() string { return f.BiasType }

// FeedbackInput is the create payload for feedback
type FeedbackInput struct {
	Text               string   `json:"text" validate:"required,max=10000"`
	URL                string   `json:"url,omitempty" validate:"omitempty,url,max=2048"`
	BiasType           string   `json:"bias_type" validate:"required,max=64"`
	BiasLevelPredicted *float64 `json:"bias_level_predicted" validate:"required"`
	BiasLevelFeedback  *float64 `json:"bias_level_feedback" validate:"required"`
}

// InputText implements Input
func (in FeedbackInput) InputText() string { return in.Text }

// FeedbackPatch is the partial update payload for feedback
type FeedbackPatch struct {
	Text               *string  `json:"text,omitempty" validate:"omitempty,max=10000"`
	URL                *string  `json:"url,omitempty" validate:"omitempty,url,max=2048"`
	BiasType           *string  `json:"bias_type,omitempty" validate:"omitempty,min=1,max=64"`
	BiasLevelPredicted *float64 `json:"bias_level_predicted,omitempty"`
	BiasLevelFeedback  *float64 `json:"bias_level_feedback,omitempty"`
}

// PatchText implements Patch
func (p FeedbackPatch) PatchText() *string { return p.Text }

// Empty implements Patch
func (p FeedbackPatch) Empty() bool {
	return p.URL == nil && p.BiasType == nil && p.BiasLevelPredicted == nil && p.BiasLevelFeedback == nil
}

// ReportKind describes the reports table
var ReportKind = Kind[Report, ReportInput, ReportPatch]{
	Name: "report",
	Layout: Layout[Report]{
		Table:   "reports",
		Columns: []string{"url", "bias_type", "bias_level"},
		Values:  func(e Report) []any { return []any{e.URL, e.BiasType, e.BiasLevel} },
		Dest: func(e *Report) []any {
			return []any{&e.Hash, &e.Text, &e.URL, &e.BiasType, &e.BiasLevel}
		},
	},
	Build: func(in ReportInput, hash string) Report {
		return Report{Hash: hash, Text: in.Text, URL: in.URL, BiasType: in.BiasType, BiasLevel: deref(in.BiasLevel)}
	},
	Merge: func(cur Report, p ReportPatch) Report {
		set(&cur.URL, p.URL)
		set(&cur.BiasType, p.BiasType)
		set(&cur.BiasLevel, p.BiasLevel)
		return cur
	},
	View: func(e Report) map[string]any {
		return withURL(map[string]any{
			"hash":       e.Hash,
			"text":       e.Text,
			"bias_type":  e.BiasType,
			"bias_level": e.BiasLevel,
		}, e.URL)
	},
}

// FeedbackKind describes the feedback table
var FeedbackKind = Kind[Feedback, FeedbackInput, FeedbackPatch]{
	Name: "feedback",
	Layout: Layout[Feedback]{
		Table:   "feedback",
		Columns: []string{"url", "bias_type", "bias_level_predicted", "bias_level_feedback"},
		Values: func(e Feedback) []any {
			return []any{e.URL, e.BiasType, e.BiasLevelPredicted, e.BiasLevelFeedback}
		},
		Dest: func(e *Feedback) []any {
			return []any{&e.Hash, &e.Text, &e.URL, &e.BiasType, &e.BiasLevelPredicted, &e.BiasLevelFeedback}
		},
	},
	Build: func(in FeedbackInput, hash string) Feedback {
		return Feedback{
			Hash:               hash,
			Text:               in.Text,
			URL:                in.URL,
			BiasType:           in.BiasType,
			BiasLevelPredicted: deref(in.BiasLevelPredicted),
			BiasLevelFeedback:  deref(in.BiasLevelFeedback),
		}
	},
	Merge: func(cur Feedback, p FeedbackPatch) Feedback {
		set(&cur.URL, p.URL)
		set(&cur.BiasType, p.BiasType)
		set(&cur.BiasLevelPredicted, p.BiasLevelPredicted)
		set(&cur.BiasLevelFeedback, p.BiasLevelFeedback)
		return cur
	},
	View: func(e Feedback) map[string]any {
		return withURL(map[string]any{
			"hash":                 e.Hash,
			"text":                 e.Text,
			"bias_type":            e.BiasType,
			"bias_level_predicted": e.BiasLevelPredicted,
			"bias_level_feedback":  e.BiasLevelFeedback,
		}, e.URL)
	},
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// url is omitted from views when empty, same as the struct encoding
func withURL(m map[string]any, url string) map[string]any {
	if url != "" {
		m["url"] = url
	}
	return m
}

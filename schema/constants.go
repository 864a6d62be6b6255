package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the backend for evaluation storage.
	StoreBackend string

	// Category represents the category tag of a metric rule.
	Category string

	// TaskType represents the classification of a task.
	TaskType string

	// RuleKind represents the scoring function of a metric rule.
	RuleKind string

	// Grade represents the letter grade of a final score.
	Grade string

	// FeedbackBackend represents the generative-text service used for feedback.
	FeedbackBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
	XLSXOut OutputMode = "xlsx"
)

// All store backends supported.
const (
	BlobBackend   StoreBackend = "blob" // default
	SQLiteBackend StoreBackend = "sqlite"
	NoneBackend   StoreBackend = "none"
)

// All rule categories supported.
const (
	PlanningCategory  Category = "planning"
	OperationCategory Category = "operation"
)

// All task types supported.
const (
	PlanningTask    TaskType = "PLANNING"
	DevelopmentTask TaskType = "DEVELOPMENT"
)

// All rule kinds supported.
const (
	PlanSpecificityKind    RuleKind = "plan_specificity"
	ScheduleChangesKind    RuleKind = "schedule_changes"
	StartComplianceKind    RuleKind = "start_compliance"
	DeadlineComplianceKind RuleKind = "deadline_compliance"
	DelayDaysKind          RuleKind = "delay_days"
)

// All grades, from best to worst.
const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// All feedback backends supported.
const (
	GeminiFeedback FeedbackBackend = "gemini" // default
	NoneFeedback   FeedbackBackend = "none"
)

// Score conversion constants.
const (
	QuantRatio = 0.7 // share of the final score from quantitative metrics
	QualRatio  = 0.3 // share of the final score from the qualitative score

	MinScore = 0.0
	MaxScore = 100.0

	// DefaultQualitativeScore seeds new evaluation records.
	DefaultQualitativeScore = 80.0
)

// AllTaskTypes returns a list of all supported task types.
var AllTaskTypes = []TaskType{PlanningTask, DevelopmentTask}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
	XLSXOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	BlobBackend:   {},
	SQLiteBackend: {},
	NoneBackend:   {},
}

// ValidTaskTypes lists all valid task types.
var ValidTaskTypes = map[TaskType]struct{}{
	PlanningTask:    {},
	DevelopmentTask: {},
}

// ValidFeedbackBackends lists all valid feedback backends.
var ValidFeedbackBackends = map[FeedbackBackend]struct{}{
	GeminiFeedback: {},
	NoneFeedback:   {},
}

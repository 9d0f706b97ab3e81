package model

import "time"

// Test statuses reported to the UI.
const (
	TestStatusPass    = "Pass"
	TestStatusWarning = "Warning"
	TestStatusFail    = "Fail"
)

// Diagnostic category names, in run order.
const (
	CategoryHadoopFileSystem = "Hadoop file system"
	CategoryOozie            = "Oozie host connection"
	CategoryKafka            = "Kafka connection"
	CategoryZookeeper        = "Zookeeper connection"
	CategoryJobTracker       = "Job tracker / resource manager"
)

type TestResult struct {
	Name       string `json:"testName"`
	Status     string `json:"testStatus"`
	Message    string `json:"message,omitempty"`
	Target     string `json:"target,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type TestCategory struct {
	Name   string       `json:"categoryName"`
	Active bool         `json:"isCategoryActive"`
	Status string       `json:"categoryStatus"`
	Tests  []TestResult `json:"tests"`
}

type TestRun struct {
	ID          string         `json:"id"`
	Cluster     string         `json:"cluster"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt time.Time      `json:"completedAt"`
	Categories  []TestCategory `json:"categories"`
	// Aborted is set when the run was cancelled before every test finished.
	Aborted bool `json:"aborted,omitempty"`
}

// TestProgress is streamed to the UI once per completed test.
type TestProgress struct {
	RunID    string     `json:"runId"`
	Category string     `json:"category"`
	Test     TestResult `json:"test"`
	Done     bool       `json:"done"`
	Run      *TestRun   `json:"run,omitempty"`
}

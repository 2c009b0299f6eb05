package notify

import (
	"encoding/json"
	"time"
)

// AnalyzeRequestMessage asks the worker to run an analysis. InputPath may be
// empty, in which case the worker falls back to its configured input.
type AnalyzeRequestMessage struct {
	InputPath string    `json:"input_path,omitempty"`
	OutputDir string    `json:"output_dir,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisDoneMessage announces a completed run and where its artifacts are.
type AnalysisDoneMessage struct {
	SummaryPath  string    `json:"summary_path"`
	ReportPath   string    `json:"report_path"`
	TotalSpend   float64   `json:"total_spend"`
	Transactions int       `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewAnalyzeRequestMessage(inputPath, outputDir string) *AnalyzeRequestMessage {
	return &AnalyzeRequestMessage{InputPath: inputPath, OutputDir: outputDir, Timestamp: time.Now()}
}

func NewAnalysisDoneMessage(summaryPath, reportPath string, totalSpend float64, transactions int) *AnalysisDoneMessage {
	return &AnalysisDoneMessage{
		SummaryPath:  summaryPath,
		ReportPath:   reportPath,
		TotalSpend:   totalSpend,
		Transactions: transactions,
		Timestamp:    time.Now(),
	}
}

func (m *AnalyzeRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AnalyzeRequestMessageFromJSON(data []byte) (*AnalyzeRequestMessage, error) {
	var msg AnalyzeRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *AnalysisDoneMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AnalysisDoneMessageFromJSON(data []byte) (*AnalysisDoneMessage, error) {
	var msg AnalysisDoneMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

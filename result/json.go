package result

import (
	"encoding/json"
	"fmt"
	"os"
)

// suiteJSON is the serialized shape of a Suite. Child ownership and parent
// back-references are rebuilt on load, so only the downward structure is
// stored.
type suiteJSON struct {
	Name      string     `json:"name"`
	Doc       string     `json:"doc,omitempty"`
	Metadata  []Metadata `json:"metadata,omitempty"`
	StartTime string     `json:"starttime,omitempty"`
	EndTime   string     `json:"endtime,omitempty"`
	Suites    []*Suite   `json:"suites,omitempty"`
	Tests     []*Test    `json:"tests,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s *Suite) MarshalJSON() ([]byte, error) {
	return json.Marshal(&suiteJSON{
		Name:      s.Name,
		Doc:       s.Doc,
		Metadata:  s.Metadata,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Suites:    s.suites,
		Tests:     s.tests,
	})
}

// UnmarshalJSON implements json.Unmarshaler, re-linking parent references
// for the loaded subtree.
func (s *Suite) UnmarshalJSON(data []byte) error {
	var raw suiteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Name = raw.Name
	s.Doc = raw.Doc
	s.Metadata = raw.Metadata
	s.StartTime = raw.StartTime
	s.EndTime = raw.EndTime
	s.SetSuites(raw.Suites)
	s.SetTests(raw.Tests)
	return nil
}

type resultJSON struct {
	RPA    bool      `json:"rpa,omitempty"`
	Suite  *Suite    `json:"suite"`
	Errors []Message `json:"errors,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(&resultJSON{RPA: r.RPA, Suite: r.Suite, Errors: r.Errors})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.RPA = raw.RPA
	r.Suite = raw.Suite
	r.Errors = raw.Errors
	return nil
}

// ReadFile loads a materialized result tree from a JSON file.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}
	if res.Suite == nil {
		return nil, fmt.Errorf("result file %s contains no suite", path)
	}
	return &res, nil
}

// WriteFile serializes a result tree to a JSON file.
func WriteFile(path string, res *Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file %s: %w", path, err)
	}
	return nil
}

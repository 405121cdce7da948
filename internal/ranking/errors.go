package ranking

import "fmt"

// AnalysisFailedError is the single failure type of Engine.Match. No
// partial result accompanies it.
type AnalysisFailedError struct {
	Message string
	Cause   error
}

func (e *AnalysisFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisFailedError) Unwrap() error {
	return e.Cause
}

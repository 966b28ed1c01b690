package model

// ClassificationResult is the outcome of classifying a single inbound reply.
// Primary is always set (StageUnknown when nothing matched). Secondary lists
// every other matching stage in precedence order and never contains Primary;
// it is always empty when Primary is a hard-stop stage.
type ClassificationResult struct {
	Primary          Stage    `json:"primary"`
	Secondary        []Stage  `json:"secondary,omitempty"`
	Signals          []string `json:"signals,omitempty"`
	NegationDetected bool     `json:"negation_detected"`
}

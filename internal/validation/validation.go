// Package validation holds the request validation rules for the product API.
//
// A Rule is a pure function over an Input that returns zero or more
// Violations. A RuleSet runs every rule it holds, in order, and collects all
// violations instead of stopping at the first one. Nothing in this package
// knows about the HTTP framework; the middleware package adapts it.
package validation

// Location tells where a validated field came from.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

// Violation is a single field-level validation failure.
type Violation struct {
	Msg      string   `json:"msg"`
	Param    string   `json:"param"`
	Location Location `json:"location"`
	Value    any      `json:"value,omitempty"`
}

// ErrorResponse is the body returned when a request fails validation.
type ErrorResponse struct {
	Errors []Violation `json:"errors"`
}

// Rule checks one aspect of a request.
type Rule func(in Input) []Violation

// RuleSet is an ordered list of rules bound to a route.
type RuleSet []Rule

// Check runs every rule and returns all violations found, in rule order.
// A nil result means the input is valid.
func (rs RuleSet) Check(in Input) []Violation {
	var violations []Violation
	for _, rule := range rs {
		violations = append(violations, rule(in)...)
	}
	return violations
}

package validation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Violation describes a single failed rule in a 400 response body.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type source int

const (
	fromParams source = iota
	fromBody
)

type checkKind int

const (
	checkInt checkKind = iota
	checkNotEmpty
	checkNumeric
	checkGreaterThan
	checkBoolean
)

type check struct {
	kind    checkKind
	bound   float64
	message string
}

// Rule binds an ordered chain of checks to one named field of the request.
// Checks run in declaration order; the first failure is reported for the
// field and the rest of the chain is skipped.
type Rule struct {
	source source
	field  string
	checks []check
}

// Param starts a rule against a path parameter.
func Param(field string) *Rule {
	return &Rule{source: fromParams, field: field}
}

// Body starts a rule against a field of the JSON request body.
func Body(field string) *Rule {
	return &Rule{source: fromBody, field: field}
}

// IsInt requires the value to parse as a base-10 integer.
func (r *Rule) IsInt(message string) *Rule {
	r.checks = append(r.checks, check{kind: checkInt, message: message})
	return r
}

// NotEmpty requires the value to be present and, for strings, non-empty.
func (r *Rule) NotEmpty(message string) *Rule {
	r.checks = append(r.checks, check{kind: checkNotEmpty, message: message})
	return r
}

// IsNumeric requires a JSON number or a string that parses as one.
func (r *Rule) IsNumeric(message string) *Rule {
	r.checks = append(r.checks, check{kind: checkNumeric, message: message})
	return r
}

// GreaterThan requires a numeric value strictly above bound. It must follow
// IsNumeric in the chain.
func (r *Rule) GreaterThan(bound float64, message string) *Rule {
	r.checks = append(r.checks, check{kind: checkGreaterThan, bound: bound, message: message})
	return r
}

// IsBoolean requires a JSON boolean.
func (r *Rule) IsBoolean(message string) *Rule {
	r.checks = append(r.checks, check{kind: checkBoolean, message: message})
	return r
}

// evaluate returns the first violated check in the chain, or nil.
func (r *Rule) evaluate(value any, present bool) *Violation {
	for _, c := range r.checks {
		if !c.passes(value, present) {
			return &Violation{Field: r.field, Message: c.message}
		}
	}
	return nil
}

func (c check) passes(value any, present bool) bool {
	switch c.kind {
	case checkInt:
		s, ok := value.(string)
		if !present || !ok {
			return false
		}
		_, err := strconv.ParseInt(s, 10, 64)
		return err == nil
	case checkNotEmpty:
		if !present || value == nil {
			return false
		}
		if s, ok := value.(string); ok {
			return s != ""
		}
		return true
	case checkNumeric:
		_, ok := numericValue(value, present)
		return ok
	case checkGreaterThan:
		n, ok := numericValue(value, present)
		return ok && n > c.bound
	case checkBoolean:
		_, ok := value.(bool)
		return present && ok
	}
	return false
}

func numericValue(value any, present bool) (float64, bool) {
	if !present {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil && v != ""
	default:
		return 0, false
	}
}

// Gate builds the middleware for a route's rule list. All rules are
// evaluated against the request; if any fail, it responds 400 with every
// violation and the handler is never invoked.
func Gate(rules ...*Rule) fiber.Handler {
	needsBody := false
	for _, r := range rules {
		if r.source == fromBody {
			needsBody = true
		}
	}

	return func(c *fiber.Ctx) error {
		var body map[string]any
		if needsBody {
			raw := c.Body()
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &body); err != nil {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"errors": []Violation{{Field: "body", Message: "Invalid request body"}},
					})
				}
			}
		}

		var violations []Violation
		for _, r := range rules {
			var value any
			var present bool
			switch r.source {
			case fromParams:
				s := c.Params(r.field)
				value, present = s, s != ""
			case fromBody:
				value, present = body[r.field]
			}
			if v := r.evaluate(value, present); v != nil {
				violations = append(violations, *v)
			}
		}

		if len(violations) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": violations})
		}
		return c.Next()
	}
}

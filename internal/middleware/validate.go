package middleware

import (
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const validatedInputKey = "validated_input"

// Validate is a Fiber middleware that runs rules against the request path
// parameters and the body of application/json requests. When any rule fails it responds 400 with every
// violation and the next handler never runs. Otherwise the checked input is
// stored for the handler, see ValidatedInput.
func Validate(rules validation.RuleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := inputFromRequest(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(validation.ErrorResponse{
				Errors: []validation.Violation{{
					Msg:      validation.MsgMalformedBody,
					Location: validation.LocationBody,
				}},
			})
		}

		if violations := rules.Check(in); len(violations) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(validation.ErrorResponse{
				Errors: violations,
			})
		}

		c.Locals(validatedInputKey, in)
		return c.Next()
	}
}

// ValidatedInput returns the input stored by Validate. Handlers mounted
// without Validate get an empty input.
func ValidatedInput(c *fiber.Ctx) validation.Input {
	if in, ok := c.Locals(validatedInputKey).(validation.Input); ok {
		return in
	}
	return validation.NewInput(nil, nil)
}

func inputFromRequest(c *fiber.Ctx) (validation.Input, error) {
	// Fiber reuses param buffers between requests unless the app is immutable.
	params := make(map[string]string)
	for k, v := range c.AllParams() {
		params[k] = utils.CopyString(v)
	}

	// Only JSON bodies are parsed; anything else validates as an empty body.
	var body map[string]any
	if raw := c.Body(); len(raw) > 0 && c.Is("json") {
		if err := c.App().Config().JSONDecoder(raw, &body); err != nil {
			return validation.Input{}, err
		}
	}
	return validation.NewInput(params, body), nil
}

package validation

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Prices are stored as numeric(10,2).
var (
	priceScale int32 = 2
	maxPrice         = decimal.New(1, 8)
)

// Rule sets bound to the product routes.
var (
	ProductIDRules = RuleSet{
		ParamInt("id", MsgInvalidID),
	}

	CreateProductRules = RuleSet{
		BodyNotEmpty("name", MsgNameRequired),
		BodyNumeric("price", MsgPriceNotNumeric),
		BodyNotEmpty("price", MsgPriceRequired),
		BodyPositive("price", MsgPriceInvalid),
	}

	UpdateProductRules = RuleSet{
		ParamInt("id", MsgInvalidID),
		BodyNotEmpty("name", MsgNameRequired),
		BodyNumeric("price", MsgPriceNotNumeric),
		BodyNotEmpty("price", MsgPriceRequired),
		BodyPositive("price", MsgPriceInvalid),
		BodyOptionalBoolean("availability", MsgAvailabilityInvalid),
	}
)

// ParamInt requires the path parameter to parse as an integer.
func ParamInt(name, msg string) Rule {
	return func(in Input) []Violation {
		raw, _ := in.Param(name)
		if _, err := strconv.Atoi(raw); err != nil {
			return []Violation{paramViolation(name, msg, raw)}
		}
		return nil
	}
}

// BodyNotEmpty requires the body field to be present and non-empty once
// read as a string.
func BodyNotEmpty(name, msg string) Rule {
	return func(in Input) []Violation {
		if err := validate.Var(in.String(name), "required"); err != nil {
			return []Violation{bodyViolation(in, name, msg)}
		}
		return nil
	}
}

// BodyNumeric requires the body field to be a number or a numeric string.
func BodyNumeric(name, msg string) Rule {
	return func(in Input) []Violation {
		if !isNumeric(in, name) {
			return []Violation{bodyViolation(in, name, msg)}
		}
		return nil
	}
}

// BodyPositive requires the body field to be a number strictly greater
// than zero that fits a price column: at most two decimal places and below
// 10^8.
func BodyPositive(name, msg string) Rule {
	return func(in Input) []Violation {
		if !isNumeric(in, name) {
			return []Violation{bodyViolation(in, name, msg)}
		}
		d, err := decimal.NewFromString(in.String(name))
		if err != nil || !d.GreaterThan(decimal.Zero) {
			return []Violation{bodyViolation(in, name, msg)}
		}
		if !d.Equal(d.Round(priceScale)) || !d.LessThan(maxPrice) {
			return []Violation{bodyViolation(in, name, msg)}
		}
		return nil
	}
}

// BodyOptionalBoolean requires the body field, when present, to be a
// boolean, 0/1, or a string that parses as a boolean.
func BodyOptionalBoolean(name, msg string) Rule {
	return func(in Input) []Violation {
		raw, ok := in.Field(name)
		if !ok {
			return nil
		}
		switch v := raw.(type) {
		case bool:
			return nil
		case float64:
			if v == 0 || v == 1 {
				return nil
			}
		case string:
			switch v {
			case "true", "false", "0", "1":
				return nil
			}
		}
		return []Violation{bodyViolation(in, name, msg)}
	}
}

func isNumeric(in Input, name string) bool {
	raw, ok := in.Field(name)
	if !ok || raw == nil {
		return false
	}
	switch raw.(type) {
	case float64, string:
	default:
		return false
	}
	return validate.Var(in.String(name), "required,numeric") == nil
}

func paramViolation(name, msg, value string) Violation {
	return Violation{Msg: msg, Param: name, Location: LocationParams, Value: value}
}

func bodyViolation(in Input, name, msg string) Violation {
	v, _ := in.Field(name)
	return Violation{Msg: msg, Param: name, Location: LocationBody, Value: v}
}

// Package convert maps Go argument structs to MCP tool definitions and back.
package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/swaggest/jsonschema-go"

	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

var (
	reflector = jsonschema.Reflector{}
	validate  = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ToolFromArgs builds an MCP tool whose input schema is reflected from args.
// Field names come from json tags; required, description, default and enum tags are honored.
func ToolFromArgs(name, description string, args any) (types.Tool, error) {
	schema, err := InputSchema(args)
	if err != nil {
		return types.Tool{}, fmt.Errorf("failed to build schema for tool %s: %w", name, err)
	}

	return types.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}, nil
}

// InputSchema reflects args into a JSON schema object
func InputSchema(args any) (map[string]any, error) {
	if args == nil {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}

	schema, err := reflector.Reflect(args, jsonschema.InlineRefs)
	if err != nil {
		return nil, err
	}

	data, err := sonic.Marshal(&schema)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	if _, ok := out["properties"]; !ok {
		out["properties"] = map[string]any{}
	}

	return out, nil
}

// DecodeArguments decodes tool call arguments into dst and validates it.
// Failures are returned as invalid params errors.
func DecodeArguments(arguments map[string]any, dst any) error {
	if arguments == nil {
		arguments = map[string]any{}
	}

	data, err := sonic.Marshal(arguments)
	if err != nil {
		return types.NewError(types.CodeInvalidParams, "invalid arguments: %v", err)
	}

	if err := sonic.Unmarshal(data, dst); err != nil {
		return types.NewError(types.CodeInvalidParams, "invalid arguments: %v", err)
	}

	if err := validate.Struct(dst); err != nil {
		return types.NewError(types.CodeInvalidParams, "invalid arguments: %s", describeValidation(err))
	}

	return nil
}

func describeValidation(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(messages, ", ")
}

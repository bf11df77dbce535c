package tools

import (
	"context"
	"fmt"

	"github.com/BrunoKrugel/brevo-mcp/pkg/convert"
	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

const AccountTool = "account"

// AccountArgs are the arguments of the account tool
type AccountArgs struct {
	Operation string `json:"operation" required:"true" enum:"get_account" description:"Account operation to perform" validate:"required"`
}

func accountHandler(client Client) types.ToolHandler {
	return func(ctx context.Context, arguments map[string]any) (string, error) {
		var args AccountArgs
		if err := convert.DecodeArguments(arguments, &args); err != nil {
			return "", err
		}

		switch args.Operation {
		case "get_account":
			account, err := client.GetAccount(ctx)
			if err != nil {
				return "", err
			}
			return prettyJSON(account)
		default:
			return "", fmt.Errorf("Unknown account operation: %s", args.Operation)
		}
	}
}

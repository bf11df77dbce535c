/*
Package server implements a Model Context Protocol (MCP) server that exposes the Brevo contacts API as tools.

Tools and resources are registered on a BrevoMCP instance and served over either the Streamable HTTP transport on an Echo router or newline-delimited JSON on stdio.

# Quick Start

	package main

	import (
		"context"
		"os"

		server "github.com/BrunoKrugel/brevo-mcp"
		"github.com/BrunoKrugel/brevo-mcp/pkg/brevo"
		"github.com/BrunoKrugel/brevo-mcp/pkg/tools"
	)

	func main() {
		client := brevo.NewClient(&brevo.Config{APIKey: os.Getenv("BREVO_API_KEY")})

		mcp := server.NewWithConfig(&server.Config{
			Name:    "brevo-mcp",
			Version: "1.0.0",
		})
		if err := tools.Register(mcp, client); err != nil {
			panic(err)
		}

		if err := mcp.ServeStdio(context.Background(), os.Stdin, os.Stdout); err != nil {
			panic(err)
		}
	}

# HTTP Transport

Mount the server on an Echo instance instead of serving stdio:

	e := echo.New()
	if err := mcp.Mount(e, "/mcp"); err != nil {
		e.Logger.Fatal(err)
	}
	e.Start(":8080")

The first initialize request creates a session whose id is returned in the Mcp-Session-Id header. Later requests that carry the header must use a known session.

# Custom Tools

Any function can be exposed as a tool:

	tool, _ := convert.ToolFromArgs("echo", "Echo the input", EchoArgs{})
	mcp.RegisterTool(tool, func(ctx context.Context, arguments map[string]any) (string, error) {
		var args EchoArgs
		if err := convert.DecodeArguments(arguments, &args); err != nil {
			return "", err
		}
		return args.Text, nil
	})

Handler errors are reported to the client as "Error executing <tool>: <message>".

# Server Info

When Config.EnableSwaggerInfo is set, an empty name, version or description is filled in from the OpenAPI document published with the swagger package.
*/
package server

package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "ask":
		if err := runAsk(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "configure":
		if err := runConfigure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("sqlpilot — natural-language SQL assistant")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sqlpilot serve              Start the MCP server")
	fmt.Println("  sqlpilot ask \"<question>\"   Run one question through the pipeline")
	fmt.Println("  sqlpilot configure          Run interactive configuration wizard")
	fmt.Println("  sqlpilot --help             Show this help message")
}

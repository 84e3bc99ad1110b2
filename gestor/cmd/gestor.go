// Command-line interface entrypoint for the Gestor Familiar agent
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gestor/gestor/agents/configs"
	"gestor/gestor/config"
	"gestor/gestor/controllers"
	"gestor/gestor/services/llm"
	"gestor/gestor/utils/jsonutils"
	"gestor/gestor/utils/logging"
	"gestor/gestor/utils/types"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	args := os.Args[1:]
	if len(args) < 1 || args[0] != "ask" {
		usage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print each answer as the JSON body the HTTP API would return")
	fs.Parse(args[1:])

	agent, err := configs.LoadAgentDefinition(cfg.AgentConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "agent config:", err)
		os.Exit(1)
	}
	runner, err := llm.NewRunner(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	chat := controllers.NewChatController(runner, agent)
	logging.AppLogger.Info("CLI session started", zap.String("agent", agent.Name), zap.Bool("mock", cfg.MockMode()))

	// a question given on the command line is answered once, no prompt
	if question := strings.TrimSpace(strings.Join(fs.Args(), " ")); question != "" {
		if !answer(chat, question, *asJSON) {
			os.Exit(1)
		}
		return
	}

	fmt.Printf("\n%s (%s)\n", agent.Name, agent.Model)
	fmt.Println("Type your question or 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("gestor> ")
		if !scanner.Scan() {
			break // EOF or error
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Println("Adéu!")
			break
		}
		if line == "" {
			continue
		}
		answer(chat, line, *asJSON)
		fmt.Println()
	}
}

func answer(chat *controllers.ChatController, question string, asJSON bool) bool {
	resp, err := chat.Chat(context.Background(), types.ChatRequest{Message: question})
	if err != nil {
		if asJSON {
			fmt.Println(jsonutils.ToJSON(types.ErrorResponse{Detail: err.Error()}))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return false
	}
	if asJSON {
		fmt.Println(jsonutils.ToJSON(resp))
	} else {
		fmt.Println(resp.Response)
	}
	return true
}

func usage() {
	fmt.Println("Gestor Familiar CLI usage:")
	fmt.Println("  gestor ask [-json] [question]   # ask once, or start an interactive session")
}

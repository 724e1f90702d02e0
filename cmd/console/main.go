package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/seatflow/onboard/config"
	"github.com/seatflow/onboard/extract"
	"github.com/seatflow/onboard/onboarding"
)

// Interactive console for running an onboarding conversation without a
// WebSocket client. Set EXTRACTOR=rules to run fully offline.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var ex onboarding.Extractor
	switch cfg.Extractor {
	case "rules":
		ex = extract.NewRules()
		log.Println("🧮 Using the rule-based extractor")
	default:
		g, err := extract.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ExtractTimeout)
		if err != nil {
			log.Fatalf("Failed to create extractor: %v", err)
		}
		defer g.Close()
		ex = g
	}

	flow := onboarding.NewFlow(ex)
	fmt.Println(flow.Start().Question)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			fmt.Println("Bye.")
			return
		}

		turn, err := flow.Advance(ctx, text)
		if err != nil {
			log.Fatalf("Conversation failed: %v", err)
		}

		if turn.Note != "" {
			fmt.Println(turn.Note)
		}
		if turn.Done {
			out, err := sonic.MarshalIndent(turn.Final, "", "  ")
			if err != nil {
				log.Fatalf("Failed to encode config: %v", err)
			}
			fmt.Println(string(out))
			return
		}
		if turn.Question != "" {
			fmt.Println(turn.Question)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("Input error: %v", err)
	}
}

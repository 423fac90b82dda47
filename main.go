package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	conversationx "github.com/haradakit/companion/agent/conversation"
	haradax "github.com/haradakit/companion/agent/harada"
	llmx "github.com/haradakit/companion/agent/llm"
	orchestratorx "github.com/haradakit/companion/agent/orchestrator"
	personax "github.com/haradakit/companion/agent/persona"
	storex "github.com/haradakit/companion/agent/store"
	configx "github.com/haradakit/companion/pkg/config"
	_ "github.com/haradakit/companion/pkg/logger/autoload"
)

// errorReply is what the user hears when the model call itself failed.
const errorReply = "Sorry, I had trouble processing that. Check the logs for details."

type AppConfig struct {
	// StoreDSN switches persistence from local JSON files to Postgres.
	StoreDSN string `envconfig:"STORE_DSN" split_words:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	st, cleanup := newStore(*appCfg)
	defer cleanup()

	personaCfg := configx.MustNew[personax.Config]("PERSONA")
	personas, err := personax.NewManager(personaCfg.PersonasFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load personas")
	}
	models, err := personax.NewCatalog(personaCfg.ModelsFile, personaCfg.ModelOverrideFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load models")
	}

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	router := llmx.NewRouter(*llmCfg)

	dispatcher := haradax.NewDispatcher(st)
	projector := haradax.NewProjector(st, nil)

	service, err := orchestratorx.New(router, personas, models, dispatcher, haradax.Tools(), projector, conversationx.New())
	if err != nil {
		log.Fatal().Err(err).Msg("build service")
	}

	args := os.Args[1:]
	if len(args) == 0 {
		runChat(service)
		return
	}

	switch args[0] {
	case "chat":
		runChat(service)
	case "persona":
		runPersona(personas, args[1:])
	case "model":
		runModel(models, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want chat, persona, or model)\n", args[0])
		os.Exit(2)
	}
}

func newStore(cfg AppConfig) (storex.Store, func()) {
	if cfg.StoreDSN != "" {
		dbCfg := configx.MustNew[storex.BunStoreConfig]("STORE")
		dbCfg.DSN = cfg.StoreDSN
		st, err := storex.NewBunStore(context.Background(), *dbCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("open database store")
		}
		return st, func() {
			if err := st.Close(); err != nil {
				log.Warn().Err(err).Msg("close database store")
			}
		}
	}

	fsCfg := configx.MustNew[storex.FileStoreConfig]("HARADA")
	return storex.NewFileStore(*fsCfg), func() {}
}

// runChat is a line-oriented stand-in for the push-to-talk loop: each
// entered line plays the role of a finished transcript.
func runChat(service *orchestratorx.Service) {
	conv := service.Conversation()
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Type a message and press enter. Ctrl-D to quit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		conv.Toggle()
		conv.SetTranscript(text)
		conv.Toggle()

		reply, err := service.HandleUtterance(ctx, text)
		if err != nil {
			log.Error().Err(err).Msg("model call failed")
			reply = errorReply
		}

		conv.SetState(conversationx.StateSpeaking)
		fmt.Println(reply)
		conv.Stop()
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}

func runPersona(personas *personax.Manager, args []string) {
	if len(args) == 0 || args[0] == "list" {
		for _, id := range personas.List() {
			marker := ""
			if id == personas.CurrentID() {
				marker = " *"
			}
			fmt.Println(id + marker)
		}
		return
	}

	p, err := personas.Switch(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("switch persona")
	}
	fmt.Printf("Switched to %s\n", p.Name)
}

func runModel(models *personax.Catalog, args []string) {
	if len(args) == 0 || args[0] == "list" {
		fmt.Println(models.Format())
		return
	}

	switch args[0] {
	case "reset":
		if err := models.Reset(); err != nil {
			log.Fatal().Err(err).Msg("reset model override")
		}
		fmt.Println("Model override cleared.")
	case "set":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: model set <model-id>")
			os.Exit(2)
		}
		info, err := models.Set(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("set model")
		}
		fmt.Printf("Model set to %s (%s)\n", info.ID, info.Name)
	default:
		fmt.Fprintf(os.Stderr, "unknown model command %q (want list, set, or reset)\n", args[0])
		os.Exit(2)
	}
}

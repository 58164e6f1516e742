package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"ragkit/internal/agent"
	"ragkit/internal/chunker"
	"ragkit/internal/config"
	"ragkit/internal/domain"
	"ragkit/internal/embedding"
	"ragkit/internal/faq"
	"ragkit/internal/knowledge"
	"ragkit/internal/llm"
	"ragkit/internal/summarizer"
	"ragkit/internal/tui"
	"ragkit/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath = flag.String("config", "", "Path to YAML config file (optional; uses ~/.config/ragkit/config.yaml if not provided)")
		faqPath = flag.String("faq", "", "Path to a question|answer FAQ file (overrides the config)")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()
	inputs := flag.Args()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	var cfg *config.AppConfig
	var err error
	if *cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(*cfgPath)
	}
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if *faqPath != "" {
		cfg.FAQ.File = *faqPath
	}
	if len(inputs) == 0 && cfg.FAQ.File == "" {
		fmt.Println("Usage: ragkit [--config=config.yaml] [--faq=faqs.txt] file1.txt [file2.txt ...]")
		os.Exit(1)
	}

	matcher := buildMatcher(cfg, logger)

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = embedding.NewTFIDF()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			logger.Fatal("openai embedder config missing")
		}
		emb, err = embedding.NewOpenAI(embedding.OpenAIConfig{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Fatal("openai embedder init failed", "err", err)
		}
	default:
		logger.Fatal("unknown embedder", "type", cfg.Embedder.Type)
	}

	var store domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory", "":
		store = vectorstore.NewMemory()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			logger.Fatal("qdrant config missing")
		}
		store = vectorstore.NewQdrant(vectorstore.QdrantConfig{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		logger.Fatal("unknown vector store", "type", cfg.VectorStore.Type)
	}

	sum := summarizer.NewFrequency(summarizer.DefaultStopWords())

	var gen domain.Generator
	switch cfg.LLM.Type {
	case "extractive", "":
		gen = llm.NewExtractive(sum, 3)
	case "openai":
		if cfg.LLM.OpenAI == nil {
			logger.Fatal("openai llm config missing")
		}
		gen, err = llm.NewOpenAI(llm.OpenAIConfig{
			BaseURL:     cfg.LLM.OpenAI.BaseURL,
			APIKeyEnv:   cfg.LLM.OpenAI.APIKeyEnv,
			Model:       cfg.LLM.OpenAI.Model,
			Temperature: cfg.LLM.OpenAI.Temperature,
			Timeout:     time.Duration(cfg.LLM.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Fatal("openai llm init failed", "err", err)
		}
	default:
		logger.Fatal("unknown llm", "type", cfg.LLM.Type)
	}

	summary := ""
	var kb domain.KnowledgeBase
	if len(inputs) > 0 {
		ch := chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
		base := knowledge.New(ch, emb, store, sum, domain.ChunkMethod(cfg.Chunker.Method), cfg.Summarizer.MaxSentences, logger)
		summary, err = base.IngestDocuments(inputs)
		if err != nil {
			logger.Fatal("ingest failed", "err", err)
		}
		kb = base
	} else {
		summary = "FAQ-only mode: no documents loaded."
	}

	a := agent.New(kb, gen,
		agent.WithFAQ(matcher, cfg.FAQ.Threshold),
		agent.WithTopK(cfg.Agent.TopK),
		agent.WithLogger(logger),
	)

	if _, err := tea.NewProgram(tui.New(a, summary)).Run(); err != nil {
		logger.Fatal("tui failed", "err", err)
	}
}

func buildMatcher(cfg *config.AppConfig, logger *log.Logger) *faq.Matcher {
	var opts []faq.Option
	if len(cfg.FAQ.StopWords) > 0 {
		opts = append(opts, faq.WithStopWords(cfg.FAQ.StopWords))
	}
	if len(cfg.FAQ.Synonyms) > 0 {
		table := cfg.FAQ.Synonyms
		if !cfg.FAQ.KeepAsymmetric {
			table = faq.Symmetrize(table)
		}
		opts = append(opts, faq.WithSynonyms(table))
	}
	matcher := faq.NewMatcher(opts...)
	if cfg.FAQ.File != "" {
		n, err := matcher.LoadFile(cfg.FAQ.File)
		if err != nil {
			// Recoverable: keep whatever loaded and carry on.
			logger.Warn("faq load incomplete", "file", cfg.FAQ.File, "loaded", n, "err", err)
		} else {
			logger.Info("faqs loaded", "file", cfg.FAQ.File, "entries", n)
		}
	}
	return matcher
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mailsense/internal/config"
	"mailsense/internal/embedder"
	"mailsense/internal/llm"
	"mailsense/internal/vectorstore"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:          "mailsense",
	Short:        "Retrieval-grounded email insight over a local LLM endpoint",
	Version:      versionString(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment always wins
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		// stdout carries command output (and MCP frames under serve),
		// so all logging goes to stderr
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "mailsense",
		})
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func versionString() string {
	return fmt.Sprintf("%s (built %s, sqlite %s/%s)",
		version, buildTime, vectorstore.BuildMode, vectorstore.DriverName)
}

// newLLMClient builds the generation client from the resolved config
func newLLMClient() *llm.Client {
	return llm.NewClient(cfg.LLMClientConfig())
}

// newIndexManager builds the vector store shared by ask and classify
func newIndexManager() (*vectorstore.Manager, error) {
	emb := embedder.NewHashedProvider(embedder.NewCache(0))
	return vectorstore.NewManager(cfg.IndexDir(), emb, logger)
}

// readInput returns the contents of path, or stdin when path is "-" or
// empty
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// printJSON writes v to stdout as indented JSON
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

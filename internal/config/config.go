package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Agent *AgentConfig
	Model *ModelConfig
	API   *APIConfig
}

type AgentConfig struct {
	Verbose   bool
	Prompt    string
	MaxRounds int
}

type ModelConfig struct {
	Model       string
	Temperature float32
}

type APIConfig struct {
	Timeout time.Duration
	Key     string
	URL     string
}

const (
	DefaultModel       = "moonshotai/Kimi-K2-Instruct"
	DefaultTemperature = 0.7
	DefaultMaxRounds   = 5
	DefaultPrompt      = "You are a helpful AI assistant with access to tools. Use tools when helpful to provide accurate, current information."
)

// FileSource implements cli.ValueSource for a map loaded from the
// config file. The file is JSON per the documented format, but it is
// parsed with the YAML decoder, which accepts JSON as a subset.
type FileSource struct {
	data map[string]any
	key  string
}

func (f *FileSource) Lookup() (string, bool) {
	if v, ok := f.data[f.key]; ok {
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

func (f *FileSource) String() string   { return "config" }
func (f *FileSource) GoString() string { return "config" }

func GetFlags() []cli.Flag {
	// Pre-parse config path
	configPath := getConfigPath()
	var configData map[string]any
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &configData); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid config file %s: %v (using defaults)\n", configPath, err)
			configData = nil
		}
	} else {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config file %s: %v (using defaults)\n", configPath, err)
	}

	// Helper to create sources: EnvVar > config file > Default
	src := func(key string, env ...string) cli.ValueSourceChain {
		chain := cli.ValueSourceChain{}
		for _, e := range env {
			chain.Chain = append(chain.Chain, cli.EnvVar(e))
		}
		if configData != nil {
			chain.Chain = append(chain.Chain, &FileSource{data: configData, key: key})
		}
		return chain
	}

	return []cli.Flag{
		// Config file
		&cli.StringFlag{Name: "config", Aliases: []string{"b"}, Value: "config.json", Usage: "use the named configuration file", Sources: cli.EnvVars("TOOLAGENT_CONFIG")},

		// Model Configuration
		&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Value: DefaultModel, Usage: "model to be used for responses", Sources: src("model", "TOOLAGENT_MODEL")},
		&cli.FloatFlag{Name: "temperature", Value: DefaultTemperature, Usage: "temperature for the completion", Sources: src("temperature", "TOOLAGENT_TEMPERATURE")},

		// Agent Configuration
		&cli.StringFlag{Name: "prompt", Value: DefaultPrompt, Usage: "initial system prompt", Sources: src("system_prompt", "TOOLAGENT_PROMPT")},
		&cli.IntFlag{Name: "maxrounds", Aliases: []string{"r"}, Value: DefaultMaxRounds, Usage: "maximum model rounds per chat before giving up", Sources: src("max_rounds", "TOOLAGENT_MAXROUNDS")},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"V"}, Usage: "enable verbose logging", Sources: src("verbose", "TOOLAGENT_VERBOSE")},

		// API Configuration
		&cli.StringFlag{Name: "apikey", Usage: "API key for the completion endpoint", Sources: src("api_key", "LLM_API_KEY")},
		&cli.StringFlag{Name: "apiurl", Usage: "base URL for OpenAI-compatible endpoints", Sources: src("api_url", "LLM_BASE_URL")},
		&cli.DurationFlag{Name: "apitimeout", Aliases: []string{"t"}, Value: time.Minute * 2, Usage: "timeout for each completion request", Sources: src("apitimeout", "TOOLAGENT_APITIMEOUT")},
	}
}

func getConfigPath() string {
	// Check env first
	if v := os.Getenv("TOOLAGENT_CONFIG"); v != "" {
		return v
	}
	// Check args
	for i, arg := range os.Args {
		if arg == "--config" || arg == "-b" {
			if i+1 < len(os.Args) {
				return os.Args[i+1]
			}
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return "config.json"
}

func (c *Configuration) PrintConfig() {
	fmt.Printf("model: %s\n", c.Model.Model)
	fmt.Printf("temperature: %f\n", c.Model.Temperature)
	fmt.Printf("maxrounds: %d\n", c.Agent.MaxRounds)
	fmt.Printf("verbose: %t\n", c.Agent.Verbose)
	fmt.Printf("apitimeout: %s\n", c.API.Timeout)
	fmt.Printf("apiurl: %s\n", c.API.URL)
	if len(c.API.Key) > 3 {
		fmt.Printf("apikey: %s\n", strings.Repeat("*", len(c.API.Key)-3)+c.API.Key[len(c.API.Key)-3:])
	} else {
		fmt.Printf("apikey: %s\n", c.API.Key)
	}
	fmt.Printf("prompt: %s\n", c.Agent.Prompt)
}

func NewConfiguration(c *cli.Command) *Configuration {
	if c.IsSet("config") {
		zap.S().Infow("Using config file", "path", c.String("config"))
	}

	config := &Configuration{
		Agent: &AgentConfig{
			Verbose:   c.Bool("verbose"),
			Prompt:    c.String("prompt"),
			MaxRounds: int(c.Int("maxrounds")),
		},
		Model: &ModelConfig{
			Model:       c.String("model"),
			Temperature: float32(c.Float("temperature")),
		},
		API: &APIConfig{
			Timeout: c.Duration("apitimeout"),
			Key:     c.String("apikey"),
			URL:     c.String("apiurl"),
		},
	}

	if config.Agent.MaxRounds < 1 {
		fmt.Fprintf(os.Stderr, "Warning: maxrounds must be at least 1, using default %d\n", DefaultMaxRounds)
		config.Agent.MaxRounds = DefaultMaxRounds
	}

	return config
}

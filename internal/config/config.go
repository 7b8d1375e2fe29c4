package config

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"pokertable-client/internal/util"
	"pokertable-client/pkg/game"
)

// Config provides configuration for the poker table client
type Config struct {
	loaded            bool
	BaseURL           string        `yaml:"baseUrl" envconfig:"base_url"`
	LocalName         string        `yaml:"localName" envconfig:"local_name"`
	PollInterval      time.Duration `yaml:"pollInterval" envconfig:"poll_interval"`
	RequestTimeout    time.Duration `yaml:"requestTimeout" envconfig:"request_timeout"`
	ContinuePolicy    string        `yaml:"continuePolicy" envconfig:"continue_policy"`
	AutoContinueDelay time.Duration `yaml:"autoContinueDelay" envconfig:"auto_continue_delay"`
	Presentation      string        `yaml:"presentation"`
	StatusAddr        string        `yaml:"statusAddr" envconfig:"status_addr"`
	Game              Game          `yaml:"game"`
	Log               struct {
		Level             string `yaml:"level"`
		File              string `yaml:"file"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// Game is the game the client asks the table service to start
type Game struct {
	GameType   game.GameType `yaml:"gameType" envconfig:"game_type"`
	DeckType   game.DeckType `yaml:"deckType" envconfig:"deck_type"`
	SmallBlind int           `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind   int           `yaml:"bigBlind" envconfig:"big_blind"`
	Bots       []game.Seat   `yaml:"bots" ignored:"true"`
}

// StartRequest returns the start request for the local player and the bots
// Bots without a name get a random one
func (c Config) StartRequest() game.StartRequest {
	players := make([]game.Seat, 0, len(c.Game.Bots)+1)
	players = append(players, game.Seat{Type: game.PlayerHuman, Name: c.LocalName})

	taken := map[string]bool{c.LocalName: true}
	for _, bot := range c.Game.Bots {
		taken[bot.Name] = true
	}

	for _, bot := range c.Game.Bots {
		if bot.Name == "" {
			bot.Name = util.GetUniqueRandomName(taken)
			taken[bot.Name] = true
		}

		players = append(players, bot)
	}

	return game.StartRequest{
		GameType:   c.Game.GameType,
		DeckType:   c.Game.DeckType,
		Players:    players,
		SmallBlind: c.Game.SmallBlind,
		BigBlind:   c.Game.BigBlind,
	}
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		BaseURL:           "http://localhost:8080",
		LocalName:         "You",
		PollInterval:      time.Millisecond * 1500,
		RequestTimeout:    time.Second * 10,
		ContinuePolicy:    "manual",
		AutoContinueDelay: time.Millisecond * 3000,
		Presentation:      "table",
		Game: Game{
			GameType:   game.Texas,
			DeckType:   game.StandardDeck,
			SmallBlind: 10,
			BigBlind:   20,
			Bots: []game.Seat{
				{Type: game.PlayerRandom, Name: "Bot1"},
				{Type: game.PlayerAI, Name: "Bot2"},
			},
		},
	}
	cfg.Log.Level = "info"

	return cfg
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults are used
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("PTC_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("ptc", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/shareit/pkg/logger"
	"github.com/Astemirdum/shareit/pkg/server"
)

type ShareitHTTPServer struct {
	Host string `envconfig:"SHAREIT_SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SHAREIT_SERVER_PORT" default:"9090"`
}

func (s ShareitHTTPServer) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type Config struct {
	Server            server.Config `yaml:"server" envconfig:"GATEWAY_HTTP"`
	ShareitHTTPServer ShareitHTTPServer
	Log               logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config := Config{
			Server: server.Config{Port: "8080"},
		}
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

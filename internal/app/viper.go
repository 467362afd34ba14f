package app

import (
	"fmt"
	"strings"

	"github.com/saradorri/fairplay/internal/config"
	"github.com/spf13/viper"
)

func (a *application) setupViper(path string) error {
	c, err := LoadConfig(path)
	if err != nil {
		return err
	}
	a.config = c

	fmt.Println("[x] Config loaded successfully")
	return nil
}

// LoadConfig reads config.<env>.yml from path, with FAIRPLAY_* environment
// variables overriding file values.
func LoadConfig(path string) (*config.Config, error) {
	env := config.GetEnvironment()

	v := viper.New()
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yml")
	v.AddConfigPath(path)

	v.AutomaticEnv()
	v.SetEnvPrefix("FAIRPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	return &c, nil
}

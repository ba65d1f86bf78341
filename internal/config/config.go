package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Input       string  `koanf:"input"`
	Output      string  `koanf:"output"`
	Timezone    string  `koanf:"timezone"`
	HolidayZone string  `koanf:"holidayzone"`
	Schedule    string  `koanf:"schedule"`
	Storage     Storage `koanf:"storage"`
	Jira        Jira    `koanf:"jira"`
	Jobcan      Jobcan  `koanf:"jobcan"`
	Google      Google  `koanf:"google"`
	ICS         ICS     `koanf:"ics"`
}

type Storage struct {
	Dir     string `koanf:"dir"`
	Account string `koanf:"account"`
}

type Jira struct {
	Strategy  string `koanf:"strategy"`
	DomainURL string `koanf:"domainurl"`
	Email     string `koanf:"email"`
	Token     string `koanf:"token"`
}

type Jobcan struct {
	Strategy string `koanf:"strategy"`
	Email    string `koanf:"email"`
	Password string `koanf:"password"`
}

type Google struct {
	CalendarID string `koanf:"calendarid"`
}

type ICS struct {
	URL string `koanf:"url"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Input:       "google",
		Output:      "BOTH",
		Timezone:    "Asia/Tokyo",
		HolidayZone: "JP",
		Storage: Storage{
			Dir:     "./data",
			Account: "default",
		},
		Jira: Jira{
			Strategy: "ticket",
		},
		Jobcan: Jobcan{
			Strategy: "daily",
		},
		Google: Google{
			CalendarID: "primary",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "TIMEBRIDGE_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "TIMEBRIDGE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

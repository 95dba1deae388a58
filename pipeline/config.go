package pipeline

import (
	"fmt"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/logging"
	"github.com/go-sif/vispipe/translator"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Config configures an Executive
type Config struct {
	StrictInputs      bool                             // iff true, inputs which cannot receive a request fail the update instead of being skipped
	Logger            *logrus.Logger                   // logger for the executive, defaulting to logging.GetLogger()
	OnEvent           vispipe.EventSink                // receives execution Events, if set
	DefaultTranslator func() vispipe.ExtentTranslator // creates the translator for structured outputs which do not set one
}

func ensureDefaultConfigValues(conf *Config) {
	if conf.Logger == nil {
		conf.Logger = logging.GetLogger()
	}
	if conf.OnEvent == nil {
		conf.OnEvent = func(vispipe.Event) {}
	}
	if conf.DefaultTranslator == nil {
		conf.DefaultTranslator = func() vispipe.ExtentTranslator {
			return translator.NewBlock()
		}
	}
}

// ConfigFromJSON reads a Config from a JSON document of the form
//   {"strictInputs": true, "logLevel": "debug", "splitMode": "block"}
func ConfigFromJSON(doc []byte) (*Config, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("executive configuration is not valid JSON")
	}
	parsed := gjson.ParseBytes(doc)
	conf := &Config{
		StrictInputs: parsed.Get("strictInputs").Bool(),
	}
	if lvl := parsed.Get("logLevel"); lvl.Exists() {
		conf.Logger = logging.GetLoggerAtLevel(logging.LogLevelFromString(lvl.String()))
	}
	if sm := parsed.Get("splitMode"); sm.Exists() {
		mode, ok := translator.ParseSplitMode(sm.String())
		if !ok {
			return nil, fmt.Errorf("unknown split mode %q", sm.String())
		}
		conf.DefaultTranslator = func() vispipe.ExtentTranslator {
			return &translator.Block{Mode: mode}
		}
	}
	return conf, nil
}

package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// LogLevels maps dotted logger names (e.g. "core.registrar", "crontab") to
// level names.
type LogLevels map[string]string

// LogLevelsDecodeHook stops mapstructure from decoding into LogLevels.
// viper.AllSettings splits dotted keys into nested maps, which do not fit a
// flat map[string]string; Load fills the field from viper.Get instead.
func LogLevelsDecodeHook() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(LogLevels{}) {
			return data, nil
		}
		return make(LogLevels), nil
	}
}

// flattenLevels joins nested maps back into dotted keys. A value set on a
// parent table and its children at once is kept for both.
func flattenLevels(prefix string, raw interface{}) LogLevels {
	out := make(LogLevels)
	m, ok := raw.(map[string]interface{})
	if !ok {
		return out
	}
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			for ck, cv := range flattenLevels(key, val) {
				out[ck] = cv
			}
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out
}

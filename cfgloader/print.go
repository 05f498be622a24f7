package cfgloader

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danyloborovskyi/caption-studio-back-sub003/logger"
)

func printConfig(config any) {
	log := logger.Named("cfgloader")

	out, err := yaml.Marshal(maskStruct(config))
	if err != nil {
		log.Warnf("failed to marshal config: %v", err)
		return
	}
	log.Info(fmt.Sprintf("Loaded config:\n%s", out))
}

// maskStruct returns a copy of cfg with every `mask:"true"` field hidden.
func maskStruct(cfg any) any {
	val := reflect.ValueOf(cfg)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	return maskValue(val).Interface()
}

func maskValue(val reflect.Value) reflect.Value {
	if !val.IsValid() {
		return val
	}

	switch val.Kind() { //nolint:exhaustive // only kinds that can hold masked fields
	case reflect.Ptr:
		if val.IsNil() {
			return val
		}
		ptr := reflect.New(val.Elem().Type())
		ptr.Elem().Set(maskValue(val.Elem()))
		return ptr

	case reflect.Struct:
		masked := reflect.New(val.Type()).Elem()
		for i := range val.NumField() {
			field := val.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			if field.Tag.Get("mask") == "true" {
				masked.Field(i).Set(maskField(val.Field(i)))
			} else {
				masked.Field(i).Set(maskValue(val.Field(i)))
			}
		}
		return masked

	default:
		return val
	}
}

func maskField(val reflect.Value) reflect.Value {
	if val.Kind() == reflect.String {
		if val.Len() == 0 {
			return val
		}
		return reflect.ValueOf(strings.Repeat("*", val.Len())).Convert(val.Type())
	}
	return reflect.Zero(val.Type())
}

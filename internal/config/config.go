// Package config handles run-level configuration
package config

import (
	"os"
	"strconv"
)

// Config holds run-level options. Step entries may override the matching
// defaults (TplThresh, OCRConf, OCRLang, Template) per step.
type Config struct {
	Mode         string  // fallback single-step mode: "text" or "template"
	Target       string  // fallback keyword(s), "|"-separated
	Template     string  // fallback template image path
	Steps        string  // inline JSON step list
	StepsFile    string  // YAML/JSON step list file
	MinInterval  float64 // seconds
	MaxInterval  float64 // seconds
	TplThresh    float64 // default template similarity floor
	OCRConf      int     // default recognition confidence floor
	OCRLang      string  // default recognition language tag
	Platform     string  // auto / darwin / linux / windows / generic
	DisplayScale float64 // 0 = detect
	Padding      int     // click padding inside matched rects, pixels
	StopKey      string  // emergency stop key, "" disables
	Verbose      bool
}

func Load() *Config {
	return &Config{
		Mode:         getEnv("SCREENTAP_MODE", "text"),
		Target:       getEnv("SCREENTAP_TARGET", ""),
		Template:     getEnv("SCREENTAP_TEMPLATE", ""),
		MinInterval:  getEnvFloat("SCREENTAP_MIN_INTERVAL", 0.8),
		MaxInterval:  getEnvFloat("SCREENTAP_MAX_INTERVAL", 1.6),
		TplThresh:    getEnvFloat("SCREENTAP_TPL_THRESH", 0.86),
		OCRConf:      getEnvInt("SCREENTAP_OCR_CONF", 60),
		OCRLang:      getEnv("SCREENTAP_OCR_LANG", "chi_sim+eng"),
		Platform:     getEnv("SCREENTAP_PLATFORM", "auto"),
		DisplayScale: getEnvFloat("SCREENTAP_DISPLAY_SCALE", 0),
		Padding:      getEnvInt("SCREENTAP_PADDING", 2),
		StopKey:      getEnv("SCREENTAP_STOP_KEY", "esc"),
		Verbose:      getEnvBool("SCREENTAP_VERBOSE", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

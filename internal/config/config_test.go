package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"SCREENTAP_MODE", "SCREENTAP_TARGET", "SCREENTAP_TEMPLATE",
		"SCREENTAP_MIN_INTERVAL", "SCREENTAP_MAX_INTERVAL",
		"SCREENTAP_TPL_THRESH", "SCREENTAP_OCR_CONF", "SCREENTAP_OCR_LANG",
		"SCREENTAP_PLATFORM", "SCREENTAP_DISPLAY_SCALE", "SCREENTAP_PADDING",
		"SCREENTAP_STOP_KEY", "SCREENTAP_VERBOSE",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg := Load()

	if cfg.Mode != "text" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "text")
	}
	if cfg.MinInterval != 0.8 {
		t.Errorf("MinInterval = %f, want %f", cfg.MinInterval, 0.8)
	}
	if cfg.MaxInterval != 1.6 {
		t.Errorf("MaxInterval = %f, want %f", cfg.MaxInterval, 1.6)
	}
	if cfg.TplThresh != 0.86 {
		t.Errorf("TplThresh = %f, want %f", cfg.TplThresh, 0.86)
	}
	if cfg.OCRConf != 60 {
		t.Errorf("OCRConf = %d, want %d", cfg.OCRConf, 60)
	}
	if cfg.OCRLang != "chi_sim+eng" {
		t.Errorf("OCRLang = %q, want %q", cfg.OCRLang, "chi_sim+eng")
	}
	if cfg.Platform != "auto" {
		t.Errorf("Platform = %q, want %q", cfg.Platform, "auto")
	}
	if cfg.DisplayScale != 0 {
		t.Errorf("DisplayScale = %f, want 0", cfg.DisplayScale)
	}
	if cfg.Padding != 2 {
		t.Errorf("Padding = %d, want 2", cfg.Padding)
	}
	if cfg.StopKey != "esc" {
		t.Errorf("StopKey = %q, want %q", cfg.StopKey, "esc")
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCREENTAP_MODE", "template")
	t.Setenv("SCREENTAP_TPL_THRESH", "0.92")
	t.Setenv("SCREENTAP_OCR_CONF", "75")
	t.Setenv("SCREENTAP_STOP_KEY", "")
	t.Setenv("SCREENTAP_VERBOSE", "1")

	cfg := Load()

	if cfg.Mode != "template" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "template")
	}
	if cfg.TplThresh != 0.92 {
		t.Errorf("TplThresh = %f, want %f", cfg.TplThresh, 0.92)
	}
	if cfg.OCRConf != 75 {
		t.Errorf("OCRConf = %d, want %d", cfg.OCRConf, 75)
	}
	// Empty env values fall back to defaults
	if cfg.StopKey != "esc" {
		t.Errorf("StopKey = %q, want %q", cfg.StopKey, "esc")
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
}

func TestGetEnvInvalidNumbers(t *testing.T) {
	t.Setenv("SCREENTAP_OCR_CONF", "not-a-number")
	t.Setenv("SCREENTAP_TPL_THRESH", "abc")

	cfg := Load()

	if cfg.OCRConf != 60 {
		t.Errorf("OCRConf = %d, want default 60 on parse failure", cfg.OCRConf)
	}
	if cfg.TplThresh != 0.86 {
		t.Errorf("TplThresh = %f, want default 0.86 on parse failure", cfg.TplThresh)
	}
}

package config

import (
	"testing"
)

func TestParseForwardFlag(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want bool
	}{
		{"unset defaults on", nil, true},
		{"bool true", true, true},
		{"bool false", false, false},
		{"one", "1", true},
		{"true", "true", true},
		{"yes upper", "YES", true},
		{"on", "on", true},
		{"zero", "0", false},
		{"no", "no", false},
		{"empty string", "", false},
		{"garbage", "maybe", false},
		{"other type defaults on", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseForwardFlag(tt.in); got != tt.want {
				t.Errorf("ParseForwardFlag(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAppEnv(t *testing.T) {
	if env, err := ParseAppEnv("Production"); err != nil || env != AppEnvProduction {
		t.Errorf("expected case-insensitive parse, got %v (%v)", env, err)
	}
	if _, err := ParseAppEnv("staging"); err == nil {
		t.Error("expected an error for an unknown env")
	}
}

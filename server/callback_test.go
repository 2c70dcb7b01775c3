package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHost(t *testing.T) {
	cases := map[string]string{
		"::1":                "localhost",
		"0:0:0:0:0:0:0:1":    "localhost",
		"127.0.0.1":          "127.0.0.1",
		"192.168.1.10":       "192.168.1.10",
		"fe80::1":            "fe80::1",
		"editor.example.org": "editor.example.org",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHost(in), in)
	}
}

func TestCallbackURL(t *testing.T) {
	cfg := DefaultConfig().Callback

	assert.Equal(t,
		"http://localhost:8080/3MEditor/Services?id=42&output=text/xml&method=export",
		CallbackURL(cfg, "::1", 8080, "42"))
	assert.Equal(t,
		"http://127.0.0.1:80/3MEditor/Services?id=a+b%26c&output=text/xml&method=export",
		CallbackURL(cfg, "127.0.0.1", 80, "a b&c"))
	assert.Equal(t,
		"http://[fe80::1]:8080/3MEditor/Services?id=1&output=text/xml&method=export",
		CallbackURL(cfg, "fe80::1", 8080, "1"))

	cfg.Host = "editor:9000"
	cfg.Scheme = "https"
	assert.Equal(t,
		"https://editor:9000/3MEditor/Services?id=1&output=text/xml&method=export",
		CallbackURL(cfg, "::1", 8080, "1"))
}

func TestParseUUIDSize(t *testing.T) {
	assert.Equal(t, 2, ParseUUIDSize("", false, 2))
	assert.Equal(t, 2, ParseUUIDSize("abc", true, 2))
	assert.Equal(t, 2, ParseUUIDSize("", true, 2))
	assert.Equal(t, 5, ParseUUIDSize("5", true, 2))
	assert.Equal(t, -1, ParseUUIDSize("-1", true, 2))
}

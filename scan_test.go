// FILE: conftree/scan_test.go
package conftree

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanStruct tests decoding a section into a tagged struct
func TestScanStruct(t *testing.T) {
	content := `server {
	host localhost
	port 8080
	debug true
	timeout 90s
	ratio 0.75
}
`
	root, err := parseReader(strings.NewReader(content), "f")
	require.NoError(t, err)

	type serverConfig struct {
		Host    string        `conf:"host"`
		Port    int           `conf:"port"`
		Debug   bool          `conf:"debug"`
		Timeout time.Duration `conf:"timeout"`
		Ratio   float64       `conf:"ratio"`
	}

	sec, err := root.Section("server")
	require.NoError(t, err)

	var sc serverConfig
	require.NoError(t, sec.Scan(&sc))
	assert.Equal(t, "localhost", sc.Host)
	assert.Equal(t, 8080, sc.Port)
	assert.True(t, sc.Debug)
	assert.Equal(t, 90*time.Second, sc.Timeout)
	assert.Equal(t, 0.75, sc.Ratio)
}

// TestScanNested tests subsections decoding into nested structs
func TestScanNested(t *testing.T) {
	content := `name demo
server {
	port 9090
	net {
		proto tcp
	}
}
`
	root, err := parseReader(strings.NewReader(content), "f")
	require.NoError(t, err)

	type netConfig struct {
		Proto string `conf:"proto"`
	}
	type serverConfig struct {
		Port int       `conf:"port"`
		Net  netConfig `conf:"net"`
	}
	type appConfig struct {
		Name   string       `conf:"name"`
		Server serverConfig `conf:"server"`
	}

	var ac appConfig
	require.NoError(t, root.Scan(&ac))
	assert.Equal(t, "demo", ac.Name)
	assert.Equal(t, 9090, ac.Server.Port)
	assert.Equal(t, "tcp", ac.Server.Net.Proto)
}

// TestScanLists tests slice fields fed from bracketed and comma forms
func TestScanLists(t *testing.T) {
	root := newSection(nil, "")
	root.storeTagValue("colors", "(red, green, blue)")
	root.storeTagValue("ports", "(80, 443)")
	root.storeTagValue("hosts", "alpha,beta")

	type listConfig struct {
		Colors []string `conf:"colors"`
		Ports  []int    `conf:"ports"`
		Hosts  []string `conf:"hosts"`
	}

	var lc listConfig
	require.NoError(t, root.Scan(&lc))
	assert.Equal(t, []string{"red", "green", "blue"}, lc.Colors)
	assert.Equal(t, []int{80, 443}, lc.Ports)
	assert.Equal(t, []string{"alpha", "beta"}, lc.Hosts)
}

// TestScanFieldNameFallback tests matching without conf tags
func TestScanFieldNameFallback(t *testing.T) {
	root := newSection(nil, "")
	root.storeTagValue("host", "example.org")
	root.storeTagValue("port", "7070")

	var target struct {
		Host string
		Port int
	}
	require.NoError(t, root.Scan(&target))
	assert.Equal(t, "example.org", target.Host)
	assert.Equal(t, 7070, target.Port)
}

// TestScanIntoMap tests decoding into a plain map
func TestScanIntoMap(t *testing.T) {
	content := `top value
sub {
	inner 1
}
`
	root, err := parseReader(strings.NewReader(content), "f")
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, root.Scan(&m))
	assert.Equal(t, "value", m["top"])

	sub, ok := m["sub"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1", sub["inner"])
}

// TestScanTargetValidation tests rejection of unusable targets
func TestScanTargetValidation(t *testing.T) {
	root := newSection(nil, "")

	var target struct{}
	assert.Error(t, root.Scan(target))

	var nilPtr *struct{}
	assert.Error(t, root.Scan(nilPtr))
}

// TestConfigScan tests scanning through the store with a base path
func TestConfigScan(t *testing.T) {
	c := New()
	c.StoreString("server/host", "localhost")
	c.StoreInt("server/port", 8080)

	t.Run("BasePath", func(t *testing.T) {
		var target struct {
			Host string `conf:"host"`
			Port int    `conf:"port"`
		}
		require.NoError(t, c.Scan("server", &target))
		assert.Equal(t, "localhost", target.Host)
		assert.Equal(t, 8080, target.Port)
	})

	t.Run("EmptyPathScansCurrent", func(t *testing.T) {
		require.NoError(t, c.SetCurrent("server"))
		defer func() { require.NoError(t, c.SetCurrent("/")) }()

		var target struct {
			Host string `conf:"host"`
		}
		require.NoError(t, c.Scan("", &target))
		assert.Equal(t, "localhost", target.Host)
	})

	t.Run("MissingSection", func(t *testing.T) {
		var target struct{}
		err := c.Scan("nowhere", &target)
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})
}

// TestScanNameCollision tests a tag and subsection sharing a name
func TestScanNameCollision(t *testing.T) {
	root := newSection(nil, "")
	root.storeTagValue("x", "tag-value")
	root.AddSubsection("x").storeTagValue("inner", "1")

	var m map[string]any
	require.NoError(t, root.Scan(&m))
	assert.Equal(t, "tag-value", m["x"])
}

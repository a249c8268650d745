package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/syslogng-lsp/internal/testutil"
)

func TestNewSettings(t *testing.T) {
	testCases := []struct {
		name    string
		in      Settings
		wantErr string
		want    Settings
	}{
		{
			name: "defaults are valid",
			in:   DefaultSettings(),
			want: DefaultSettings(),
		},
		{
			name: "level and format are normalised",
			in:   Settings{LogLevel: " DEBUG ", LogFormat: "JSON"},
			want: Settings{LogLevel: "debug", LogFormat: "json"},
		},
		{
			name:    "unknown level",
			in:      Settings{LogLevel: "trace", LogFormat: "text"},
			wantErr: `invalid log level "trace"`,
		},
		{
			name:    "unknown format",
			in:      Settings{LogLevel: "info", LogFormat: "xml"},
			wantErr: `invalid log format "xml"`,
		},
		{
			name:    "negative debounce",
			in:      Settings{LogLevel: "info", LogFormat: "text", WatchDebounce: -time.Second},
			wantErr: "invalid watch debounce",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewSettings(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := "log_level: info\ninclude_paths:\n  - /usr/share/syslog-ng/include\nwatch_debounce: 1s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{
		LogLevel:      "info",
		LogFormat:     "text",
		IncludePaths:  []string{"/usr/share/syslog-ng/include"},
		WatchDebounce: time.Second,
	}, s)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(dir, "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("log_level: [unclosed\n"), 0o644))
		_, err := LoadSettings(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse settings")
	})
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name      string
		settings  Settings
		logDebug  bool
		wantJSON  bool
		wantEmpty bool
	}{
		{name: "debug text", settings: Settings{LogLevel: "debug", LogFormat: "text"}, logDebug: true},
		{name: "info json", settings: Settings{LogLevel: "info", LogFormat: "json"}, wantJSON: true},
		{name: "error hides info", settings: Settings{LogLevel: "error", LogFormat: "text"}, wantEmpty: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf testutil.SafeBuffer
			logger := newLogger(&tc.settings, &buf)
			if tc.logDebug {
				logger.Debug("probe")
			} else {
				logger.Info("probe")
			}

			out := buf.String()
			if tc.wantEmpty {
				assert.Empty(t, out)
				return
			}
			assert.Contains(t, out, "probe")
			if tc.wantJSON {
				assert.Contains(t, out, `"msg":"probe"`)
			} else {
				assert.Contains(t, out, "msg=probe")
			}
		})
	}
}

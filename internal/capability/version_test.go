package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionRange(t *testing.T) {
	tests := []struct {
		key    string
		in     []string
		out    []string
		String string
	}{
		{"", []string{"0.0.1", "2.4.2", "99.0.0", "garbage"}, nil, "all versions"},
		{"2.4.2", []string{"2.4.2"}, []string{"2.4.1", "2.4.3"}, "2.4.2"},
		{"2.4.2 and below", []string{"1.0.0", "2.4.2", "2.4", "2.4.1.post1", "2.4.1rc1", "2.4.2.post3", "garbage"},
			[]string{"2.4.3", "2.5.0", "2.4.3rc1", "2.5.0.dev20240101"}, "2.4.2 and below"},
		{"2.4.2 and above", []string{"2.4.2", "3.0.0", "2.4.2+cu118"}, []string{"2.4.1", "2.4.2rc1", "2.4.2.dev0"}, "2.4.2 and above"},
		{"2.0.0 to 2.4.2", []string{"2.0.0", "2.3.9", "2.4.2"}, []string{"1.9.9", "2.5.0"}, "2.0.0 to 2.4.2"},
	}
	for _, tt := range tests {
		t.Run(tt.String, func(t *testing.T) {
			r, err := ParseVersionRange(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.String, r.String())
			for _, v := range tt.in {
				assert.True(t, r.Contains(v), "%s should contain %s", tt.key, v)
			}
			for _, v := range tt.out {
				assert.False(t, r.Contains(v), "%s should not contain %s", tt.key, v)
			}
		})
	}
}

func TestParseVersionRangeInvalid(t *testing.T) {
	for _, key := range []string{"x.y and below", "2.4.2 to 2.0.0", "latest", "1.0 to nope"} {
		_, err := ParseVersionRange(key)
		assert.Error(t, err, key)
	}
}

func TestCanonicalPythonVersions(t *testing.T) {
	tests := map[string]string{
		"2.4.1":             "v2.4.1",
		"v2.4":              "v2.4.0",
		"2.4.1rc1":          "v2.4.1-rc.1",
		"2.4.1-RC.01":       "v2.4.1-rc.1",
		"2.4.1a2":           "v2.4.1-a.2",
		"2.4.1beta":         "v2.4.1-b.0",
		"2.5.0.dev20240101": "v2.5.0-dev.20240101",
		"2.5.0rc1.dev2":     "v2.5.0-rc.1.dev.2",
		"2.4.1.post1":       "v2.4.1",
		"2.4.1+cu118":       "v2.4.1",
		"2.4.1.post2+cpu":   "v2.4.1",
	}
	for in, want := range tests {
		got, err := canonical(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "nightly", "2.4.1.2", "2.4.1foo", "rc1"} {
		_, err := canonical(in)
		assert.Error(t, err, in)
		assert.Error(t, ValidateVersion(in), in)
	}
	assert.NoError(t, ValidateVersion("2.4.1.post1"))
}

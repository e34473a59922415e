package maps

import (
	"net/url"
	"testing"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	l := Build("Офіс", extract.Car)
	assert.Equal(t, "maps://?daddr=%D0%9E%D1%84%D1%96%D1%81&dirflg=d", l.Native)

	u, err := url.Parse(l.Web)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", u.Host)
	assert.Equal(t, "Офіс", u.Query().Get("destination"))
	assert.Equal(t, "driving", u.Query().Get("travelmode"))
}

func TestBuildTransportModes(t *testing.T) {
	cases := map[extract.Transport][2]string{
		extract.Transit:        {"r", "transit"},
		extract.Walking:        {"w", "walking"},
		extract.Transport("x"): {"d", "driving"},
	}
	for tr, want := range cases {
		l := Build("Вулиця Хрещатик 22", tr)
		native, err := url.Parse(l.Native)
		require.NoError(t, err)
		assert.Equal(t, want[0], native.Query().Get("dirflg"))
		assert.Equal(t, "Вулиця Хрещатик 22", native.Query().Get("daddr"))

		web, err := url.Parse(l.Web)
		require.NoError(t, err)
		assert.Equal(t, want[1], web.Query().Get("travelmode"))
	}
}

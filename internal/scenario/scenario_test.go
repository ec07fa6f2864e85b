package scenario

import (
	"path/filepath"
	"testing"

	"cagedworld/internal/config"
	"cagedworld/internal/crossing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTestdata(t *testing.T) {
	tests := []struct {
		file     string
		outcomes []crossing.Outcome
	}{
		{"walk_through.yaml", []crossing.Outcome{crossing.Entered, crossing.Crossed}},
		{"graze.yaml", []crossing.Outcome{crossing.Entered, crossing.Grazed}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			sc, err := Load(filepath.Join("testdata", tt.file))
			require.NoError(t, err)

			res, err := Run(sc, config.Default(), nil)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.outcomes, res.Outcomes); diff != "" {
				t.Errorf("outcomes (-want +got):\n%s", diff)
			}
			assert.NoError(t, res.Check(sc.Expect))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	sc, err := Parse([]byte(`
name: there and back again
path:
  - [0, 1.6, -2]
  - [0, 1.6, 2]
  - [0, 1.6, -2]
`))
	require.NoError(t, err)
	assert.Equal(t, defaultSteps, sc.StepsPerSegment)

	res, err := Run(sc, config.Default(), nil)
	require.NoError(t, err)
	want := []crossing.Outcome{crossing.Entered, crossing.Crossed, crossing.Entered, crossing.Returned}
	assert.Equal(t, want, res.Outcomes)
	assert.False(t, res.Inside)
	assert.False(t, res.LensVisible)
	assert.False(t, res.BackPortalVisible)
	assert.Equal(t, 2*defaultSteps, res.Steps)
	assert.Equal(t, "there and back again", res.Name)
	assert.True(t, res.PortalRemoved, "run ends the session")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("path: [[0, 0, 0]]"))
	assert.ErrorContains(t, err, "at least two points")

	_, err = Parse([]byte("path: {"))
	assert.ErrorContains(t, err, "parse scenario")

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.ErrorContains(t, err, "read scenario")
}

func TestRunRejectsBadConfig(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "walk_through.yaml"))
	require.NoError(t, err)
	cfg := config.Default()
	cfg.PortalTag = ""
	_, err = Run(sc, cfg, nil)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	yes, no := true, false
	r := Result{Inside: true, LensVisible: true}
	assert.NoError(t, r.Check(Expect{}))
	assert.NoError(t, r.Check(Expect{Inside: &yes, BackPortalVisible: &no}))

	err := r.Check(Expect{Inside: &no, LensVisible: &no})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inside: want false, got true")
	assert.Contains(t, err.Error(), "lens_visible: want false, got true")
}

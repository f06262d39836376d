package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-constraint/internal/layout"
	"github.com/grindlemire/go-constraint/internal/solver"
)

func TestLoad(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "toolbar.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 40, f.Width)
	assert.Equal(t, 3, f.Height)
	require.Len(t, f.Widgets, 2)
	require.Len(t, f.Guides, 1)
	require.Len(t, f.Constraints, 4)

	gap := f.Guides[0]
	require.NotNil(t, gap.Min.Width)
	assert.Equal(t, 2, *gap.Min.Width)
	assert.Nil(t, gap.Min.Height)
	assert.Equal(t, "strong", f.Constraints[3].Strength)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	big := filepath.Join(t.TempDir(), "big.yaml")
	require.NoError(t, os.WriteFile(big, make([]byte, MaxFileSize+1), 0o600))
	_, err = Load(big)
	assert.ErrorContains(t, err, "too large")
}

func TestParse_Invalid(t *testing.T) {
	type tc struct {
		yaml    string
		wantErr error
		msg     string
	}

	tests := map[string]tc{
		"unknown key": {
			yaml: "widgets:\n  - name: a\n    colour: red\n",
			msg:  "unmarshaling YAML",
		},
		"missing name": {
			yaml:    "widgets:\n  - min: {width: 1}\n",
			wantErr: ErrInvalid,
		},
		"bad identifier": {
			yaml:    "guides:\n  - name: 1st\n",
			wantErr: ErrInvalid,
		},
		"negative size": {
			yaml:    "guides:\n  - name: g\n    min: {width: -1}\n",
			wantErr: ErrInvalid,
		},
		"bad direction": {
			yaml:    "direction: up\n",
			wantErr: ErrInvalid,
		},
		"bad relation": {
			yaml:    "guides: [{name: g}]\nconstraints:\n  - {target: g.width, relation: \"!=\", constant: 1}\n",
			wantErr: ErrInvalid,
		},
		"bad strength": {
			yaml:    "guides: [{name: g}]\nconstraints:\n  - {target: g.width, relation: \">=\", constant: 1, strength: mighty}\n",
			wantErr: ErrInvalid,
		},
		"bad attribute": {
			yaml:    "guides: [{name: g}]\nconstraints:\n  - {target: g.baseline, relation: \"==\", constant: 1}\n",
			wantErr: ErrInvalid,
		},
		"no attribute": {
			yaml:    "guides: [{name: g}]\nconstraints:\n  - {target: g.none, relation: \"==\", constant: 1}\n",
			wantErr: ErrInvalid,
		},
		"duplicate name": {
			yaml:    "widgets: [{name: a}]\nguides: [{name: a}]\n",
			wantErr: ErrDuplicateName,
		},
		"reserved name": {
			yaml:    "guides: [{name: super}]\n",
			wantErr: ErrDuplicateName,
		},
		"unknown target": {
			yaml:    "constraints:\n  - {target: ghost.left, relation: \"==\", constant: 0}\n",
			wantErr: ErrUnknownReference,
		},
		"unknown source": {
			yaml:    "guides: [{name: g}]\nconstraints:\n  - {target: g.left, relation: \"==\", source: ghost.right}\n",
			wantErr: ErrUnknownReference,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Widgets)
}

func TestBuild(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "toolbar.yaml"))
	require.NoError(t, err)

	s := solver.New()
	b, err := Build(f, s)
	require.NoError(t, err)
	assert.Same(t, s, b.Layout.Solver())

	gap := b.Guides["gap"]
	require.NotNil(t, gap)
	w, h := gap.MinSize()
	assert.Equal(t, [2]int{2, 0}, [2]int{w, h})
	w, h = gap.MaxSize()
	assert.Equal(t, [2]int{6, layout.Unbounded}, [2]int{w, h})

	b.Layout.Allocate(f.Width, f.Height)

	assert.Equal(t, layout.NewRect(0, 0, 12, 1), b.Widgets["label"].Allocation())
	assert.Equal(t, layout.NewRect(12, 0, 4, 0), gap.Allocation())
	assert.Equal(t, layout.NewRect(16, 1, 8, 1), b.Widgets["button"].Allocation())
}

func TestBuild_Target(t *testing.T) {
	f, err := Parse([]byte("widgets: [{name: a}]\nguides: [{name: g}]\n"))
	require.NoError(t, err)
	b, err := Build(f, nil)
	require.NoError(t, err)

	target, ok := b.Target(SuperName)
	assert.True(t, ok)
	assert.Nil(t, target)

	target, ok = b.Target("a")
	assert.True(t, ok)
	assert.Equal(t, b.Widgets["a"], target)

	target, ok = b.Target("g")
	assert.True(t, ok)
	assert.Equal(t, b.Guides["g"], target)

	_, ok = b.Target("ghost")
	assert.False(t, ok)
}

func TestBuild_UnsatisfiableConstraint(t *testing.T) {
	f, err := Parse([]byte(`
guides: [{name: g}]
constraints:
  - {target: g.width, relation: "==", constant: 10}
  - {target: g.width, relation: "==", constant: 20}
`))
	require.NoError(t, err)

	_, err = Build(f, nil)
	assert.ErrorIs(t, err, solver.ErrUnsatisfiableConstraint)
	assert.ErrorContains(t, err, "constraint 1")
}

func TestBuild_RTL(t *testing.T) {
	f, err := Parse([]byte(`
direction: rtl
widgets: [{name: a, nat: {width: 10, height: 1}}]
constraints:
  - {target: a.start, relation: "==", source: super.start}
`))
	require.NoError(t, err)
	b, err := Build(f, nil)
	require.NoError(t, err)

	b.Layout.Allocate(30, 1)
	assert.Equal(t, layout.NewRect(20, 0, 10, 1), b.Widgets["a"].Allocation())
}

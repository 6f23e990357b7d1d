package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/parts"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

func TestBuildDeterministic(t *testing.T) {
	a := Build()
	b := Build()

	require.Equal(t, len(a.Parts), len(b.Parts))
	for i := range a.Parts {
		assert.Equal(t, a.Parts[i].ID, b.Parts[i].ID)
		assert.Equal(t, a.Parts[i].Kind, b.Parts[i].Kind)
		assert.Equal(t, a.Parts[i].WorldMatrix(), b.Parts[i].WorldMatrix())
		assert.Equal(t, a.Parts[i].Mesh.Bounds, b.Parts[i].Mesh.Bounds)
	}
	assert.Equal(t, a.Layout, b.Layout)
	assert.NotSame(t, a.Parts[0], b.Parts[0])
}

func TestEnginesRestOnGround(t *testing.T) {
	a := Build()

	var minY float32 = 1e9
	for _, p := range a.Group("stage1_engines") {
		if y := p.WorldBounds().Min.Y; y < minY {
			minY = y
		}
	}
	assert.InDelta(t, 0, minY, 1e-3)
	assert.InDelta(t, 6.5, a.Layout.Base, 1e-5)
}

func TestEngineClusters(t *testing.T) {
	a := Build()

	tests := []struct {
		id      string
		engines int
	}{
		{"stage1_engines", 5},
		{"stage2_engines", 5},
		{"stage3_engine", 1},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			// chamber plus nozzle per engine
			assert.Len(t, a.Group(tt.id), tt.engines*2)
		})
	}

	ic, ok := a.Layout.StageSection(StageIC)
	require.True(t, ok)
	require.Len(t, ic.EngineMounts, 5)
	for _, m := range ic.EngineMounts[:4] {
		assert.InDelta(t, 3.3, math.Vec3{X: m.X, Z: m.Z}.Length(), 1e-4)
		assert.InDelta(t, ic.Base, m.Y, 1e-5)
	}
	assert.Equal(t, math.Vec3{Y: ic.Base}, ic.EngineMounts[4])
}

func TestRadialSymmetry(t *testing.T) {
	a := Build()

	copvs := a.Group("s_ic_copv")
	require.Len(t, copvs, 4)

	first := copvs[0].WorldMatrix().TransformPoint(math.Vec3{})
	for _, p := range copvs {
		c := p.WorldMatrix().TransformPoint(math.Vec3{})
		assert.InDelta(t, first.Y, c.Y, 1e-4)
		assert.InDelta(t, 5.2, math.Vec3{X: c.X, Z: c.Z}.Length(), 1e-4)
	}

	// adjacent instances are a quarter turn apart
	p0 := copvs[0].Node.Position
	p1 := copvs[1].Node.Position
	a0 := math.Vec3{X: p0.X, Z: p0.Z}
	a1 := math.Vec3{X: p1.X, Z: p1.Z}
	assert.InDelta(t, 0, a0.Dot(a1), 1e-3)
}

func TestStackingInvariant(t *testing.T) {
	const grow = 5

	plan := DefaultPlan()
	base := BuildPlan(plan).Layout

	plan = DefaultPlan()
	plan[2].Height += grow // s_ii
	grown := BuildPlan(plan).Layout

	require.Equal(t, len(base.Sections), len(grown.Sections))
	for i := range base.Sections {
		want := base.Sections[i].Base
		if i > 2 {
			want += grow
		}
		assert.InDelta(t, want, grown.Sections[i].Base, 1e-4, base.Sections[i].Name)
	}
	assert.InDelta(t, base.Height+grow, grown.Height, 1e-4)
}

func TestSectionsAreContiguous(t *testing.T) {
	l := Build().Layout

	y := l.Base
	for _, s := range l.Sections {
		assert.InDelta(t, y, s.Base, 1e-4, s.Name)
		y = s.Top()
	}
	assert.InDelta(t, l.Height, y, 1e-4)
}

func TestTankSpans(t *testing.T) {
	l := Build().Layout

	for _, st := range Stages() {
		sec, ok := l.StageSection(st)
		require.True(t, ok, st)
		for _, role := range []TankRole{Oxidizer, Fuel} {
			tank, ok := l.Tank(st, role)
			require.True(t, ok, "%s %s", st, role)
			assert.Greater(t, tank.Top, tank.Bottom)
			assert.GreaterOrEqual(t, tank.Bottom, sec.Base)
			assert.LessOrEqual(t, tank.Top, sec.Top())
			assert.Less(t, tank.Radius, sec.BottomRadius)
		}
	}
}

func TestBaseOffsetCaptured(t *testing.T) {
	a := Build()
	for _, p := range a.Parts {
		assert.Equal(t, p.Node.Position.Y, p.BaseOffset, p.ID)
	}
}

func TestShellFlags(t *testing.T) {
	a := Build()

	seen := map[string]bool{}
	for _, p := range a.Parts {
		assert.Equal(t, IsShell(p.ID), p.Shell, p.ID)
		if p.Shell {
			seen[p.ID] = true
		}
	}
	for _, id := range ShellIDs() {
		assert.True(t, seen[id], "shell %s not built", id)
	}
}

func TestExplodeTableCoversAssembly(t *testing.T) {
	a := Build()

	for _, id := range a.GroupIDs() {
		_, ok := ExplodeOffset(id)
		if id == "fins" {
			assert.False(t, ok)
			continue
		}
		assert.True(t, ok, "no explode offset for %s", id)
	}

	for id := range explodeGroups {
		assert.NotEmpty(t, a.Group(id), "explode id %s not built", id)
	}
}

func TestExplodeOffsetsRiseWithHeight(t *testing.T) {
	plan := DefaultPlan()

	prev := float32(-1)
	for _, s := range plan {
		if s.Shell == nil {
			continue
		}
		off, ok := ExplodeOffset(s.Shell.ID)
		require.True(t, ok, s.Shell.ID)
		assert.GreaterOrEqual(t, off, prev, s.Name)
		prev = off
	}

	for _, id := range []string{"stage1_engines", "stage2_engines", "stage3_engine"} {
		off, _ := ExplodeOffset(id)
		assert.Less(t, off, float32(0), id)
	}
}

func TestGroupsMatchParts(t *testing.T) {
	a := Build()

	total := 0
	for id, group := range a.Groups() {
		for _, p := range group {
			assert.Equal(t, id, p.ID)
		}
		total += len(group)
	}
	assert.Equal(t, len(a.Parts), total)
	assert.Equal(t, "s_ic_shell", a.GroupIDs()[0])
}

func TestCatalogCoverage(t *testing.T) {
	reg := parts.Default()
	undocumented := map[string]bool{
		"fins": true, "s_ic_band": true, "s_ii_band": true, "s_ivb_band": true,
	}

	for _, id := range Build().GroupIDs() {
		_, ok := reg.Lookup(id)
		assert.Equal(t, !undocumented[id], ok, id)
	}
}

func TestSetYaw(t *testing.T) {
	a := Build()
	a.SetYaw(math.Pi / 2)

	assert.InDelta(t, math.Pi/2, a.Yaw(), 1e-6)
	p := a.Root.WorldMatrix().TransformPoint(math.Vec3{X: 1})
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 1, math.Vec3{X: p.X, Z: p.Z}.Length(), 1e-5)
}

func TestBuildPlanDefects(t *testing.T) {
	assert.Panics(t, func() { BuildPlan(nil) })

	plan := DefaultPlan()
	plan[1].Height = 0
	assert.Panics(t, func() { BuildPlan(plan) })

	plan = DefaultPlan()
	plan[1].Tanks = []Tank{{ID: "x", Height: 1}}
	plan[1].Shell = nil
	assert.Panics(t, func() { BuildPlan(plan) })
}

func TestParseStage(t *testing.T) {
	st, err := ParseStage("S-II")
	require.NoError(t, err)
	assert.Equal(t, StageII, st)

	_, err = ParseStage("S-III")
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	a := Build()
	b := a.Bounds()

	assert.InDelta(t, 0, b.Min.Y, 1e-3)
	assert.InDelta(t, a.Layout.Height, b.Max.Y, 1e-3)
	// fins stick out past the shell
	assert.Greater(t, b.Max.X, float32(6))
}

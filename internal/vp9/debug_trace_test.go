package vp9

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/govp9/internal/mv"
)

func TestLogTracerKeyFrame(t *testing.T) {
	var buf bytes.Buffer
	dc, err := NewDecodingContext(SynthesizeKeyFrame(8, 8), NewState())
	require.NoError(t, err)
	_, err = dc.Decode(Options{Tracer: &LogTracer{W: &buf}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "[VP9:header] type=0 show=1 size=8x8 q=60 txmode=3 tiles=1x1", lines[0])
	assert.Equal(t, "[VP9:partition] mi=0,0 bsize=64x64 p=3", lines[1])
	assert.Equal(t, "[VP9:partition] mi=0,0 bsize=8x8 p=0", lines[4])
	assert.Equal(t, "[VP9:block] mi=0,0 bsize=8x8 seg=0 skip=1 tx=1 y=DC uv=DC", lines[5])
}

func TestLogTracerInterBlock(t *testing.T) {
	var buf bytes.Buffer
	tr := &LogTracer{W: &buf}
	tr.TraceBlock(2, 3, interBlock(Block16x16, NearMV, RefGolden, 4, -2))
	tr.TraceMVCandidates(2, 3, RefGolden, mv.List(0).Add(mv.New(4, -2, 2)), 5)
	tr.TraceCoeffs(1, 2, Tx8x8, 3, []int32{7, 0, -1})
	assert.Equal(t,
		"[VP9:block] mi=2,3 bsize=16x16 seg=0 skip=0 tx=0 y=NEARMV ref=2,-1 filter=0 mv=(4,-2 r2),(0,0 r0)\n"+
			"[VP9:mvref] mi=2,3 ref=2 ctx=5 list=[(4,-2 r2),(0,0 r0)]\n"+
			"[VP9:coeffs] plane=1 unit=2 tx=1 eob=3 coeffs=[7,0,-1]\n",
		buf.String())
}

func TestFormatCoeffs(t *testing.T) {
	assert.Equal(t, "[]", formatCoeffs(nil, 8))
	assert.Equal(t, "[1,2,3]", formatCoeffs([]int32{1, 2, 3}, 8))
	assert.Equal(t, "[1,2...]", formatCoeffs([]int32{1, 2, 3}, 2))
}

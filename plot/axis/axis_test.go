// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"testing"

	"cogentcore.org/plotscope/plot/num"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tp, err := ParseType("NanoTime")
	require.NoError(t, err)
	assert.Equal(t, NanoTime, tp)
	tp, err = ParseType("")
	require.NoError(t, err)
	assert.Equal(t, Linear, tp)
	_, err = ParseType("polar")
	assert.Error(t, err)
	assert.Equal(t, "category", Category.String())
}

func TestLinearGridlines(t *testing.T) {
	a := New(Linear)
	a.SetRange(num.Float(0), num.Float(100), 0)
	a.SetGridlines(0, 1, 4, 0, 0)
	assert.InDelta(t, 25, a.Step(), 1e-9)
	assert.Equal(t, 0, a.Fixed())
	lines := a.Gridlines()
	require.Len(t, lines, 5)
	assert.InDelta(t, 0, lines[0], 1e-9)
	assert.InDelta(t, 1, lines[4], 1e-9)
	assert.Equal(t, []string{"0", "25", "50", "75", "100"}, a.GridlineLabels())
}

func TestGridlineCount(t *testing.T) {
	a := New(Linear)
	a.SetRange(num.Float(0), num.Float(100), 0)
	a.SetGridlines(0, 1, 5, 0, 0)
	assert.InDelta(t, 25, a.Step(), 1e-9)
	lines := a.Gridlines()
	assert.InDelta(t, 5, len(lines), 1)
	require.NotEmpty(t, lines)
	assert.InDelta(t, 0, lines[0], 1e-9)
	assert.Equal(t, "0", a.GridlineLabels()[0])
}

func TestInvertedGridlines(t *testing.T) {
	a := New(Linear)
	a.SetRange(num.Float(0), num.Float(10), 0)
	a.SetGridlines(0.8, 0.2, 5, 0, 0)
	assert.Empty(t, a.Gridlines())
}

func TestPercentValue(t *testing.T) {
	a := New(Linear)
	a.SetRange(num.Float(-5), num.Float(15), 0)
	assert.InDelta(t, 0.25, a.Percent(num.Float(0)), 1e-12)
	assert.InDelta(t, 0, a.Value(0.25).Float64(), 1e-12)
	assert.Equal(t, 1.0, a.Percent(num.Float(100)))
	assert.Equal(t, 0.0, a.Percent(num.None))

	n := New(NanoTime)
	n.SetRange(num.MustParseBig("1697000000000000000"), num.MustParseBig("1697000000000001000"), 0)
	v := num.MustParseBig("1697000000000000123")
	p := n.Percent(v)
	assert.InDelta(t, 0.123, p, 1e-12)
	assert.True(t, v.Equal(n.Value(p)), "got %s", n.Value(p))
}

func TestNanoTimeRoundTripWide(t *testing.T) {
	const week = int64(7 * 24 * 3600 * 1e9)
	mid := int64(1_700_000_000_000_000_000)
	lo, hi := mid-10*week, mid+11*week
	n := New(NanoTime)
	n.SetRange(num.BigInt(lo), num.BigInt(hi), 0)
	step := (hi - lo) / 1000
	for i := int64(0); i < 1000; i++ {
		v := num.BigInt(lo + i*step + i*7)
		got := n.ExactValue(n.ExactPercent(v))
		require.True(t, v.Equal(got), "%s came back as %s", v, got)
	}

	n.SetRange(num.MustParseBig("1600000000000000000"), num.MustParseBig("1800000000000000000"), 0)
	for _, s := range []string{"1600000000000000000", "1700000000000000123", "1799999999999999999", "1800000000000000000"} {
		v := num.MustParseBig(s)
		got := n.ExactValue(n.ExactPercent(v))
		assert.True(t, v.Equal(got), "%s came back as %s", v, got)
	}
	assert.InDelta(t, 0.5, n.Percent(num.MustParseBig("1700000000000000123")), 1e-12)
	assert.True(t, num.MustParseBig("1800000000000000000").Equal(n.ExactValue(num.Float(2))))
}

func TestLogBase(t *testing.T) {
	a := New(Log)
	a.SetRange(num.Float(0), num.Float(3), 1)
	assert.Equal(t, 10.0, a.Base)
	a.SetRange(num.None, num.None, 2)
	assert.Equal(t, 2.0, a.Base)
	a.SetRange(num.None, num.None, 0)
	assert.Equal(t, 2.0, a.Base)
	assert.InDelta(t, 8, a.Pow(1), 1e-9)
}

func TestTimeLabels(t *testing.T) {
	const start = 1704067200000.0
	a := New(Time)
	a.SetRange(num.Float(start), num.Float(start+6*3600*1000), 0)
	a.SetGridlines(0, 1, 4, 0, 0)
	assert.Equal(t, 2*3600*1000.0, a.Step())
	assert.Equal(t, []string{"00:00", "02:00", "04:00", "06:00"}, a.GridlineLabels())
	assert.Equal(t, "2024 Jan 01", a.LabelWithCommon())

	a.Label = "time"
	a.SetGridlines(0, 1, 4, 0, 0)
	assert.Equal(t, "time 2024 Jan 01", a.LabelWithCommon())
}

func TestTimeRelabel(t *testing.T) {
	a := New(Time)
	a.SetRange(num.Float(0), num.Float(1000), 0)
	labels, common := a.calcLabels([]float64{0, 0.5, 1}, num.Float(2*3600*1000))
	assert.Equal(t, []string{"00:00.000", "00:00.500", "00:01.000"}, labels)
	assert.Empty(t, common)
}

func TestCategoryGridlines(t *testing.T) {
	a := New(Category)
	a.SetRange(num.Float(0), num.Float(2), 0)
	a.SetCategoryNames([]string{"a", "b", "c"}, []num.Value{num.Float(0), num.Float(1), num.Float(2)})
	a.SetGridlines(0, 1, 5, 0, 0)
	assert.Equal(t, []float64{0, 0.5, 1}, a.Gridlines())
	assert.Equal(t, []string{"a", "b", "c"}, a.GridlineLabels())
}

func TestTipValueString(t *testing.T) {
	a := New(Linear)
	a.SetRange(num.Float(0), num.Float(100), 0)
	a.SetGridlines(0, 1, 4, 0, 0)
	assert.Equal(t, "12", a.TipValueString(num.Float(12.34), false))
	assert.Equal(t, "12.34", a.TipValueString(num.Float(12.34), true))

	tm := New(Time)
	assert.Equal(t, "1970 Jan 01 Thu, 00:00:00 .000", tm.TipValueString(num.Float(0), false))

	n := New(NanoTime)
	assert.Equal(t, "2023 Oct 11 Wed, 04:53:20.123456789",
		n.TipValueString(num.MustParseBig("1697000000123456789"), false))
}

func TestCommonPart(t *testing.T) {
	labels, common := commonPart([]string{"2024 Jan", "2024 Feb"})
	assert.Equal(t, []string{"Jan", "Feb"}, labels)
	assert.Equal(t, "2024", common)

	labels, common = commonPart([]string{"2023", "2024"})
	assert.Equal(t, []string{"2023", "2024"}, labels)
	assert.Empty(t, common)
}

package vp9

import (
	"github.com/pkg/errors"

	"github.com/thesyncim/govp9/internal/mv"
)

// readMV reads a coded vector difference and adds it to ref.
func (tc *TileContext) readMV(ref mv.MV) (mv.MV, error) {
	fc := &tc.dc.Probs.MV
	joint := tc.bd.ReadTree(mvJointTree, fc.Joints[:])
	if tc.counts != nil {
		tc.counts.mvJoints[joint]++
	}
	hp := tc.dc.Header.AllowHighPrecisionMV && useHP(ref)

	var dy, dx int
	if joint == mvJointHzVnz || joint == mvJointHnzVnz {
		dy = tc.readMVComponent(0, hp)
	}
	if joint == mvJointHnzVz || joint == mvJointHnzVnz {
		dx = tc.readMVComponent(1, hp)
	}

	x, y := ref.X()+dx, ref.Y()+dy
	if x < mv.MinComp || x > mv.MaxComp || y < mv.MinComp || y > mv.MaxComp {
		return mv.Zero, errors.Wrapf(ErrInvalidMV, "(%d,%d)", x, y)
	}
	return ref.Add(mv.New(dx, dy, 0)), nil
}

// readMVComponent reads one signed component: a magnitude class, integer
// offset bits, a fractional part and an optional 1/8 pel bit.
func (tc *TileContext) readMVComponent(comp int, useHP bool) int {
	bd := tc.bd
	p := &tc.dc.Probs.MV.Comps[comp]
	var c *mvComponentCounts
	if tc.counts != nil {
		c = &tc.counts.mvComps[comp]
	}

	sign := bd.ReadBit(p.Sign)
	class := bd.ReadTree(mvClassTree, p.Classes[:])
	class0 := class == 0

	var d, mag int
	if class0 {
		d = bd.ReadBit(p.Class0[0])
	} else {
		for i := 0; i < class; i++ {
			d |= bd.ReadBit(p.Bits[i]) << i
		}
		mag = 2 << (class + 2)
	}

	fpProbs := p.FP[:]
	if class0 {
		fpProbs = p.Class0FP[d][:]
	}
	fr := bd.ReadTree(mvFPTree, fpProbs)

	hp := 1
	if useHP {
		if class0 {
			hp = bd.ReadBit(p.Class0HP)
		} else {
			hp = bd.ReadBit(p.HP)
		}
	}

	if c != nil {
		c.sign[sign]++
		c.classes[class]++
		if class0 {
			c.class0[d]++
			c.class0FP[d][fr]++
			c.class0HP[hp]++
		} else {
			for i := 0; i < class; i++ {
				c.bits[i][(d>>i)&1]++
			}
			c.fp[fr]++
			c.hp[hp]++
		}
	}

	mag += (d<<3 | fr<<1 | hp) + 1
	if sign != 0 {
		return -mag
	}
	return mag
}

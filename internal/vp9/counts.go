package vp9

type mvComponentCounts struct {
	sign     [2]uint32
	classes  [numMVClasses]uint32
	class0   [class0Size]uint32
	bits     [mvOffsetBits][2]uint32
	class0FP [class0Size][mvFPSize]uint32
	fp       [mvFPSize]uint32
	class0HP [2]uint32
	hp       [2]uint32
}

// frameCounts tallies the symbols a frame decodes for backward
// probability adaptation. Each tile worker fills its own and the
// results are summed.
type frameCounts struct {
	partition    [partitionContexts][numPartitionTypes]uint32
	tx8          [txSizeContexts][2]uint32
	tx16         [txSizeContexts][3]uint32
	tx32         [txSizeContexts][4]uint32
	skip         [skipContexts][2]uint32
	isInter      [isInterContexts][2]uint32
	compInter    [compInterContexts][2]uint32
	singleRef    [refContexts][2][2]uint32
	compRef      [refContexts][2]uint32
	interMode    [interModeContexts][numInterModes]uint32
	interpFilter [interpContexts][numSwitchableFilters]uint32
	yMode        [blockSizeGroups][numIntraModes]uint32
	uvMode       [numIntraModes][numIntraModes]uint32

	mvJoints [numMVJoints]uint32
	mvComps  [2]mvComponentCounts

	// coef counts ZERO, ONE, larger and end-of-block per context;
	// eobBranch counts how often the end-of-block node was coded.
	coef      [numTxSizes][planeTypes][refTypes][coefBands][coefContexts][4]uint32
	eobBranch [numTxSizes][planeTypes][refTypes][coefBands][coefContexts]uint32
}

const (
	coefCountZero = iota
	coefCountOne
	coefCountMore
	coefCountEOB
)

func addCounts(dst, src []uint32) {
	for i, v := range src {
		dst[i] += v
	}
}

// add sums o into c.
func (c *frameCounts) add(o *frameCounts) {
	for i := range c.partition {
		addCounts(c.partition[i][:], o.partition[i][:])
	}
	for i := 0; i < txSizeContexts; i++ {
		addCounts(c.tx8[i][:], o.tx8[i][:])
		addCounts(c.tx16[i][:], o.tx16[i][:])
		addCounts(c.tx32[i][:], o.tx32[i][:])
	}
	for i := range c.skip {
		addCounts(c.skip[i][:], o.skip[i][:])
	}
	for i := range c.isInter {
		addCounts(c.isInter[i][:], o.isInter[i][:])
	}
	for i := range c.compInter {
		addCounts(c.compInter[i][:], o.compInter[i][:])
	}
	for i := range c.singleRef {
		addCounts(c.singleRef[i][0][:], o.singleRef[i][0][:])
		addCounts(c.singleRef[i][1][:], o.singleRef[i][1][:])
	}
	for i := range c.compRef {
		addCounts(c.compRef[i][:], o.compRef[i][:])
	}
	for i := range c.interMode {
		addCounts(c.interMode[i][:], o.interMode[i][:])
	}
	for i := range c.interpFilter {
		addCounts(c.interpFilter[i][:], o.interpFilter[i][:])
	}
	for i := range c.yMode {
		addCounts(c.yMode[i][:], o.yMode[i][:])
	}
	for i := range c.uvMode {
		addCounts(c.uvMode[i][:], o.uvMode[i][:])
	}

	addCounts(c.mvJoints[:], o.mvJoints[:])
	for i := range c.mvComps {
		a, b := &c.mvComps[i], &o.mvComps[i]
		addCounts(a.sign[:], b.sign[:])
		addCounts(a.classes[:], b.classes[:])
		addCounts(a.class0[:], b.class0[:])
		for j := range a.bits {
			addCounts(a.bits[j][:], b.bits[j][:])
		}
		for j := range a.class0FP {
			addCounts(a.class0FP[j][:], b.class0FP[j][:])
		}
		addCounts(a.fp[:], b.fp[:])
		addCounts(a.class0HP[:], b.class0HP[:])
		addCounts(a.hp[:], b.hp[:])
	}

	for t := range c.coef {
		for p := range c.coef[t] {
			for r := range c.coef[t][p] {
				for band := range c.coef[t][p][r] {
					for ctx := range c.coef[t][p][r][band] {
						addCounts(c.coef[t][p][r][band][ctx][:], o.coef[t][p][r][band][ctx][:])
						c.eobBranch[t][p][r][band][ctx] += o.eobBranch[t][p][r][band][ctx]
					}
				}
			}
		}
	}
}

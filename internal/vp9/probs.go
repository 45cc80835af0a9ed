package vp9

// MVComponentProbs are the probabilities of one motion vector component.
type MVComponentProbs struct {
	Sign     uint8
	Classes  [numMVClasses - 1]uint8
	Class0   [class0Size - 1]uint8
	Bits     [mvOffsetBits]uint8
	Class0FP [class0Size][mvFPSize - 1]uint8
	FP       [mvFPSize - 1]uint8
	Class0HP uint8
	HP       uint8
}

// MVProbs are the motion vector probabilities. Comps[0] is vertical.
type MVProbs struct {
	Joints [numMVJoints - 1]uint8
	Comps  [2]MVComponentProbs
}

// CoefProbs is indexed [txSize][plane type][ref][band][context][node].
// Band 0 only uses the first three contexts.
type CoefProbs [numTxSizes][planeTypes][refTypes][coefBands][coefContexts][modelNodes]uint8

// FrameProbs is one adaptive probability context. A frame starts from one
// of four saved contexts and applies the compressed header deltas to it.
// Every probability lies in [1, 255].
type FrameProbs struct {
	Partition    [partitionContexts][numPartitionTypes - 1]uint8
	Tx8          [txSizeContexts][1]uint8
	Tx16         [txSizeContexts][2]uint8
	Tx32         [txSizeContexts][3]uint8
	Skip         [skipContexts]uint8
	IsInter      [isInterContexts]uint8
	CompInter    [compInterContexts]uint8
	SingleRef    [refContexts][2]uint8
	CompRef      [refContexts]uint8
	InterMode    [interModeContexts][numInterModes - 1]uint8
	InterpFilter [interpContexts][numSwitchableFilters - 1]uint8
	YMode        [blockSizeGroups][numIntraModes - 1]uint8
	UVMode       [numIntraModes][numIntraModes - 1]uint8
	MV           MVProbs
	Coef         CoefProbs
}

// DefaultFrameProbs returns the probabilities every context is reset to
// on key frames and error resilient frames.
func DefaultFrameProbs() FrameProbs {
	fp := FrameProbs{
		Partition:    defaultPartitionProbs,
		Tx8:          [txSizeContexts][1]uint8{{100}, {66}},
		Tx16:         [txSizeContexts][2]uint8{{20, 152}, {15, 101}},
		Tx32:         [txSizeContexts][3]uint8{{3, 136, 37}, {5, 52, 13}},
		Skip:         [skipContexts]uint8{192, 128, 64},
		IsInter:      [isInterContexts]uint8{9, 102, 187, 225},
		CompInter:    [compInterContexts]uint8{239, 183, 119, 96, 41},
		SingleRef:    [refContexts][2]uint8{{33, 16}, {77, 74}, {142, 142}, {172, 170}, {238, 247}},
		CompRef:      [refContexts]uint8{50, 126, 123, 221, 226},
		InterMode:    defaultInterModeProbs,
		InterpFilter: [interpContexts][numSwitchableFilters - 1]uint8{{235, 162}, {36, 255}, {34, 3}, {149, 144}},
		YMode:        defaultYModeProbs,
		UVMode:       defaultUVModeProbs,
		MV:           defaultMVProbs,
		Coef:         defaultCoefProbs,
	}
	return fp
}

var defaultInterModeProbs = [interModeContexts][numInterModes - 1]uint8{
	{2, 173, 34}, // both zero
	{7, 145, 85}, // zero plus predicted
	{7, 166, 63}, // both predicted
	{7, 94, 66},  // new plus non-intra
	{8, 64, 46},  // both new
	{17, 81, 31}, // intra plus non-intra
	{25, 29, 30}, // both intra
}

var defaultMVProbs = MVProbs{
	Joints: [numMVJoints - 1]uint8{32, 64, 96},
	Comps: [2]MVComponentProbs{
		{ // vertical
			Sign:     128,
			Classes:  [numMVClasses - 1]uint8{224, 144, 192, 168, 192, 176, 192, 198, 198, 245},
			Class0:   [class0Size - 1]uint8{216},
			Bits:     [mvOffsetBits]uint8{136, 140, 148, 160, 176, 192, 224, 234, 234, 240},
			Class0FP: [class0Size][mvFPSize - 1]uint8{{128, 128, 64}, {96, 112, 64}},
			FP:       [mvFPSize - 1]uint8{64, 96, 64},
			Class0HP: 160,
			HP:       128,
		},
		{ // horizontal
			Sign:     128,
			Classes:  [numMVClasses - 1]uint8{216, 128, 176, 160, 176, 176, 192, 198, 198, 208},
			Class0:   [class0Size - 1]uint8{208},
			Bits:     [mvOffsetBits]uint8{136, 140, 148, 160, 176, 192, 224, 234, 234, 240},
			Class0FP: [class0Size][mvFPSize - 1]uint8{{128, 128, 64}, {96, 112, 64}},
			FP:       [mvFPSize - 1]uint8{64, 96, 64},
			Class0HP: 160,
			HP:       128,
		},
	},
}

// txProbs returns the tx size probabilities for a block whose largest
// transform is max.
func (fp *FrameProbs) txProbs(max TxSize, ctx int) []uint8 {
	switch max {
	case Tx8x8:
		return fp.Tx8[ctx][:]
	case Tx16x16:
		return fp.Tx16[ctx][:]
	default:
		return fp.Tx32[ctx][:]
	}
}

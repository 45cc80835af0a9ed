package vp9

// Block geometry, indexed by BlockSize.
var (
	// log2 of the width and height in 4x4 units.
	bWidthLog2  = [numBlockSizes]uint8{0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}
	bHeightLog2 = [numBlockSizes]uint8{0, 1, 0, 1, 2, 1, 2, 3, 2, 3, 4, 3, 4}

	num4x4Wide = [numBlockSizes]uint8{1, 1, 2, 2, 2, 4, 4, 4, 8, 8, 8, 16, 16}
	num4x4High = [numBlockSizes]uint8{1, 2, 1, 2, 4, 2, 4, 8, 4, 8, 16, 8, 16}

	// Width and height in 8x8 mode info units; sub-8x8 sizes occupy one unit.
	num8x8Wide = [numBlockSizes]uint8{1, 1, 1, 1, 1, 2, 2, 2, 4, 4, 4, 8, 8}
	num8x8High = [numBlockSizes]uint8{1, 1, 1, 1, 2, 1, 2, 4, 2, 4, 8, 4, 8}

	sizeGroup = [numBlockSizes]uint8{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 3}

	maxTxSize = [numBlockSizes]TxSize{
		Tx4x4, Tx4x4, Tx4x4,
		Tx8x8, Tx8x8, Tx8x8,
		Tx16x16, Tx16x16, Tx16x16,
		Tx32x32, Tx32x32, Tx32x32, Tx32x32,
	}
)

var txModeToBiggestTxSize = [...]TxSize{Tx4x4, Tx8x8, Tx16x16, Tx32x32, Tx32x32}

// subsizeLookup[partition][bsize] is the size of the blocks a partition produces.
var subsizeLookup = [numPartitionTypes][numBlockSizes]BlockSize{
	{ // PartitionNone
		Block4x4, Block4x8, Block8x4, Block8x8, Block8x16, Block16x8, Block16x16,
		Block16x32, Block32x16, Block32x32, Block32x64, Block64x32, Block64x64,
	},
	{ // PartitionHorz
		BlockInvalid, BlockInvalid, BlockInvalid, Block8x4, BlockInvalid, BlockInvalid, Block16x8,
		BlockInvalid, BlockInvalid, Block32x16, BlockInvalid, BlockInvalid, Block64x32,
	},
	{ // PartitionVert
		BlockInvalid, BlockInvalid, BlockInvalid, Block4x8, BlockInvalid, BlockInvalid, Block8x16,
		BlockInvalid, BlockInvalid, Block16x32, BlockInvalid, BlockInvalid, Block32x64,
	},
	{ // PartitionSplit
		BlockInvalid, BlockInvalid, BlockInvalid, Block4x4, BlockInvalid, BlockInvalid, Block8x8,
		BlockInvalid, BlockInvalid, Block16x16, BlockInvalid, BlockInvalid, Block32x32,
	},
}

// ssSizeLookup[bsize][ssx][ssy] is the chroma block size under subsampling.
var ssSizeLookup = [numBlockSizes][2][2]BlockSize{
	{{Block4x4, BlockInvalid}, {BlockInvalid, BlockInvalid}},
	{{Block4x8, Block4x4}, {BlockInvalid, BlockInvalid}},
	{{Block8x4, BlockInvalid}, {Block4x4, BlockInvalid}},
	{{Block8x8, Block8x4}, {Block4x8, Block4x4}},
	{{Block8x16, Block8x8}, {BlockInvalid, Block4x8}},
	{{Block16x8, BlockInvalid}, {Block8x8, Block8x4}},
	{{Block16x16, Block16x8}, {Block8x16, Block8x8}},
	{{Block16x32, Block16x16}, {BlockInvalid, Block8x16}},
	{{Block32x16, BlockInvalid}, {Block16x16, Block16x8}},
	{{Block32x32, Block32x16}, {Block16x32, Block16x16}},
	{{Block32x64, Block32x32}, {BlockInvalid, Block16x32}},
	{{Block64x32, BlockInvalid}, {Block32x32, Block32x16}},
	{{Block64x64, Block64x32}, {Block32x64, Block32x32}},
}

// partitionContextLookup holds the above and left partition context
// bytes written for a block of each size. A set bit k means the block
// is smaller than the square of width 8<<k pixels along that edge.
var partitionContextLookup = [numBlockSizes]struct{ above, left uint8 }{
	{15, 15}, // 4x4
	{15, 14}, // 4x8
	{14, 15}, // 8x4
	{14, 14}, // 8x8
	{14, 12}, // 8x16
	{12, 14}, // 16x8
	{12, 12}, // 16x16
	{12, 8},  // 16x32
	{8, 12},  // 32x16
	{8, 8},   // 32x32
	{8, 0},   // 32x64
	{0, 8},   // 64x32
	{0, 0},   // 64x64
}

// Token trees. Positive entries point at the next node pair, others are
// negated leaves.
var (
	intraModeTree = []int8{
		-int8(DCPred), 2,
		-int8(TMPred), 4,
		-int8(VPred), 6,
		8, 12,
		-int8(HPred), 10,
		-int8(D135Pred), -int8(D117Pred),
		-int8(D45Pred), 14,
		-int8(D63Pred), 16,
		-int8(D153Pred), -int8(D207Pred),
	}

	segmentTree = []int8{2, 4, 6, 8, 10, 12, 0, -1, -2, -3, -4, -5, -6, -7}

	// Leaves are offsets from NearestMV: ZERO(2), NEAREST(0), NEAR(1), NEW(3).
	interModeTree = []int8{-2, 2, 0, 4, -1, -3}

	partitionTree = []int8{
		-int8(PartitionNone), 2,
		-int8(PartitionHorz), 4,
		-int8(PartitionVert), -int8(PartitionSplit),
	}

	switchableInterpTree = []int8{
		-int8(FilterEightTap), 2,
		-int8(FilterEightTapSmooth), -int8(FilterEightTapSharp),
	}

	mvJointTree = []int8{-mvJointZero, 2, -mvJointHnzVz, 4, -mvJointHzVnz, -mvJointHnzVnz}

	mvClassTree = []int8{
		0, 2,
		-1, 4,
		6, 8,
		-2, -3,
		10, 12,
		-4, -5,
		-6, 14,
		16, 18,
		-7, -8,
		-9, -10,
	}

	mvFPTree = []int8{0, 2, -1, 4, -2, -3}

	// Tokens above ONE, walked with a Pareto row.
	coefConTree = []int8{
		2, 6,
		-tokenTwo, 4,
		-tokenThree, -tokenFour,
		8, 10,
		-tokenCat1, -tokenCat2,
		12, 14,
		-tokenCat3, -tokenCat4,
		-tokenCat5, -tokenCat6,
	}
)

// literalToFilter maps the 2-bit frame-level filter literal.
var literalToFilter = [4]InterpFilter{
	FilterEightTapSmooth, FilterEightTap, FilterEightTapSharp, FilterBilinear,
}

// MV joints.
const (
	mvJointZero   = 0 // both components zero
	mvJointHnzVz  = 1 // horizontal nonzero
	mvJointHzVnz  = 2 // vertical nonzero
	mvJointHnzVnz = 3
)

// Coefficient tokens.
const (
	tokenZero = iota
	tokenOne
	tokenTwo
	tokenThree
	tokenFour
	tokenCat1
	tokenCat2
	tokenCat3
	tokenCat4
	tokenCat5
	tokenCat6
	tokenEOB
)

// energyClass is the token cache value stored for each token.
var energyClass = [entropyTokens]uint8{0, 1, 2, 3, 3, 4, 4, 5, 5, 5, 5, 5}

// Extra-bit probabilities and base values of the category tokens.
var (
	cat1Prob = []uint8{159}
	cat2Prob = []uint8{165, 145}
	cat3Prob = []uint8{173, 148, 140}
	cat4Prob = []uint8{176, 155, 140, 135}
	cat5Prob = []uint8{180, 157, 141, 134, 130}

	// 18 probabilities for 12-bit streams; 10-bit skips the first two
	// and 8-bit skips the first four.
	cat6ProbHigh12 = []uint8{
		255, 255, 254, 254,
		254, 254, 254, 252, 249, 243, 230,
		196, 177, 153, 140, 133, 130, 129,
	}

	catMinVal = [...]int32{5, 7, 11, 19, 35, 67}
)

// cat6Probs returns the CAT6 extra-bit probabilities for a bit depth.
func cat6Probs(bitDepth int) []uint8 {
	switch bitDepth {
	case 12:
		return cat6ProbHigh12
	case 10:
		return cat6ProbHigh12[2:]
	default:
		return cat6ProbHigh12[4:]
	}
}

// Coefficient band of each scan position.
var (
	coefBand4x4 = [16]uint8{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 5}

	coefBand8x8Plus [1024]uint8
)

func init() {
	head := []uint8{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 4, 5}
	copy(coefBand8x8Plus[:], head)
	for i := len(head); i < len(coefBand8x8Plus); i++ {
		coefBand8x8Plus[i] = 5
	}
}

func bandTranslate(tx TxSize) []uint8 {
	if tx == Tx4x4 {
		return coefBand4x4[:]
	}
	return coefBand8x8Plus[:]
}

// intraModeToTxType selects the luma transform of an intra block.
var intraModeToTxType = [numIntraModes]TxType{
	DCTDCT,   // DC
	ADSTDCT,  // V
	DCTADST,  // H
	DCTDCT,   // D45
	ADSTADST, // D135
	ADSTDCT,  // D117
	DCTADST,  // D153
	DCTADST,  // D207
	ADSTDCT,  // D63
	ADSTADST, // TM
}

// Inter mode context derivation from the two nearest neighbors.
var (
	mode2Counter = [NewMV + 1]uint8{
		9, 9, 9, 9, 9, 9, 9, 9, 9, 9, // intra modes
		0, // NEARESTMV
		0, // NEARMV
		3, // ZEROMV
		1, // NEWMV
	}

	counterToContext = [19]uint8{
		bothPredicted,
		newPlusNonIntra,
		bothNew,
		zeroPlusPredicted,
		newPlusNonIntra,
		invalidCase,
		bothZero,
		invalidCase,
		invalidCase,
		intraPlusNonIntra,
		intraPlusNonIntra,
		invalidCase,
		intraPlusNonIntra,
		invalidCase,
		invalidCase,
		invalidCase,
		invalidCase,
		invalidCase,
		bothIntra,
	}
)

const (
	bothZero          = 0
	zeroPlusPredicted = 1
	bothPredicted     = 2
	newPlusNonIntra   = 3
	bothNew           = 4
	intraPlusNonIntra = 5
	bothIntra         = 6
	invalidCase       = 9
)

// position is a neighbor offset in mode info units.
type position struct{ row, col int }

// mvRefBlocks lists the spatial candidates searched for each block size,
// nearest first.
var mvRefBlocks = [numBlockSizes][8]position{
	// 4x4
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	// 4x8
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	// 8x4
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	// 8x8
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	// 8x16
	{{0, -1}, {-1, 0}, {1, -1}, {-1, -1}, {0, -2}, {-2, 0}, {-2, -1}, {-1, -2}},
	// 16x8
	{{-1, 0}, {0, -1}, {-1, 1}, {-1, -1}, {-2, 0}, {0, -2}, {-1, -2}, {-2, -1}},
	// 16x16
	{{-1, 0}, {0, -1}, {-1, 1}, {1, -1}, {-1, -1}, {-3, 0}, {0, -3}, {-3, -3}},
	// 16x32
	{{0, -1}, {-1, 0}, {2, -1}, {-1, -1}, {-1, 1}, {0, -3}, {-3, 0}, {-3, -3}},
	// 32x16
	{{-1, 0}, {0, -1}, {-1, 2}, {-1, -1}, {1, -1}, {-3, 0}, {0, -3}, {-3, -3}},
	// 32x32
	{{-1, 1}, {1, -1}, {-1, 2}, {2, -1}, {-1, -1}, {-3, 0}, {0, -3}, {-3, -3}},
	// 32x64
	{{0, -1}, {-1, 0}, {4, -1}, {-1, 2}, {-1, -1}, {0, -3}, {-3, 0}, {2, -1}},
	// 64x32
	{{-1, 0}, {0, -1}, {-1, 4}, {2, -1}, {-1, -1}, {-3, 0}, {0, -3}, {-1, 2}},
	// 64x64
	{{-1, 3}, {3, -1}, {-1, 4}, {4, -1}, {-1, -1}, {-1, 0}, {0, -1}, {-1, 6}},
}

// idxNColumnToSubblock picks the neighbor sub-block adjacent to sub-block
// b: index 1 for an above neighbor (column offset 0), index 0 for left.
var idxNColumnToSubblock = [4][2]int{{1, 2}, {1, 3}, {3, 2}, {3, 3}}

// segFeatureBits and segFeatureSigned describe the per-feature payloads
// of the segmentation data update.
var (
	segFeatureMax    = [numSegFeatures]int{255, 63, 3, 0}
	segFeatureBits   = [numSegFeatures]int{8, 6, 2, 0}
	segFeatureSigned = [numSegFeatures]bool{true, true, false, false}
)

// Package vp9 implements the VP9 block-level syntax decoder: frame and
// compressed headers, the adaptive probability model, the superblock
// partition walk, per-block mode info, motion vector prediction and
// quantized coefficient decoding.
//
// The package stops at syntax elements. Prediction, inverse transforms
// and loop filtering belong to a reconstruction stage that consumes the
// CodedSuperBlocks produced here.
package vp9

// BlockSize enumerates the VP9 block shapes, ordered as in the bitstream.
type BlockSize uint8

const (
	Block4x4 BlockSize = iota
	Block4x8
	Block8x4
	Block8x8
	Block8x16
	Block16x8
	Block16x16
	Block16x32
	Block32x16
	Block32x32
	Block32x64
	Block64x32
	Block64x64
	BlockInvalid

	numBlockSizes = int(BlockInvalid)
)

var blockSizeNames = [...]string{
	"4x4", "4x8", "8x4", "8x8", "8x16", "16x8", "16x16",
	"16x32", "32x16", "32x32", "32x64", "64x32", "64x64", "invalid",
}

func (b BlockSize) String() string {
	if int(b) < len(blockSizeNames) {
		return blockSizeNames[b]
	}
	return "invalid"
}

// PartitionType is the split applied to a square block.
type PartitionType uint8

const (
	PartitionNone PartitionType = iota
	PartitionHorz
	PartitionVert
	PartitionSplit

	numPartitionTypes = 4
)

// TxSize is the log2 transform size minus two: 4x4 through 32x32.
type TxSize uint8

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32

	numTxSizes = 4
)

// TxMode caps the transform size for a frame or allows per-block selection.
type TxMode uint8

const (
	Only4x4 TxMode = iota
	Allow8x8
	Allow16x16
	Allow32x32
	TxModeSelect
)

// TxType is the 2-D transform kernel pair, which selects the scan order.
type TxType uint8

const (
	DCTDCT   TxType = iota
	ADSTDCT         // ADST vertically, DCT horizontally
	DCTADST         // DCT vertically, ADST horizontally
	ADSTADST
)

// PredictionMode holds intra modes followed by the four inter modes.
type PredictionMode uint8

const (
	DCPred PredictionMode = iota
	VPred
	HPred
	D45Pred
	D135Pred
	D117Pred
	D153Pred
	D207Pred
	D63Pred
	TMPred
	NearestMV
	NearMV
	ZeroMV
	NewMV

	numIntraModes = 10
	numInterModes = 4
)

var modeNames = [...]string{
	"DC", "V", "H", "D45", "D135", "D117", "D153", "D207", "D63", "TM",
	"NEARESTMV", "NEARMV", "ZEROMV", "NEWMV",
}

func (m PredictionMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "?"
}

// IsInter reports whether m is one of the inter modes.
func (m PredictionMode) IsInter() bool {
	return m >= NearestMV
}

// RefFrame identifies a reference buffer. RefNone marks an unused second slot.
type RefFrame int8

const (
	RefNone   RefFrame = -1
	RefIntra  RefFrame = 0
	RefLast   RefFrame = 1
	RefGolden RefFrame = 2
	RefAltRef RefFrame = 3

	numRefFrames = 4
)

// InterpFilter is the subpel interpolation filter of an inter block.
type InterpFilter uint8

const (
	FilterEightTap InterpFilter = iota
	FilterEightTapSmooth
	FilterEightTapSharp
	FilterBilinear
	FilterSwitchable

	numSwitchableFilters = 3
)

// ReferenceMode selects single, compound or per-block reference prediction.
type ReferenceMode uint8

const (
	SingleReference ReferenceMode = iota
	CompoundReference
	ReferenceModeSelect
)

// FrameType is KeyFrame or NonKeyFrame.
type FrameType uint8

const (
	KeyFrame FrameType = iota
	NonKeyFrame
)

// Segment feature indices.
const (
	SegLvlAltQ = iota
	SegLvlAltLF
	SegLvlRefFrame
	SegLvlSkip

	numSegFeatures = 4
	maxSegments    = 8
)

// Color spaces from the uncompressed header.
const (
	ColorSpaceUnknown = iota
	ColorSpaceBT601
	ColorSpaceBT709
	ColorSpaceSMPTE170
	ColorSpaceSMPTE240
	ColorSpaceBT2020
	ColorSpaceReserved
	ColorSpaceSRGB
)

const (
	frameMarker     = 2
	syncCode        = 0x498342
	numRefs         = 3
	numRefSlots     = 8
	numFrameCtxs    = 4
	maxProfile      = 4
	minTileWidthB64 = 4
	maxTileWidthB64 = 64

	miSizeLog2     = 3 // 8x8 mode info unit
	sbMiLog2       = 3 // 64x64 superblock in MI units
	sbMiSize       = 1 << sbMiLog2
	maxMVRefCands  = 2
	mvBorder       = 16 << 3 // in 1/8 pel
	compandedMVRef = 8
	interpExtend   = 4
	mvRefMargin    = (160 - interpExtend) << 3

	diffUpdateProb = 252
	mvUpdateProb   = 252

	numMVJoints  = 4
	numMVClasses = 11
	class0Size   = 2
	mvOffsetBits = numMVClasses - 1
	mvFPSize     = 4

	skipContexts      = 3
	txSizeContexts    = 2
	partitionContexts = 16
	isInterContexts   = 4
	compInterContexts = 5
	refContexts       = 5
	interModeContexts = 7
	interpContexts    = numSwitchableFilters + 1
	blockSizeGroups   = 4

	planeTypes    = 2
	refTypes      = 2
	coefBands     = 6
	coefContexts  = 6
	modelNodes    = 3
	entropyTokens = 12
	paretoNodes   = 8
)

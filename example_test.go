package govp9_test

import (
	"fmt"
	"log"

	"github.com/thesyncim/govp9"
	"github.com/thesyncim/govp9/internal/vp9"
)

func ExampleDecoder_DecodeFrame() {
	dec := govp9.NewDecoder()
	frame, err := dec.DecodeFrame(vp9.SynthesizeKeyFrame(128, 64))
	if err != nil {
		log.Fatal(err)
	}

	blocks := 0
	for _, tile := range frame.Tiles {
		for _, sb := range tile.SuperBlocks {
			blocks += len(sb.Blocks)
		}
	}
	fmt.Printf("%dx%d: %d blocks\n", frame.Header.Width, frame.Header.Height, blocks)
	// Output: 128x64: 128 blocks
}

func ExampleParseFrameInfo() {
	info, err := govp9.ParseFrameInfo(vp9.SynthesizeKeyFrame(352, 288))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("profile %d key=%v %dx%d\n", info.Profile, info.FrameType == vp9.KeyFrame, info.Width, info.Height)
	// Output: profile 0 key=true 352x288
}

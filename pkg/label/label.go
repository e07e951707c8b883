// Package label provides the HTS-style full-context label record used by
// Japanese text-to-speech voices, together with a parser and serializer for
// its single-line wire format.
//
// A line looks like:
//
//	sil^n-i+h=o/A:-3+1+7/B:xx-xx_xx/C:02_xx+xx/D:02+xx_xx/E:xx_xx!xx_xx-xx/F:7_4#0_xx@1_3|1_12/G:4_4%0_xx_1/H:xx_xx/I:3-12@1+2&1-8|1+41/J:5_29/K:2+8-41
//
// Every sub-field may be the sentinel "xx", which is represented as a nil
// pointer. Blocks where the whole context is absent are nil as well.
package label

// Label is a single line of a full-context label.
type Label struct {
	Phoneme Phoneme
	// A: mora
	Mora *Mora
	// B: previous word
	WordPrev *Word
	// C: current word
	WordCurr *Word
	// D: next word
	WordNext *Word
	// E: previous accent phrase
	AccentPhrasePrev *AccentPhrasePrevNext
	// F: current accent phrase
	AccentPhraseCurr *AccentPhraseCurrent
	// G: next accent phrase
	AccentPhraseNext *AccentPhrasePrevNext
	// H: previous breath group
	BreathGroupPrev *BreathGroupPrevNext
	// I: current breath group
	BreathGroupCurr *BreathGroupCurrent
	// J: next breath group
	BreathGroupNext *BreathGroupPrevNext
	// K: utterance
	Utterance Utterance
}

// Phoneme holds the quinphone identities (p1^p2-p3+p4=p5).
type Phoneme struct {
	P2 *string // P1: the phoneme before the previous phoneme
	P1 *string // P2: the previous phoneme
	C  *string // P3: the current phoneme
	N1 *string // P4: the next phoneme
	N2 *string // P5: the phoneme after the next phoneme
}

// Mora is the A block.
type Mora struct {
	RelativeAccentPosition int8  // A1
	PositionForward        uint8 // A2
	PositionBackward       uint8 // A3
}

// Word is the B, C and D block. Values are categorical codes.
type Word struct {
	Pos   *uint8 // part of speech
	CType *uint8 // conjugation type
	CForm *uint8 // inflected form
}

// AccentPhraseCurrent is the F block. F4 is always undefined.
type AccentPhraseCurrent struct {
	MoraCount                    uint8 // F1
	AccentPosition               uint8 // F2
	IsInterrogative              bool  // F3
	AccentPhrasePositionForward  uint8 // F5
	AccentPhrasePositionBackward uint8 // F6
	MoraPositionForward          uint8 // F7
	MoraPositionBackward         uint8 // F8
}

// AccentPhrasePrevNext is the E and G block. E4/G4 are always undefined.
type AccentPhrasePrevNext struct {
	MoraCount       uint8 // E1/G1
	AccentPosition  uint8 // E2/G2
	IsInterrogative bool  // E3/G3
	// IsPauseInsertion is E5/G5. The wire value is inverted:
	// "1" means no pause and "0" means a pause is inserted.
	IsPauseInsertion *bool
}

// BreathGroupCurrent is the I block.
type BreathGroupCurrent struct {
	AccentPhraseCount            uint8 // I1
	MoraCount                    uint8 // I2
	BreathGroupPositionForward   uint8 // I3
	BreathGroupPositionBackward  uint8 // I4
	AccentPhrasePositionForward  uint8 // I5
	AccentPhrasePositionBackward uint8 // I6
	MoraPositionForward          uint8 // I7
	MoraPositionBackward         uint8 // I8
}

// BreathGroupPrevNext is the H and J block.
type BreathGroupPrevNext struct {
	AccentPhraseCount uint8 // H1/J1
	MoraCount         uint8 // H2/J2
}

// Utterance is the K block. It is never absent.
type Utterance struct {
	BreathGroupCount  uint8 // K1
	AccentPhraseCount uint8 // K2
	MoraCount         uint8 // K3
}

// Ptr returns a pointer to v. It keeps literal labels in tests readable.
func Ptr[T any](v T) *T {
	return &v
}

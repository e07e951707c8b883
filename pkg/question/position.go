package question

// Kind is the value kind of a label field. It decides how a question's
// range is compiled and tested.
type Kind uint8

const (
	KindPhone Kind = iota
	KindSignedRange
	KindUnsignedRange
	KindBoolean
	KindCategory
	KindUndefined
)

var kindNames = [...]string{
	KindPhone:         "Phone",
	KindSignedRange:   "SignedRange",
	KindUnsignedRange: "UnsignedRange",
	KindBoolean:       "Boolean",
	KindCategory:      "Category",
	KindUndefined:     "Undefined",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Position identifies exactly one field of a full-context label.
//
// The set of positions is closed: Position is implemented only by the six
// leaf enumerations below, one per Kind.
type Position interface {
	Kind() Kind
	String() string
	position()
}

// PhonePosition is a phoneme identity field.
type PhonePosition uint8

const (
	P1 PhonePosition = iota
	P2
	P3
	P4
	P5
)

// SignedRangePosition is a signed integer field.
type SignedRangePosition uint8

const (
	A1 SignedRangePosition = iota
)

// UnsignedRangePosition is an unsigned integer field.
type UnsignedRangePosition uint8

const (
	A2 UnsignedRangePosition = iota
	A3

	E1
	E2

	F1
	F2
	F5
	F6
	F7
	F8

	G1
	G2

	H1
	H2

	I1
	I2
	I3
	I4
	I5
	I6
	I7
	I8

	J1
	J2

	K1
	K2
	K3
)

// BooleanPosition is a boolean field. E5 and G5 are stored inverted on the wire.
type BooleanPosition uint8

const (
	E3 BooleanPosition = iota
	E5
	F3
	G3
	G5
)

// CategoryPosition is a numeric code for a categorical word attribute.
type CategoryPosition uint8

const (
	B1 CategoryPosition = iota
	B2
	B3
	C1
	C2
	C3
	D1
	D2
	D3
)

// UndefinedPosition is a field that is always xx.
type UndefinedPosition uint8

const (
	E4 UndefinedPosition = iota
	F4
	G4
)

var (
	phoneNames     = [...]string{"P1", "P2", "P3", "P4", "P5"}
	signedNames    = [...]string{"A1"}
	unsignedNames  = [...]string{"A2", "A3", "E1", "E2", "F1", "F2", "F5", "F6", "F7", "F8", "G1", "G2", "H1", "H2", "I1", "I2", "I3", "I4", "I5", "I6", "I7", "I8", "J1", "J2", "K1", "K2", "K3"}
	booleanNames   = [...]string{"E3", "E5", "F3", "G3", "G5"}
	categoryNames  = [...]string{"B1", "B2", "B3", "C1", "C2", "C3", "D1", "D2", "D3"}
	undefinedNames = [...]string{"E4", "F4", "G4"}
)

func (p PhonePosition) Kind() Kind         { return KindPhone }
func (p SignedRangePosition) Kind() Kind   { return KindSignedRange }
func (p UnsignedRangePosition) Kind() Kind { return KindUnsignedRange }
func (p BooleanPosition) Kind() Kind       { return KindBoolean }
func (p CategoryPosition) Kind() Kind      { return KindCategory }
func (p UndefinedPosition) Kind() Kind     { return KindUndefined }

func (p PhonePosition) String() string         { return phoneNames[p] }
func (p SignedRangePosition) String() string   { return signedNames[p] }
func (p UnsignedRangePosition) String() string { return unsignedNames[p] }
func (p BooleanPosition) String() string       { return booleanNames[p] }
func (p CategoryPosition) String() string      { return categoryNames[p] }
func (p UndefinedPosition) String() string     { return undefinedNames[p] }

func (PhonePosition) position()         {}
func (SignedRangePosition) position()   {}
func (UnsignedRangePosition) position() {}
func (BooleanPosition) position()       {}
func (CategoryPosition) position()      {}
func (UndefinedPosition) position()     {}

// AllPositions returns every position in wire order.
func AllPositions() []Position {
	return []Position{
		P1, P2, P3, P4, P5,
		A1, A2, A3,
		B1, B2, B3,
		C1, C2, C3,
		D1, D2, D3,
		E1, E2, E3, E4, E5,
		F1, F2, F3, F4, F5, F6, F7, F8,
		G1, G2, G3, G4, G5,
		H1, H2,
		I1, I2, I3, I4, I5, I6, I7, I8,
		J1, J2,
		K1, K2, K3,
	}
}

// LookupPosition returns the position with the given name, such as "A1" or "G5".
func LookupPosition(name string) (Position, bool) {
	for _, p := range AllPositions() {
		if p.String() == name {
			return p, true
		}
	}
	return nil, false
}

package grammar

// Kind is the variant tag of a grammar node. The set is closed.
type Kind uint8

const (
	KindRoot Kind = iota
	KindEnum
	KindChar
	KindKeyword
	KindInt
	KindFloat
	KindAnyString
	KindAnyMsg
	KindEnd
	KindQuotedString
	KindBareString
	KindRangeInt
	KindRelativeOffset
	KindLocalOffset
)

var kindNames = map[Kind]string{
	KindRoot:           "Root",
	KindEnum:           "Enum",
	KindChar:           "Char",
	KindKeyword:        "Keyword",
	KindInt:            "Int",
	KindFloat:          "Float",
	KindAnyString:      "AnyString",
	KindAnyMsg:         "AnyMsg",
	KindEnd:            "End",
	KindQuotedString:   "QuotedString",
	KindBareString:     "BareString",
	KindRangeInt:       "RangeInt",
	KindRelativeOffset: "RelativeOffset",
	KindLocalOffset:    "LocalOffset",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Terminators bound every literal and free-form match.
const Terminators = " ,@~^$&\"!#%+*/=[{]}\\|<>`"

// IsTerminator reports whether b is one of the terminator characters.
func IsTerminator(b byte) bool {
	for i := 0; i < len(Terminators); i++ {
		if Terminators[i] == b {
			return true
		}
	}
	return false
}

package models

// RetiredTitle is the wire duty title that marks a retirement record.
const RetiredTitle = "RETIRED"

// Kind classifies a duty assignment.
type Kind int

const (
	KindActive Kind = iota
	KindRetirement
)

func (k Kind) String() string {
	switch k {
	case KindRetirement:
		return "retirement"
	default:
		return "active"
	}
}

// Assignment is a rank and duty title tagged with its Kind. Build one with
// ParseAssignment so the tag always agrees with the title.
type Assignment struct {
	Rank  string
	Title string
	kind  Kind
}

// ParseAssignment classifies a wire rank/title pair. Only the exact title
// "RETIRED" is a retirement.
func ParseAssignment(rank, title string) Assignment {
	kind := KindActive
	if title == RetiredTitle {
		kind = KindRetirement
	}
	return Assignment{Rank: rank, Title: title, kind: kind}
}

// Retirement returns the retirement assignment for a final rank.
func Retirement(rank string) Assignment {
	return Assignment{Rank: rank, Title: RetiredTitle, kind: KindRetirement}
}

func (a Assignment) Kind() Kind { return a.kind }

func (a Assignment) IsRetirement() bool { return a.kind == KindRetirement }

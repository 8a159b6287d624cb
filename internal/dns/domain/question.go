package domain

// Question is a single question-section entry: a name/type/class triple
// that carries no TTL or RDATA (spec.md §3).
type Question struct {
	Name  Name
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question from a presentation-form name.
func NewQuestion(name string, rrtype RRType, class RRClass) (Question, error) {
	n, err := NewName(name)
	if err != nil {
		return Question{}, err
	}
	return Question{Name: n, Type: rrtype, Class: class}, nil
}

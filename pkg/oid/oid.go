package oid

// OID identifies a stored deck or card.
type OID string

const Nil = OID("")

// Length of the short form displayed in listings.
const shortLength = 8

func (o OID) IsNil() bool {
	return string(o) == ""
}

// Short returns the abbreviated form of the OID, like Git does for commit IDs.
func (o OID) Short() string {
	if len(o) <= shortLength {
		return string(o)
	}
	return string(o)[0:shortLength]
}

// String returns the OID as a string.
func (o OID) String() string {
	return string(o)
}

/* Constructors */

func New() OID {
	return generator.New()
}

/* Parser */

// MustParse parses an OID or panic if the OID format is not valid.
func MustParse(s string) OID {
	if len(s) != 40 {
		panic("Invalid OID")
	}
	return OID(s)
}

// ParseOrNil parses an OID or returns Nil.
func ParseOrNil(s string) OID {
	if len(s) != 40 {
		return Nil
	}
	return OID(s)
}

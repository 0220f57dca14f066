package party

import "io"

// ID represents a participant in the protocol.
type ID string

// WriteTo makes ID implement the io.WriterTo interface.
func (id ID) WriteTo(w io.Writer) (int64, error) {
	if id == "" {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write([]byte(id))
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (ID) Domain() string {
	return "ID"
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

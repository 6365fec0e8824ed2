package message

import (
	"github.com/robert-malhotra/go-uff/internal/binary"
)

// Serializable is implemented by messages the writer can emit.
// SerializedSize must match the bytes Serialize writes exactly, since
// object headers are laid out before any message is written.
type Serializable interface {
	Message
	Serialize(w *binary.Writer) error
	SerializedSize(w *binary.Writer) int
}

package inspector

import (
	"encoding/binary"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// IdentityToken gives an expandable row a stable renderer ID across frames.
type IdentityToken uint64

// MakeIdentity hashes the first instance address, the row name, the nesting
// depth and the sibling index into a token.
func MakeIdentity(first unsafe.Pointer, name string, depth, index int) IdentityToken {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(uintptr(first)))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(depth)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(index)))

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(name)
	return IdentityToken(d.Sum64())
}

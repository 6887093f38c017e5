package domain

// Zero overwrites key material held in b. Callers zero temporary buffers once the
// bytes have been copied into a Secret or written to disk.
func Zero(b []byte) {
	clear(b)
}

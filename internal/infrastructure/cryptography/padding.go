package cryptography

// StripPadding removes the zero padding of the last decrypted block. buf holds whole decrypted
// blocks of blockSize bytes, so the last block starts at len(buf)-blockSize. The trailing run of
// zero bytes is cut, never below that start.
//
// Text and file decryption share this rule. Their legacy windows (the last block counted in
// blocks, and the last blockSize bytes of the buffer) coincide for whole-block buffers. A zero
// run is stripped whether or not it reaches back to the block start.
// Genuine zero bytes at the end of a message are indistinguishable from padding and are removed too.
func StripPadding(buf []byte, blockSize int) []byte {
	floor := len(buf) - blockSize
	if floor < 0 {
		floor = 0
	}
	end := len(buf)
	for end > floor && buf[end-1] == 0 {
		end--
	}
	return buf[:end]
}

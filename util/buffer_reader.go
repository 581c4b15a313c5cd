package util

// Big-endian helpers. TsFile writes its fixed-width integers in network order.

func ReadB4(buff []byte, cursor int) (int, int32) {
	i := uint32(buff[cursor]) << 24
	i |= uint32(buff[cursor+1]) << 16
	i |= uint32(buff[cursor+2]) << 8
	i |= uint32(buff[cursor+3])
	return cursor + 4, int32(i)
}

func ReadB4Byte2Int32(buff []byte) int32 {
	_, rs := ReadB4(buff, 0)
	return rs
}

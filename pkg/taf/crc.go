// ABOUTME: Ogg CRC-32 used by page checksums
// ABOUTME: Unreflected polynomial 0x04C11DB7 with zero init and no final xor

package taf

// Ogg CRC32 with polynomial 0x04C11DB7, MSB-first, init 0, no final xor.
// This variant is not expressible through hash/crc32, which only implements
// the reflected algorithm.
var crcTable [256]uint32

func init() {
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ 0x04C11DB7
			} else {
				crc <<= 1
			}
		}
		crcTable[i] = crc
	}
}

func crcUpdate(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}
